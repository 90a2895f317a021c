package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/vncsmyrnk/justask/internal/core/domain"
)

func printQuestion(w io.Writer, q domain.Question, position, total int) {
	marker := ""
	if q.Required {
		marker = color.RedString(" *")
	}
	fmt.Fprintf(w, "\n%s %s%s\n", color.HiBlackString("[%d/%d]", position, total), color.New(color.Bold).Sprint(q.Title), marker)
	if q.Description != "" {
		fmt.Fprintln(w, q.Description)
	}

	switch {
	case q.RequiresOptions():
		for i, opt := range q.Options {
			fmt.Fprintf(w, "  %d) %s\n", i+1, opt)
		}
		if q.Subtype == domain.SubtypeMultiSelect {
			fmt.Fprintln(w, color.HiBlackString("  pick one or more, separated by commas"))
		}
	case q.HasScale():
		min, max := q.Bounds()
		fmt.Fprintln(w, color.HiBlackString("  %g to %g", min, max))
	case q.Type == domain.QuestionDate:
		fmt.Fprintln(w, color.HiBlackString("  YYYY-MM-DD"))
	case q.Placeholder != "":
		fmt.Fprintln(w, color.HiBlackString("  %s", q.Placeholder))
	}
	fmt.Fprint(w, "> ")
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// parseAnswer turns terminal input into an answer for q. Options may be given
// by their 1-based number or their text.
func parseAnswer(q domain.Question, input string) (domain.Answer, error) {
	switch q.Type {
	case domain.QuestionMultipleChoice:
		if q.Subtype == domain.SubtypeMultiSelect {
			var picked []string
			for _, part := range strings.Split(input, ",") {
				opt, err := pickOption(q.Options, strings.TrimSpace(part))
				if err != nil {
					return domain.Answer{}, err
				}
				picked = append(picked, opt)
			}
			return domain.Choices(picked...), nil
		}
		opt, err := pickOption(q.Options, input)
		if err != nil {
			return domain.Answer{}, err
		}
		return domain.Text(opt), nil
	case domain.QuestionRating, domain.QuestionSlider:
		n, err := strconv.ParseFloat(input, 64)
		if err != nil {
			return domain.Answer{}, domain.NewValidationError("%q is not a number", input)
		}
		return domain.Number(n), nil
	}
	return domain.Text(input), nil
}

func pickOption(options []string, input string) (string, error) {
	if n, err := strconv.Atoi(input); err == nil {
		if n < 1 || n > len(options) {
			return "", domain.NewValidationError("choose a number between 1 and %d", len(options))
		}
		return options[n-1], nil
	}
	for _, opt := range options {
		if strings.EqualFold(opt, input) {
			return opt, nil
		}
	}
	return "", domain.ErrAnswerNotAnOption
}
