// Command surveyctl drives surveys from a terminal: browse templates, play a
// template back as a demo, publish it, and answer a published survey.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"

	"github.com/vncsmyrnk/justask/internal/adapters/client"
	"github.com/vncsmyrnk/justask/internal/core/domain"
	"github.com/vncsmyrnk/justask/internal/core/draft"
	"github.com/vncsmyrnk/justask/internal/core/taking"
	"github.com/vncsmyrnk/justask/internal/core/templates"
)

const usage = `usage: surveyctl [-api URL] [-token JWT] <command> [args]

commands:
  templates [-local]          list survey templates
  demo <template-id>          play a template back without saving answers
  publish [-title T] <template-id>
                              publish a template as a new survey
  surveys                     list your surveys
  responses <survey-id>       list responses to one of your surveys
  take <survey-id>            answer a published survey
`

func main() {
	api := flag.String("api", envOr("JUSTASK_API", "http://localhost:3000"), "Gateway base URL")
	token := flag.String("token", os.Getenv("JUSTASK_TOKEN"), "Session token for creator commands")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	cli := &cli{
		api:     client.New(*api, *token),
		catalog: templates.Default(),
		in:      bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}

	if err := cli.run(ctx, flag.Arg(0), flag.Args()[1:]); err != nil {
		color.Red("error: %v", err)
		os.Exit(1)
	}
}

type cli struct {
	api     *client.Client
	catalog *templates.Catalog
	in      *bufio.Reader
	out     io.Writer
}

func (c *cli) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "templates":
		fs := flag.NewFlagSet("templates", flag.ExitOnError)
		local := fs.Bool("local", false, "use the built-in catalog instead of the gateway")
		fs.Parse(args)
		return c.templates(ctx, *local)
	case "demo":
		if len(args) != 1 {
			return errors.New("demo needs a template id")
		}
		return c.demo(args[0])
	case "publish":
		fs := flag.NewFlagSet("publish", flag.ExitOnError)
		title := fs.String("title", "", "survey title")
		fs.Parse(args)
		if fs.NArg() != 1 {
			return errors.New("publish needs a template id")
		}
		return c.publish(ctx, fs.Arg(0), *title)
	case "surveys":
		return c.surveys(ctx)
	case "responses":
		if len(args) != 1 {
			return errors.New("responses needs a survey id")
		}
		return c.responses(ctx, args[0])
	case "take":
		if len(args) != 1 {
			return errors.New("take needs a survey id")
		}
		return c.take(ctx, args[0])
	}
	return fmt.Errorf("unknown command %q", command)
}

func (c *cli) templates(ctx context.Context, local bool) error {
	list := c.catalog.All()
	if !local {
		remote, err := c.api.Templates(ctx)
		if err != nil {
			return err
		}
		list = remote
	}
	for _, t := range list {
		fmt.Fprintf(c.out, "%s  %s (%d questions, %s)\n",
			color.CyanString("%-18s", t.ID), t.Title, len(t.Questions), t.EstimatedTime)
	}
	return nil
}

func (c *cli) template(id string) (templates.Template, error) {
	t, ok := c.catalog.Get(id)
	if !ok {
		return templates.Template{}, domain.NewNotFoundError("template %q", id)
	}
	return t, nil
}

func (c *cli) demo(templateID string) error {
	t, err := c.template(templateID)
	if err != nil {
		return err
	}
	session := draft.NewSession(draft.FromTemplate(t))
	d := session.Demo
	if err := d.Start(); err != nil {
		return err
	}

	color.HiBlack("demo of %q: enter an answer, empty to continue, < to go back, q to stop", session.Draft.Title())
	for !d.IsCompleted() {
		q, ok := d.Current()
		if !ok {
			break
		}
		index, _ := d.Index()
		printQuestion(c.out, q, index+1, session.Draft.QuestionCount())

		line, err := readLine(c.in)
		if err != nil {
			return err
		}
		switch line {
		case "q":
			d.Stop()
			return nil
		case "<":
			_ = d.Previous()
			continue
		case "":
		default:
			answer, err := parseAnswer(q, line)
			if err != nil {
				color.Yellow("%v", err)
				continue
			}
			if err := d.Answer(q.ID, answer); err != nil {
				color.Yellow("%v", err)
				continue
			}
		}
		if err := d.Next(); err != nil {
			return err
		}
	}

	color.Green("demo completed")
	answers := d.Answers()
	for _, q := range session.Draft.QuestionList() {
		if a, ok := answers[q.ID]; ok {
			fmt.Fprintf(c.out, "  %s: %s\n", q.Title, a)
		}
	}
	return nil
}

func (c *cli) publish(ctx context.Context, templateID, title string) error {
	t, err := c.template(templateID)
	if err != nil {
		return err
	}
	d := draft.FromTemplate(t)
	if title != "" {
		d.SetTitle(title)
	}
	if err := d.Validate(); err != nil {
		return err
	}

	created, err := c.api.CreateSurvey(ctx, d.Serialize())
	if err != nil {
		return err
	}
	color.Green("published %s", created.SurveyID)
	fmt.Fprintf(c.out, "share: %s\nqr:    %s\n", created.ShareURL, created.QRCodeURL)
	return nil
}

func (c *cli) surveys(ctx context.Context) error {
	list, err := c.api.ListSurveys(ctx)
	if err != nil {
		return err
	}
	for _, s := range list {
		fmt.Fprintf(c.out, "%s  %s  %d responses  %.0f%% complete\n",
			color.CyanString(s.ID), s.Title, s.Stats.TotalResponses, s.Stats.CompletionRate)
	}
	return nil
}

func (c *cli) responses(ctx context.Context, surveyID string) error {
	list, err := c.api.ListResponses(ctx, surveyID)
	if err != nil {
		return err
	}
	for _, r := range list {
		fmt.Fprintf(c.out, "%s  %s\n", color.CyanString(r.ID), r.SubmittedAt.Format(time.RFC3339))
		for _, qr := range r.Responses {
			fmt.Fprintf(c.out, "  #%d: %s\n", qr.QuestionID, qr.Answer)
		}
	}
	return nil
}

func (c *cli) take(ctx context.Context, surveyID string) error {
	survey, err := c.api.GetPublicSurvey(ctx, surveyID)
	if err != nil {
		return err
	}
	session, err := taking.New(*survey, time.Now)
	if err != nil {
		return err
	}

	color.HiBlack("%s: enter an answer, empty to continue, < to go back", survey.Title)
	for !session.IsCompleted() {
		q := session.Current()
		printQuestion(c.out, q, session.Index()+1, len(survey.Questions))

		line, err := readLine(c.in)
		if err != nil {
			return err
		}
		if line == "<" {
			if err := session.Previous(); err != nil {
				color.Yellow("%v", err)
			}
			continue
		}
		if line != "" {
			before := session.Index()
			answer, err := parseAnswer(q, line)
			if err == nil {
				err = session.Answer(q.ID, answer)
			}
			if err != nil {
				color.Yellow("%v", err)
				continue
			}
			if session.Index() != before {
				continue
			}
		}
		if err := session.Next(); err != nil {
			color.Yellow("%v", err)
		}
	}

	sub, err := session.Submission()
	if err != nil {
		return err
	}
	id, err := c.api.SubmitResponse(ctx, surveyID, sub)
	if err != nil {
		return err
	}
	color.Green("thanks! response %s recorded", id)
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
