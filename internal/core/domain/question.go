package domain

import (
	"errors"
	"fmt"
	"strings"
)

type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionTextInput      QuestionType = "text_input"
	QuestionRating         QuestionType = "rating"
	QuestionSlider         QuestionType = "slider"
	QuestionDate           QuestionType = "date"
	QuestionFileUpload     QuestionType = "file_upload"
)

// QuestionTypes lists every supported question type in display order.
var QuestionTypes = []QuestionType{
	QuestionMultipleChoice,
	QuestionTextInput,
	QuestionRating,
	QuestionSlider,
	QuestionDate,
	QuestionFileUpload,
}

func (t QuestionType) Valid() bool {
	switch t {
	case QuestionMultipleChoice, QuestionTextInput, QuestionRating, QuestionSlider, QuestionDate, QuestionFileUpload:
		return true
	}
	return false
}

type Subtype string

const (
	SubtypeNone           Subtype = ""
	SubtypeSingleSelect   Subtype = "single_select"
	SubtypeMultiSelect    Subtype = "multi_select"
	SubtypeBoolean        Subtype = "boolean"
	SubtypeBrandedOptions Subtype = "branded_options"
	SubtypeShortText      Subtype = "short_text"
	SubtypeLongText       Subtype = "long_text"
	SubtypeEmail          Subtype = "email"
	SubtypeStarRating     Subtype = "star_rating"
	SubtypeNumberScale    Subtype = "number_scale"
)

// ValidSubtype reports whether s refines t. The empty subtype is valid for every type.
func ValidSubtype(t QuestionType, s Subtype) bool {
	if s == SubtypeNone {
		return true
	}
	switch t {
	case QuestionMultipleChoice:
		return s == SubtypeSingleSelect || s == SubtypeMultiSelect || s == SubtypeBoolean || s == SubtypeBrandedOptions
	case QuestionTextInput:
		return s == SubtypeShortText || s == SubtypeLongText || s == SubtypeEmail
	case QuestionRating:
		return s == SubtypeStarRating || s == SubtypeNumberScale
	}
	return false
}

// Question is one prompt in a survey. ID is unique within its survey only.
type Question struct {
	ID          int64        `json:"id" yaml:"id"`
	Type        QuestionType `json:"type" yaml:"type"`
	Subtype     Subtype      `json:"subtype,omitempty" yaml:"subtype,omitempty"`
	Title       string       `json:"title" yaml:"title"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
	Options     []string     `json:"options,omitempty" yaml:"options,omitempty"`
	Required    bool         `json:"required" yaml:"required"`
	Placeholder string       `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	MinValue    *float64     `json:"minValue,omitempty" yaml:"minValue,omitempty"`
	MaxValue    *float64     `json:"maxValue,omitempty" yaml:"maxValue,omitempty"`
	Step        *float64     `json:"step,omitempty" yaml:"step,omitempty"`
	HelpText    string       `json:"helpText,omitempty" yaml:"helpText,omitempty"`
}

// RequiresOptions reports whether the question is answered by picking from Options.
func (q Question) RequiresOptions() bool {
	return q.Type == QuestionMultipleChoice
}

// AutoAdvances reports whether answering the question moves the respondent on
// without an explicit continue action.
func (q Question) AutoAdvances() bool {
	switch q.Type {
	case QuestionMultipleChoice:
		return q.Subtype != SubtypeMultiSelect
	case QuestionRating:
		return true
	}
	return false
}

// HasScale reports whether MinValue/MaxValue apply to the question.
func (q Question) HasScale() bool {
	return q.Type == QuestionRating || q.Type == QuestionSlider
}

// Bounds returns the numeric range of a scale question, falling back to the
// defaults the client renders with when bounds are unset.
func (q Question) Bounds() (min, max float64) {
	switch q.Type {
	case QuestionRating:
		min, max = 1, 5
	case QuestionSlider:
		min, max = 0, 100
	}
	if q.MinValue != nil {
		min = *q.MinValue
	}
	if q.MaxValue != nil {
		max = *q.MaxValue
	}
	return min, max
}

// Clone returns a deep copy of q.
func (q Question) Clone() Question {
	c := q
	if q.Options != nil {
		c.Options = append([]string(nil), q.Options...)
	}
	c.MinValue = cloneFloat(q.MinValue)
	c.MaxValue = cloneFloat(q.MaxValue)
	c.Step = cloneFloat(q.Step)
	return c
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}

// CloneQuestions deep copies a question list.
func CloneQuestions(qs []Question) []Question {
	if qs == nil {
		return nil
	}
	out := make([]Question, len(qs))
	for i, q := range qs {
		out[i] = q.Clone()
	}
	return out
}

// ValidationResult collects every problem found on a question.
type ValidationResult struct {
	QuestionID int64
	Errors     []error
}

func (r ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Err joins the collected errors, or returns nil when the question is valid.
func (r ValidationResult) Err() error {
	if r.Valid() {
		return nil
	}
	return fmt.Errorf("question %d: %w", r.QuestionID, errors.Join(r.Errors...))
}

// ValidateForPublish checks that q can be shown to respondents.
func ValidateForPublish(q Question) ValidationResult {
	res := ValidationResult{QuestionID: q.ID}

	if !q.Type.Valid() {
		res.Errors = append(res.Errors, ErrUnknownQuestionType)
		return res
	}
	if !ValidSubtype(q.Type, q.Subtype) {
		res.Errors = append(res.Errors, ErrInvalidSubtype)
	}
	if strings.TrimSpace(q.Title) == "" {
		res.Errors = append(res.Errors, ErrMissingTitle)
	}
	if q.RequiresOptions() && countNonBlank(q.Options) < 2 {
		res.Errors = append(res.Errors, ErrInsufficientOptions)
	}
	if q.HasScale() {
		if min, max := q.Bounds(); min > max {
			res.Errors = append(res.Errors, ErrInvalidRange)
		}
	}
	return res
}

// ValidateQuestions runs ValidateForPublish over a list and also rejects duplicate ids.
func ValidateQuestions(qs []Question) error {
	if len(qs) == 0 {
		return ErrQuestionsMissing
	}
	seen := make(map[int64]struct{}, len(qs))
	var errs []error
	for _, q := range qs {
		if _, dup := seen[q.ID]; dup {
			errs = append(errs, fmt.Errorf("question %d: %w", q.ID, ErrDuplicateQuestionIDs))
		}
		seen[q.ID] = struct{}{}
		if err := ValidateForPublish(q).Err(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func countNonBlank(values []string) int {
	n := 0
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			n++
		}
	}
	return n
}

// FindQuestion returns the index of the question with the given id, or -1.
func FindQuestion(qs []Question, id int64) int {
	for i := range qs {
		if qs[i].ID == id {
			return i
		}
	}
	return -1
}
