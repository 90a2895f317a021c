// Package draft is the in-memory store for a survey while its creator edits it.
//
// A Draft is owned by a single editing session. Every successful mutation
// notifies the OnChange subscribers; failed mutations leave the draft untouched.
package draft

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/vncsmyrnk/justask/internal/core/domain"
	"github.com/vncsmyrnk/justask/internal/core/templates"
)

const (
	DefaultTitle         = "My New Survey"
	DefaultEstimatedTime = "2 min"
	DefaultQuestionTitle = "New Question"
	DefaultPlaceholder   = "Enter your answer..."
)

type Draft struct {
	id            string
	title         string
	description   string
	estimatedTime string
	settings      domain.SurveySettings
	questions     []domain.Question
	nextID        int64
	listeners     []func()
}

// New returns an empty draft with a starter title.
func New() *Draft {
	return &Draft{
		id:            "draft-" + uuid.NewString(),
		title:         DefaultTitle,
		estimatedTime: DefaultEstimatedTime,
		settings:      domain.DefaultSettings(),
		nextID:        1,
	}
}

// FromTemplate returns a draft seeded with a deep copy of t.
func FromTemplate(t templates.Template) *Draft {
	d := New()
	d.title = t.Title
	d.description = t.Description
	if t.EstimatedTime != "" {
		d.estimatedTime = t.EstimatedTime
	}
	d.questions = t.QuestionList()
	if len(d.questions) > 0 {
		d.nextID = lo.Max(lo.Map(d.questions, func(q domain.Question, _ int) int64 { return q.ID })) + 1
	}
	return d
}

func (d *Draft) ID() string                      { return d.id }
func (d *Draft) Title() string                   { return d.title }
func (d *Draft) Description() string             { return d.description }
func (d *Draft) EstimatedTime() string           { return d.estimatedTime }
func (d *Draft) Settings() domain.SurveySettings { return d.settings }
func (d *Draft) QuestionCount() int              { return len(d.questions) }

// QuestionList returns a copy of the ordered questions.
func (d *Draft) QuestionList() []domain.Question {
	return domain.CloneQuestions(d.questions)
}

// Question returns a copy of the question with the given id.
func (d *Draft) Question(id int64) (domain.Question, error) {
	i := domain.FindQuestion(d.questions, id)
	if i < 0 {
		return domain.Question{}, fmt.Errorf("%w: %d", domain.ErrQuestionNotFound, id)
	}
	return d.questions[i].Clone(), nil
}

// OnChange registers fn to run after every successful mutation.
func (d *Draft) OnChange(fn func()) {
	d.listeners = append(d.listeners, fn)
}

func (d *Draft) changed() {
	for _, fn := range d.listeners {
		fn()
	}
}

func (d *Draft) SetTitle(text string) {
	d.title = text
	d.changed()
}

func (d *Draft) SetDescription(text string) {
	d.description = text
	d.changed()
}

// SetEstimatedTime stores free text; it is never derived from the questions.
func (d *Draft) SetEstimatedTime(text string) {
	d.estimatedTime = text
	d.changed()
}

func (d *Draft) SetSettings(s domain.SurveySettings) {
	d.settings = s
	d.changed()
}

// AddQuestion appends a question of type t with type-appropriate defaults.
func (d *Draft) AddQuestion(t domain.QuestionType) (domain.Question, error) {
	if !t.Valid() {
		return domain.Question{}, fmt.Errorf("%w: %q", domain.ErrUnknownQuestionType, t)
	}
	q := domain.Question{
		ID:       d.nextID,
		Type:     t,
		Title:    DefaultQuestionTitle,
		Required: true,
	}
	applyDefaults(&q)

	if domain.FindQuestion(d.questions, q.ID) >= 0 {
		panic(fmt.Sprintf("draft: question id %d allocated twice", q.ID))
	}
	d.nextID++
	d.questions = append(d.questions, q)
	d.changed()
	return q.Clone(), nil
}

func applyDefaults(q *domain.Question) {
	switch q.Type {
	case domain.QuestionMultipleChoice:
		if len(q.Options) < 2 {
			q.Options = []string{"Option 1", "Option 2"}
		}
	case domain.QuestionTextInput:
		if q.Placeholder == "" {
			q.Placeholder = DefaultPlaceholder
		}
	case domain.QuestionRating:
		if q.MinValue == nil && q.MaxValue == nil {
			q.MinValue, q.MaxValue = float(1), float(5)
		}
	case domain.QuestionSlider:
		if q.MinValue == nil && q.MaxValue == nil {
			q.MinValue, q.MaxValue, q.Step = float(0), float(100), float(1)
		}
	}
}

func float(f float64) *float64 { return &f }

func (d *Draft) UpdateQuestionTitle(id int64, text string) error {
	return d.UpdateQuestionFields(id, QuestionPatch{Title: &text})
}

// QuestionPatch carries the fields to replace; nil fields are left unchanged.
type QuestionPatch struct {
	Type        *domain.QuestionType
	Subtype     *domain.Subtype
	Title       *string
	Description *string
	Options     []string
	Required    *bool
	Placeholder *string
	MinValue    *float64
	MaxValue    *float64
	Step        *float64
	HelpText    *string
}

// UpdateQuestionFields applies p to the question with the given id. Changing
// the type drops a subtype that no longer applies and seeds defaults.
func (d *Draft) UpdateQuestionFields(id int64, p QuestionPatch) error {
	i := domain.FindQuestion(d.questions, id)
	if i < 0 {
		return fmt.Errorf("%w: %d", domain.ErrQuestionNotFound, id)
	}

	q := d.questions[i].Clone()
	if p.Type != nil && *p.Type != q.Type {
		if !p.Type.Valid() {
			return fmt.Errorf("%w: %q", domain.ErrUnknownQuestionType, *p.Type)
		}
		q.Type = *p.Type
		if !domain.ValidSubtype(q.Type, q.Subtype) {
			q.Subtype = domain.SubtypeNone
		}
		if !q.HasScale() {
			q.MinValue, q.MaxValue, q.Step = nil, nil, nil
		}
		if p.Options == nil {
			applyDefaults(&q)
		}
	}
	if p.Subtype != nil {
		if !domain.ValidSubtype(q.Type, *p.Subtype) {
			return fmt.Errorf("%w: %q for %q", domain.ErrInvalidSubtype, *p.Subtype, q.Type)
		}
		q.Subtype = *p.Subtype
	}
	if p.Title != nil {
		q.Title = *p.Title
	}
	if p.Description != nil {
		q.Description = *p.Description
	}
	if p.Options != nil {
		q.Options = append([]string(nil), p.Options...)
	}
	if p.Required != nil {
		q.Required = *p.Required
	}
	if p.Placeholder != nil {
		q.Placeholder = *p.Placeholder
	}
	if p.MinValue != nil {
		q.MinValue = float(*p.MinValue)
	}
	if p.MaxValue != nil {
		q.MaxValue = float(*p.MaxValue)
	}
	if p.Step != nil {
		q.Step = float(*p.Step)
	}
	if p.HelpText != nil {
		q.HelpText = *p.HelpText
	}

	if q.RequiresOptions() && len(q.Options) < 2 {
		return domain.ErrMinimumOptions
	}

	d.questions[i] = q
	d.changed()
	return nil
}

// DeleteQuestion removes a question. A draft may reach zero questions.
func (d *Draft) DeleteQuestion(id int64) error {
	i := domain.FindQuestion(d.questions, id)
	if i < 0 {
		return fmt.Errorf("%w: %d", domain.ErrQuestionNotFound, id)
	}
	d.questions = append(d.questions[:i:i], d.questions[i+1:]...)
	d.changed()
	return nil
}

// ReorderQuestions moves the question at from to position to.
func (d *Draft) ReorderQuestions(from, to int) error {
	moved, err := move(d.questions, from, to)
	if err != nil {
		return err
	}
	d.questions = moved
	d.changed()
	return nil
}

func (d *Draft) AddOption(id int64, text string) error {
	return d.withOptions(id, func(opts []string) ([]string, error) {
		return append(opts, text), nil
	})
}

func (d *Draft) UpdateOption(id int64, index int, text string) error {
	return d.withOptions(id, func(opts []string) ([]string, error) {
		if index < 0 || index >= len(opts) {
			return nil, fmt.Errorf("%w: %d", domain.ErrOptionIndex, index)
		}
		opts[index] = text
		return opts, nil
	})
}

// DeleteOption removes one option, refusing to go below two.
func (d *Draft) DeleteOption(id int64, index int) error {
	return d.withOptions(id, func(opts []string) ([]string, error) {
		if index < 0 || index >= len(opts) {
			return nil, fmt.Errorf("%w: %d", domain.ErrOptionIndex, index)
		}
		if len(opts)-1 < 2 {
			return nil, domain.ErrMinimumOptions
		}
		return append(opts[:index], opts[index+1:]...), nil
	})
}

func (d *Draft) ReorderOptions(id int64, from, to int) error {
	return d.withOptions(id, func(opts []string) ([]string, error) {
		return move(opts, from, to)
	})
}

// withOptions runs fn over a copy of the question's options and stores the
// result only when fn succeeds.
func (d *Draft) withOptions(id int64, fn func([]string) ([]string, error)) error {
	i := domain.FindQuestion(d.questions, id)
	if i < 0 {
		return fmt.Errorf("%w: %d", domain.ErrQuestionNotFound, id)
	}
	if !d.questions[i].RequiresOptions() {
		return domain.NewValidationError("%s questions have no options", d.questions[i].Type)
	}

	opts, err := fn(append([]string(nil), d.questions[i].Options...))
	if err != nil {
		return err
	}
	d.questions[i].Options = opts
	d.changed()
	return nil
}

func move[T any](items []T, from, to int) ([]T, error) {
	if from < 0 || from >= len(items) || to < 0 || to >= len(items) {
		return nil, fmt.Errorf("%w: %d -> %d", domain.ErrIndexOutOfRange, from, to)
	}
	out := append([]T(nil), items...)
	item := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append([]T{item}, out[to:]...)...)
	return out, nil
}

// Validate reports whether the draft can be published.
func (d *Draft) Validate() error {
	if strings.TrimSpace(d.title) == "" {
		return domain.ErrTitleRequired
	}
	return domain.ValidateQuestions(d.questions)
}

// Serialize produces the payload handed to the gateway on save.
func (d *Draft) Serialize() domain.SurveyCreateRequest {
	settings := d.settings
	return domain.SurveyCreateRequest{
		Title:         d.title,
		Description:   d.description,
		Questions:     d.QuestionList(),
		EstimatedTime: d.estimatedTime,
		Settings:      &settings,
	}
}
