// Package demo replays a survey the way a respondent would see it, without
// persisting anything.
package demo

import (
	"context"
	"errors"
	"fmt"
	"maps"

	"github.com/looplab/fsm"

	"github.com/vncsmyrnk/justask/internal/core/domain"
)

type State string

const (
	StateNotStarted State = "not_started"
	StateInProgress State = "in_progress"
	StateCompleted  State = "completed"
)

const (
	eventStart  = "start"
	eventFinish = "finish"
	eventStop   = "stop"
)

var (
	ErrNotInProgress = errors.New("demo is not in progress")
	ErrNoQuestions   = errors.New("demo needs at least one question")
)

// QuestionSource supplies the ordered questions being previewed. Both a live
// draft and a catalog template satisfy it.
type QuestionSource interface {
	QuestionList() []domain.Question
}

type Demo struct {
	source  QuestionSource
	machine *fsm.FSM
	index   int
	answers map[int64]domain.Answer
}

func New(source QuestionSource) *Demo {
	all := []string{string(StateNotStarted), string(StateInProgress), string(StateCompleted)}
	return &Demo{
		source: source,
		machine: fsm.NewFSM(
			string(StateNotStarted),
			fsm.Events{
				{Name: eventStart, Src: all, Dst: string(StateInProgress)},
				{Name: eventFinish, Src: []string{string(StateInProgress)}, Dst: string(StateCompleted)},
				{Name: eventStop, Src: all, Dst: string(StateNotStarted)},
			},
			fsm.Callbacks{},
		),
		answers: make(map[int64]domain.Answer),
	}
}

func (d *Demo) fire(event string) error {
	err := d.machine.Event(context.Background(), event)
	var noTransition fsm.NoTransitionError
	if err != nil && !errors.As(err, &noTransition) {
		return err
	}
	return nil
}

func (d *Demo) State() State      { return State(d.machine.Current()) }
func (d *Demo) IsCompleted() bool { return d.State() == StateCompleted }

// Start begins (or restarts) playback at the first question with no answers.
func (d *Demo) Start() error {
	if len(d.source.QuestionList()) == 0 {
		return ErrNoQuestions
	}
	if err := d.fire(eventStart); err != nil {
		return err
	}
	d.index = 0
	clear(d.answers)
	return nil
}

// Answer records value for questionID, replacing any earlier answer.
func (d *Demo) Answer(questionID int64, value domain.Answer) error {
	if d.State() != StateInProgress {
		return ErrNotInProgress
	}
	if domain.FindQuestion(d.source.QuestionList(), questionID) < 0 {
		return fmt.Errorf("%w: %d", domain.ErrQuestionNotFound, questionID)
	}
	if value.IsZero() {
		return domain.ErrAnswerTypeMismatch
	}
	d.answers[questionID] = value
	return nil
}

// Next moves to the following question, or completes after the last one.
func (d *Demo) Next() error {
	if d.State() != StateInProgress {
		return ErrNotInProgress
	}
	if d.index+1 < len(d.source.QuestionList()) {
		d.index++
		return nil
	}
	d.index = 0
	return d.fire(eventFinish)
}

// Previous steps back one question; it is a no-op on the first one.
func (d *Demo) Previous() error {
	if d.State() != StateInProgress {
		return ErrNotInProgress
	}
	if d.index > 0 {
		d.index--
	}
	return nil
}

// Reset returns to NotStarted and clears answers. It never fails.
func (d *Demo) Reset() {
	_ = d.fire(eventStop)
	d.index = 0
	clear(d.answers)
}

func (d *Demo) Stop() { d.Reset() }

// Index is the current position; ok is false unless the demo is in progress.
func (d *Demo) Index() (index int, ok bool) {
	if d.State() != StateInProgress {
		return 0, false
	}
	return d.index, true
}

func (d *Demo) Current() (domain.Question, bool) {
	i, ok := d.Index()
	if !ok {
		return domain.Question{}, false
	}
	qs := d.source.QuestionList()
	if i >= len(qs) {
		return domain.Question{}, false
	}
	return qs[i], true
}

// Answers returns a copy of the collected answers keyed by question id.
func (d *Demo) Answers() map[int64]domain.Answer {
	return maps.Clone(d.answers)
}
