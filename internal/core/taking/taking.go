// Package taking drives a respondent through a published survey and collects
// the response set that is submitted to the API.
package taking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/looplab/fsm"
	"github.com/samber/lo"

	"github.com/vncsmyrnk/justask/internal/core/domain"
)

type State string

const (
	StateInProgress State = "in_progress"
	StateCompleted  State = "completed"
)

const eventComplete = "complete"

var (
	ErrAnswerRequired     = errors.New("current question must be answered before continuing")
	ErrAtFirstQuestion    = errors.New("already at the first question")
	ErrNotAtLastQuestion  = errors.New("survey can only be completed from the last question")
	ErrSessionCompleted   = errors.New("survey session is already completed")
	ErrSessionIncomplete  = errors.New("survey session is not completed")
	ErrNoQuestions        = fmt.Errorf("%w: survey has no questions", domain.ErrValidation)
)

// Session is one respondent's traversal of a survey. It is not safe for
// concurrent use.
type Session struct {
	survey    domain.PublicSurvey
	questions []domain.Question
	clock     func() time.Time
	machine   *fsm.FSM

	index       int
	responses   []domain.QuestionResponse
	startedAt   time.Time
	shownAt     time.Time
	completedAt *time.Time
}

// New starts a session on the first question. clock defaults to time.Now.
func New(survey domain.PublicSurvey, clock func() time.Time) (*Session, error) {
	if len(survey.Questions) == 0 {
		return nil, ErrNoQuestions
	}
	if clock == nil {
		clock = time.Now
	}
	now := clock()
	return &Session{
		survey:    survey,
		questions: domain.CloneQuestions(survey.Questions),
		clock:     clock,
		machine: fsm.NewFSM(
			string(StateInProgress),
			fsm.Events{
				{Name: eventComplete, Src: []string{string(StateInProgress)}, Dst: string(StateCompleted)},
			},
			fsm.Callbacks{},
		),
		startedAt: now,
		shownAt:   now,
	}, nil
}

func (s *Session) State() State                { return State(s.machine.Current()) }
func (s *Session) IsCompleted() bool           { return s.State() == StateCompleted }
func (s *Session) Index() int                  { return s.index }
func (s *Session) Survey() domain.PublicSurvey { return s.survey }

func (s *Session) Current() domain.Question {
	return s.questions[s.index].Clone()
}

func (s *Session) IsLast() bool {
	return s.index == len(s.questions)-1
}

// Progress is the percentage of the survey reached, counting the current question.
func (s *Session) Progress() float64 {
	return float64(s.index+1) / float64(len(s.questions)) * 100
}

// Answer validates and records an answer, replacing an earlier one for the
// same question while keeping its original position. Answering the current
// question of an auto-advancing type moves on unless it is the last one.
func (s *Session) Answer(questionID int64, value domain.Answer) error {
	if s.IsCompleted() {
		return ErrSessionCompleted
	}
	i := domain.FindQuestion(s.questions, questionID)
	if i < 0 {
		return fmt.Errorf("%w: %d", domain.ErrQuestionNotFound, questionID)
	}
	q := s.questions[i]
	if err := q.Accepts(value); err != nil {
		return fmt.Errorf("question %d: %w", questionID, err)
	}

	now := s.clock()
	resp := domain.QuestionResponse{QuestionID: questionID, Answer: value, AnsweredAt: now}
	if i == s.index {
		spent := now.Sub(s.shownAt).Seconds()
		resp.TimeSpent = &spent
	}

	if _, j, ok := lo.FindIndexOf(s.responses, func(r domain.QuestionResponse) bool {
		return r.QuestionID == questionID
	}); ok {
		s.responses[j] = resp
	} else {
		s.responses = append(s.responses, resp)
	}

	if i == s.index && q.AutoAdvances() && !s.IsLast() {
		s.move(1)
	}
	return nil
}

func (s *Session) answered(questionID int64) bool {
	return lo.ContainsBy(s.responses, func(r domain.QuestionResponse) bool {
		return r.QuestionID == questionID
	})
}

// CanContinue reports whether the current question allows moving forward.
// Optional questions can be skipped unless they only advance by answering.
func (s *Session) CanContinue() bool {
	if s.IsCompleted() {
		return false
	}
	q := s.questions[s.index]
	if s.answered(q.ID) {
		return true
	}
	return !q.Required && !q.AutoAdvances()
}

// Next moves to the following question. On the last question it completes
// the session.
func (s *Session) Next() error {
	if s.IsCompleted() {
		return ErrSessionCompleted
	}
	if !s.CanContinue() {
		return ErrAnswerRequired
	}
	if s.IsLast() {
		return s.Complete()
	}
	s.move(1)
	return nil
}

func (s *Session) Previous() error {
	if s.IsCompleted() {
		return ErrSessionCompleted
	}
	if s.index == 0 {
		return ErrAtFirstQuestion
	}
	s.move(-1)
	return nil
}

func (s *Session) move(delta int) {
	s.index += delta
	s.shownAt = s.clock()
}

// Complete ends the session from the last question and stamps the completion time.
func (s *Session) Complete() error {
	if s.IsCompleted() {
		return ErrSessionCompleted
	}
	if !s.IsLast() {
		return ErrNotAtLastQuestion
	}
	if !s.CanContinue() {
		return ErrAnswerRequired
	}
	if err := s.machine.Event(context.Background(), eventComplete); err != nil {
		return err
	}
	now := s.clock()
	s.completedAt = &now
	return nil
}

// Responses returns the recorded answers in the order they were first given.
func (s *Session) Responses() []domain.QuestionResponse {
	return append([]domain.QuestionResponse(nil), s.responses...)
}

// Submission builds the payload sent to the API once the session is completed.
func (s *Session) Submission() (domain.ResponseSubmission, error) {
	if !s.IsCompleted() {
		return domain.ResponseSubmission{}, ErrSessionIncomplete
	}
	completedAt := *s.completedAt
	spent := completedAt.Sub(s.startedAt).Seconds()
	return domain.ResponseSubmission{
		Responses:   s.Responses(),
		CompletedAt: &completedAt,
		TimeSpent:   &spent,
	}, nil
}
