package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation   = errors.New("validation error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrUpstream     = errors.New("upstream error")
	ErrInternal     = errors.New("internal server error")
)

var (
	ErrSurveyNotFound   = fmt.Errorf("survey %w", ErrNotFound)
	ErrUserNotFound     = fmt.Errorf("user %w", ErrNotFound)
	ErrInvalidSurveyID  = fmt.Errorf("%w: invalid survey id", ErrValidation)
	ErrInvalidUserID    = fmt.Errorf("%w: invalid user id", ErrValidation)
	ErrTitleRequired    = fmt.Errorf("%w: title is required", ErrValidation)
	ErrQuestionsMissing = fmt.Errorf("%w: at least one question is required", ErrValidation)
	ErrEmptyResponses   = fmt.Errorf("%w: at least one response is required", ErrValidation)
	ErrInvalidToken     = fmt.Errorf("%w: invalid token", ErrForbidden)
	ErrMissingToken     = fmt.Errorf("%w: missing bearer token", ErrUnauthorized)
	ErrGoogleRejected   = fmt.Errorf("%w: google rejected the credentials", ErrUpstream)
)

// Question and editor invariants.
var (
	ErrMissingTitle         = fmt.Errorf("%w: question title is required", ErrValidation)
	ErrInsufficientOptions  = fmt.Errorf("%w: at least two options are required", ErrValidation)
	ErrInvalidRange         = fmt.Errorf("%w: minimum value is greater than maximum value", ErrValidation)
	ErrUnknownQuestionType  = fmt.Errorf("%w: unknown question type", ErrValidation)
	ErrInvalidSubtype       = fmt.Errorf("%w: subtype does not belong to question type", ErrValidation)
	ErrMinimumOptions       = fmt.Errorf("%w: a question must keep at least two options", ErrValidation)
	ErrQuestionNotFound     = fmt.Errorf("question %w", ErrNotFound)
	ErrOptionIndex          = fmt.Errorf("%w: option index out of range", ErrValidation)
	ErrIndexOutOfRange      = fmt.Errorf("%w: index out of range", ErrValidation)
	ErrAnswerTypeMismatch   = fmt.Errorf("%w: answer does not match question type", ErrValidation)
	ErrAnswerNotAnOption    = fmt.Errorf("%w: answer is not one of the question options", ErrValidation)
	ErrAnswerOutOfRange     = fmt.Errorf("%w: answer is outside the allowed range", ErrValidation)
	ErrAnswerInvalidDate    = fmt.Errorf("%w: answer is not a valid date", ErrValidation)
	ErrDuplicateQuestionIDs = fmt.Errorf("%w: question ids must be unique", ErrValidation)
)

// NewValidationError builds an ErrValidation with a custom message.
func NewValidationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NewNotFoundError builds an ErrNotFound naming the missing resource.
func NewNotFoundError(format string, args ...any) error {
	return fmt.Errorf("%s %w", fmt.Sprintf(format, args...), ErrNotFound)
}
