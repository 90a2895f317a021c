package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/mail"
	"slices"
	"strings"
	"time"
)

// AnswerValue is implemented by the closed set of answer kinds below.
type AnswerValue interface {
	isAnswer()
}

type (
	TextAnswer    string
	NumberAnswer  float64
	BoolAnswer    bool
	ChoicesAnswer []string
)

func (TextAnswer) isAnswer()    {}
func (NumberAnswer) isAnswer()  {}
func (BoolAnswer) isAnswer()    {}
func (ChoicesAnswer) isAnswer() {}

// Answer is a respondent's value for one question. On the wire it is a plain
// JSON string, number, boolean or array of strings.
type Answer struct {
	value AnswerValue
}

func Text(s string) Answer          { return Answer{value: TextAnswer(s)} }
func Number(f float64) Answer       { return Answer{value: NumberAnswer(f)} }
func Bool(b bool) Answer            { return Answer{value: BoolAnswer(b)} }
func Choices(c ...string) Answer    { return Answer{value: ChoicesAnswer(append([]string(nil), c...))} }
func (a Answer) Value() AnswerValue { return a.value }
func (a Answer) IsZero() bool       { return a.value == nil }

// Raw returns the answer as a plain Go value suitable for generic encoders.
func (a Answer) Raw() any {
	switch v := a.value.(type) {
	case TextAnswer:
		return string(v)
	case NumberAnswer:
		return float64(v)
	case BoolAnswer:
		return bool(v)
	case ChoicesAnswer:
		return []string(v)
	}
	return nil
}

// AnswerFromRaw is the inverse of Raw. Arrays must contain only strings.
func AnswerFromRaw(raw any) (Answer, error) {
	switch v := raw.(type) {
	case string:
		return Text(v), nil
	case bool:
		return Bool(v), nil
	case float64:
		return Number(v), nil
	case float32:
		return Number(float64(v)), nil
	case int:
		return Number(float64(v)), nil
	case int32:
		return Number(float64(v)), nil
	case int64:
		return Number(float64(v)), nil
	case []string:
		return Choices(v...), nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return Answer{}, fmt.Errorf("%w: choice %v is not a string", ErrAnswerTypeMismatch, item)
			}
			out = append(out, s)
		}
		return Choices(out...), nil
	}
	return Answer{}, fmt.Errorf("%w: unsupported answer value %T", ErrAnswerTypeMismatch, raw)
}

func (a Answer) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Raw())
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		a.value = nil
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		a.value = TextAnswer(s)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		a.value = BoolAnswer(b)
	case '[':
		var c []string
		if err := json.Unmarshal(data, &c); err != nil {
			return fmt.Errorf("%w: %v", ErrAnswerTypeMismatch, err)
		}
		a.value = ChoicesAnswer(c)
	default:
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			return fmt.Errorf("%w: %v", ErrAnswerTypeMismatch, err)
		}
		a.value = NumberAnswer(f)
	}
	return nil
}

func (a Answer) String() string {
	switch v := a.value.(type) {
	case TextAnswer:
		return string(v)
	case NumberAnswer:
		return fmt.Sprintf("%g", float64(v))
	case BoolAnswer:
		if v {
			return "Yes"
		}
		return "No"
	case ChoicesAnswer:
		return strings.Join(v, ", ")
	}
	return ""
}

// Equal compares two answers by kind and value.
func (a Answer) Equal(b Answer) bool {
	switch v := a.value.(type) {
	case ChoicesAnswer:
		w, ok := b.value.(ChoicesAnswer)
		return ok && slices.Equal(v, w)
	case nil:
		return b.value == nil
	}
	return a.value == b.value
}

var dateLayouts = []string{"2006-01-02", time.RFC3339}

// Accepts reports whether a is a valid answer to q.
func (q Question) Accepts(a Answer) error {
	switch q.Type {
	case QuestionMultipleChoice:
		return q.acceptsChoice(a)
	case QuestionTextInput:
		s, ok := a.value.(TextAnswer)
		if !ok {
			return ErrAnswerTypeMismatch
		}
		if q.Subtype == SubtypeEmail && s != "" {
			if _, err := mail.ParseAddress(string(s)); err != nil {
				return NewValidationError("answer is not a valid email address")
			}
		}
		return nil
	case QuestionRating, QuestionSlider:
		n, ok := a.value.(NumberAnswer)
		if !ok {
			return ErrAnswerTypeMismatch
		}
		min, max := q.Bounds()
		if float64(n) < min || float64(n) > max {
			return ErrAnswerOutOfRange
		}
		return nil
	case QuestionDate:
		s, ok := a.value.(TextAnswer)
		if !ok {
			return ErrAnswerTypeMismatch
		}
		for _, layout := range dateLayouts {
			if _, err := time.Parse(layout, string(s)); err == nil {
				return nil
			}
		}
		return ErrAnswerInvalidDate
	case QuestionFileUpload:
		s, ok := a.value.(TextAnswer)
		if !ok || strings.TrimSpace(string(s)) == "" {
			return ErrAnswerTypeMismatch
		}
		return nil
	}
	return ErrUnknownQuestionType
}

func (q Question) acceptsChoice(a Answer) error {
	switch v := a.value.(type) {
	case ChoicesAnswer:
		if q.Subtype != SubtypeMultiSelect || len(v) == 0 {
			return ErrAnswerTypeMismatch
		}
		for _, c := range v {
			if !slices.Contains(q.Options, c) {
				return ErrAnswerNotAnOption
			}
		}
		return nil
	case BoolAnswer:
		if q.Subtype != SubtypeBoolean {
			return ErrAnswerTypeMismatch
		}
		return nil
	case TextAnswer:
		if q.Subtype == SubtypeMultiSelect {
			return ErrAnswerTypeMismatch
		}
		if !slices.Contains(q.Options, string(v)) {
			return ErrAnswerNotAnOption
		}
		return nil
	}
	return ErrAnswerTypeMismatch
}
