package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(f float64) *float64 { return &f }

func TestValidateForPublish(t *testing.T) {
	tests := []struct {
		name string
		q    Question
		want []error
	}{
		{
			name: "valid multiple choice",
			q:    Question{ID: 1, Type: QuestionMultipleChoice, Title: "Pick", Options: []string{"A", "B"}},
		},
		{
			name: "missing title",
			q:    Question{ID: 1, Type: QuestionTextInput, Title: "  "},
			want: []error{ErrMissingTitle},
		},
		{
			name: "one option",
			q:    Question{ID: 1, Type: QuestionMultipleChoice, Title: "Pick", Options: []string{"A"}},
			want: []error{ErrInsufficientOptions},
		},
		{
			name: "blank options do not count",
			q:    Question{ID: 1, Type: QuestionMultipleChoice, Title: "Pick", Options: []string{"A", " "}},
			want: []error{ErrInsufficientOptions},
		},
		{
			name: "inverted range",
			q:    Question{ID: 1, Type: QuestionSlider, Title: "Slide", MinValue: ptr(10), MaxValue: ptr(1)},
			want: []error{ErrInvalidRange},
		},
		{
			name: "rating with default bounds",
			q:    Question{ID: 1, Type: QuestionRating, Title: "Rate"},
		},
		{
			name: "subtype from another type",
			q:    Question{ID: 1, Type: QuestionRating, Subtype: SubtypeLongText, Title: "Rate"},
			want: []error{ErrInvalidSubtype},
		},
		{
			name: "unknown type",
			q:    Question{ID: 1, Type: "matrix", Title: "Grid"},
			want: []error{ErrUnknownQuestionType},
		},
		{
			name: "several problems at once",
			q:    Question{ID: 1, Type: QuestionMultipleChoice},
			want: []error{ErrMissingTitle, ErrInsufficientOptions},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateForPublish(tt.q)
			if len(tt.want) == 0 {
				assert.True(t, res.Valid())
				assert.NoError(t, res.Err())
				return
			}
			require.False(t, res.Valid())
			assert.ElementsMatch(t, tt.want, res.Errors)
			for _, w := range tt.want {
				assert.ErrorIs(t, res.Err(), w)
			}
			assert.ErrorIs(t, res.Err(), ErrValidation)
		})
	}
}

func TestValidateQuestions(t *testing.T) {
	assert.ErrorIs(t, ValidateQuestions(nil), ErrQuestionsMissing)

	qs := []Question{
		{ID: 1, Type: QuestionTextInput, Title: "A"},
		{ID: 1, Type: QuestionTextInput, Title: "B"},
	}
	assert.ErrorIs(t, ValidateQuestions(qs), ErrDuplicateQuestionIDs)

	qs[1].ID = 2
	assert.NoError(t, ValidateQuestions(qs))
}

func TestQuestionCloneIsDeep(t *testing.T) {
	q := Question{ID: 1, Type: QuestionMultipleChoice, Options: []string{"A", "B"}, MinValue: ptr(1)}
	c := q.Clone()
	c.Options[0] = "changed"
	*c.MinValue = 3

	assert.Equal(t, "A", q.Options[0])
	assert.Equal(t, 1.0, *q.MinValue)
}

func TestAutoAdvances(t *testing.T) {
	assert.True(t, Question{Type: QuestionMultipleChoice}.AutoAdvances())
	assert.True(t, Question{Type: QuestionMultipleChoice, Subtype: SubtypeBoolean}.AutoAdvances())
	assert.False(t, Question{Type: QuestionMultipleChoice, Subtype: SubtypeMultiSelect}.AutoAdvances())
	assert.True(t, Question{Type: QuestionRating}.AutoAdvances())
	assert.False(t, Question{Type: QuestionTextInput}.AutoAdvances())
}
