package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/justask/internal/core/domain"
	"github.com/vncsmyrnk/justask/internal/core/draft"
)

func pollDraft(t *testing.T) *draft.Draft {
	t.Helper()
	d := draft.New()
	d.SetTitle("Poll")
	q, err := d.AddQuestion(domain.QuestionMultipleChoice)
	require.NoError(t, err)
	boolean := domain.SubtypeBoolean
	require.NoError(t, d.UpdateQuestionFields(q.ID, draft.QuestionPatch{Subtype: &boolean, Options: []string{"Yes", "No"}}))
	require.NoError(t, d.UpdateQuestionTitle(q.ID, "Do you like it?"))
	return d
}

func TestCreateSurveyRoundTrip(t *testing.T) {
	repo := newMemSurveyRepo()
	svc := NewSurveyService(repo, "https://justask.app/", "")
	ctx := context.Background()

	created, err := svc.Create(ctx, "user-1", pollDraft(t).Serialize())
	require.NoError(t, err)
	assert.Equal(t, "https://justask.app/survey/"+created.SurveyID, created.ShareURL)
	assert.Equal(t, DefaultQRCodeAPIURL+"https%3A%2F%2Fjustask.app%2Fsurvey%2F"+created.SurveyID, created.QRCodeURL)

	public, err := svc.GetPublic(ctx, created.SurveyID)
	require.NoError(t, err)
	assert.Equal(t, "Poll", public.Title)
	assert.Equal(t, 1, public.QuestionCount)
	require.Len(t, public.Questions, 1)
	assert.Equal(t, []string{"Yes", "No"}, public.Questions[0].Options)
	assert.Equal(t, "Do you like it?", public.Questions[0].Title)

	stored, _ := repo.GetByID(ctx, created.SurveyID)
	assert.True(t, stored.IsPublished)
	assert.Equal(t, created.ShareURL, stored.ShareURL)
	assert.Equal(t, domain.DefaultSettings(), stored.Settings)
	assert.Zero(t, stored.Stats.TotalResponses)
}

func TestCreateSurveyValidation(t *testing.T) {
	svc := NewSurveyService(newMemSurveyRepo(), "https://justask.app", "")
	ctx := context.Background()

	_, err := svc.Create(ctx, "user-1", domain.SurveyCreateRequest{Title: " "})
	assert.ErrorIs(t, err, domain.ErrTitleRequired)

	_, err = svc.Create(ctx, "user-1", domain.SurveyCreateRequest{Title: "T"})
	assert.ErrorIs(t, err, domain.ErrQuestionsMissing)

	_, err = svc.Create(ctx, "user-1", domain.SurveyCreateRequest{
		Title:     "T",
		Questions: []domain.Question{{ID: 1, Type: domain.QuestionMultipleChoice, Title: "Q", Options: []string{"only"}}},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientOptions)
}

func TestListForCreator(t *testing.T) {
	repo := newMemSurveyRepo()
	svc := NewSurveyService(repo, "https://justask.app", "")
	ctx := context.Background()

	_, err := svc.Create(ctx, "user-1", pollDraft(t).Serialize())
	require.NoError(t, err)
	_, err = svc.Create(ctx, "user-2", pollDraft(t).Serialize())
	require.NoError(t, err)

	list, err := svc.ListForCreator(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Poll", list[0].Title)
	assert.NotEmpty(t, list[0].ShareURL)
}

func TestGetPublicNotFound(t *testing.T) {
	repo := newMemSurveyRepo()
	svc := NewSurveyService(repo, "https://justask.app", "")
	ctx := context.Background()

	_, err := svc.GetPublic(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidSurveyID)

	_, err = svc.GetPublic(ctx, "survey-404")
	assert.ErrorIs(t, err, domain.ErrSurveyNotFound)

	hidden := &domain.Survey{Title: "Hidden", IsPublished: false}
	require.NoError(t, repo.Create(ctx, hidden))
	_, err = svc.GetPublic(ctx, hidden.ID)
	assert.ErrorIs(t, err, domain.ErrSurveyNotFound)
}
