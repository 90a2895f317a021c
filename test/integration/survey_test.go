package integration

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/justask/internal/adapters/client"
	"github.com/vncsmyrnk/justask/internal/core/domain"
	"github.com/vncsmyrnk/justask/internal/core/draft"
	"github.com/vncsmyrnk/justask/internal/core/taking"
	"github.com/vncsmyrnk/justask/internal/core/templates"
)

func TestSurveyLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	resp, token := login(t, app, "valid_code")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	creator := client.New(app.Server.URL, token)
	respondent := client.New(app.Server.URL, "")

	tmpl, ok := templates.Default().Get("know-my-audience")
	require.True(t, ok)
	d := draft.FromTemplate(tmpl)
	d.SetTitle("Who reads my blog?")
	require.NoError(t, d.Validate())

	created, err := creator.CreateSurvey(testContext(t), d.Serialize())
	require.NoError(t, err)
	assert.Equal(t, "https://justask.test/survey/"+created.SurveyID, created.ShareURL)
	assert.Contains(t, created.QRCodeURL, "api.qrserver.com")

	t.Run("create requires auth", func(t *testing.T) {
		_, err := respondent.CreateSurvey(testContext(t), d.Serialize())
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("invalid survey is rejected", func(t *testing.T) {
		_, err := creator.CreateSurvey(testContext(t), domain.SurveyCreateRequest{Title: "Empty"})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	public, err := respondent.GetPublicSurvey(testContext(t), created.SurveyID)
	require.NoError(t, err)
	assert.Equal(t, "Who reads my blog?", public.Title)
	assert.Equal(t, d.QuestionCount(), public.QuestionCount)

	t.Run("unknown survey", func(t *testing.T) {
		_, err := respondent.GetPublicSurvey(testContext(t), "00000000-0000-0000-0000-000000000000")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		_, err = respondent.GetPublicSurvey(testContext(t), "not-a-uuid")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	session, err := taking.New(*public, time.Now)
	require.NoError(t, err)
	for !session.IsCompleted() {
		q := session.Current()
		before := session.Index()
		require.NoError(t, session.Answer(q.ID, answerFor(q)))
		if session.Index() == before {
			require.NoError(t, session.Next())
		}
	}
	sub, err := session.Submission()
	require.NoError(t, err)

	responseID, err := respondent.SubmitResponse(testContext(t), created.SurveyID, sub)
	require.NoError(t, err)
	assert.NotEmpty(t, responseID)

	t.Run("answer for an unknown question is rejected", func(t *testing.T) {
		_, err := respondent.SubmitResponse(testContext(t), created.SurveyID, domain.ResponseSubmission{
			Responses: []domain.QuestionResponse{{QuestionID: 999, Answer: domain.Text("x")}},
		})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	surveys, err := creator.ListSurveys(testContext(t))
	require.NoError(t, err)
	require.Len(t, surveys, 1)
	assert.EqualValues(t, 1, surveys[0].Stats.TotalResponses)

	responses, err := creator.ListResponses(testContext(t), created.SurveyID)
	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.Len(t, responses[0].Responses, len(sub.Responses))

	require.NoError(t, app.StatsSvc.SummarizeAll(testContext(t)))
	surveys, err = creator.ListSurveys(testContext(t))
	require.NoError(t, err)
	assert.EqualValues(t, 1, surveys[0].Stats.TotalResponses)
	assert.InDelta(t, 100, surveys[0].Stats.CompletionRate, 0.001)
}

func answerFor(q domain.Question) domain.Answer {
	switch q.Type {
	case domain.QuestionMultipleChoice:
		if q.Subtype == domain.SubtypeMultiSelect {
			return domain.Choices(q.Options[0])
		}
		return domain.Text(q.Options[0])
	case domain.QuestionRating, domain.QuestionSlider:
		min, _ := q.Bounds()
		return domain.Number(min)
	case domain.QuestionDate:
		return domain.Text("2025-01-01")
	case domain.QuestionTextInput:
		if q.Subtype == domain.SubtypeEmail {
			return domain.Text("ada@example.com")
		}
	}
	return domain.Text("an answer")
}
