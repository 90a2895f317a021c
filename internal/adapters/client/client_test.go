package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/justask/internal/core/domain"
)

func TestCreateSurveySendsTokenAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/surveys", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var req domain.SurveyCreateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Poll", req.Title)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"surveyId":"s1","shareUrl":"https://justask.app/survey/s1","qrCodeUrl":"qr"}`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/", "tok")
	created, err := c.CreateSurvey(context.Background(), domain.SurveyCreateRequest{Title: "Poll"})
	require.NoError(t, err)
	assert.Equal(t, "s1", created.SurveyID)
	assert.Equal(t, "https://justask.app/survey/s1", created.ShareURL)
}

func TestSubmitResponseRoundTripsAnswers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/surveys/s1/responses", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		var sub domain.ResponseSubmission
		require.NoError(t, json.NewDecoder(r.Body).Decode(&sub))
		require.Len(t, sub.Responses, 2)
		assert.True(t, sub.Responses[0].Answer.Equal(domain.Number(4)))
		assert.True(t, sub.Responses[1].Answer.Equal(domain.Choices("a", "b")))

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"responseId":"r1"}`))
	}))
	defer srv.Close()

	id, err := New(srv.URL, "").SubmitResponse(context.Background(), "s1", domain.ResponseSubmission{
		Responses: []domain.QuestionResponse{
			{QuestionID: 1, Answer: domain.Number(4)},
			{QuestionID: 2, Answer: domain.Choices("a", "b")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "r1", id)
}

func TestErrorsMapToDomain(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusBadRequest, domain.ErrValidation},
		{http.StatusUnauthorized, domain.ErrUnauthorized},
		{http.StatusForbidden, domain.ErrForbidden},
		{http.StatusNotFound, domain.ErrNotFound},
		{http.StatusInternalServerError, domain.ErrInternal},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"message":"nope"}`))
			}))
			defer srv.Close()

			_, err := New(srv.URL, "").GetPublicSurvey(context.Background(), "s1")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, "nope", apiErr.Message)
		})
	}
}
