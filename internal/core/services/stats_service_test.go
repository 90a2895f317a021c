package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vncsmyrnk/justask/internal/core/domain"
)

func TestSummarizeAll(t *testing.T) {
	surveys := newMemSurveyRepo()
	responses := &memResponseRepo{}
	ctx := context.Background()

	first := publishedSurvey(t, surveys, true)
	second := publishedSurvey(t, surveys, true)

	done := time.Now()
	thirty, ninety := 30.0, 90.0
	require.NoError(t, responses.Insert(ctx, &domain.SurveyResponse{SurveyID: first, CompletedAt: &done, TimeSpent: &thirty}))
	require.NoError(t, responses.Insert(ctx, &domain.SurveyResponse{SurveyID: first, CompletedAt: &done, TimeSpent: &ninety}))
	require.NoError(t, responses.Insert(ctx, &domain.SurveyResponse{SurveyID: first}))
	require.NoError(t, responses.Insert(ctx, &domain.SurveyResponse{SurveyID: first}))

	svc := NewStatsService(surveys, responses, zap.NewNop())
	require.NoError(t, svc.SummarizeAll(ctx))

	s, _ := surveys.GetByID(ctx, first)
	assert.Equal(t, int64(4), s.Stats.TotalResponses)
	assert.InDelta(t, 50.0, s.Stats.CompletionRate, 0.001)
	assert.InDelta(t, 60.0, s.Stats.AverageTime, 0.001)

	s, _ = surveys.GetByID(ctx, second)
	assert.Zero(t, s.Stats.TotalResponses)
}

func TestSummarizeAllReportsFailures(t *testing.T) {
	surveys := newMemSurveyRepo()
	ctx := context.Background()
	ok := publishedSurvey(t, surveys, true)
	broken := publishedSurvey(t, surveys, true)

	responses := &memResponseRepo{statsErr: map[string]error{broken: errors.New("aggregate failed")}}
	require.NoError(t, responses.Insert(ctx, &domain.SurveyResponse{SurveyID: ok}))

	err := NewStatsService(surveys, responses, zap.NewNop()).SummarizeAll(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), broken)

	s, _ := surveys.GetByID(ctx, ok)
	assert.Equal(t, int64(1), s.Stats.TotalResponses)
}
