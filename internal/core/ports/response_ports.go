package ports

import (
	"context"

	"github.com/vncsmyrnk/justask/internal/core/domain"
)

type ResponseRepository interface {
	// Insert assigns resp.ID.
	Insert(ctx context.Context, resp *domain.SurveyResponse) error
	// ListBySurvey returns responses oldest first.
	ListBySurvey(ctx context.Context, surveyID string) ([]*domain.SurveyResponse, error)
	// StatsFor aggregates every stored response of a survey.
	StatsFor(ctx context.Context, surveyID string) (domain.SurveyStats, error)
}

type ResponseService interface {
	Submit(ctx context.Context, surveyID string, submission domain.ResponseSubmission, ip string) (string, error)
	// ListForSurvey returns the responses of a survey owned by creatorID.
	ListForSurvey(ctx context.Context, creatorID, surveyID string) ([]*domain.SurveyResponse, error)
}
