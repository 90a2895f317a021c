package ports

import (
	"context"

	"github.com/vncsmyrnk/justask/internal/core/domain"
)

// SurveyRepository stores published surveys. Implementations return
// domain.ErrInvalidSurveyID for ids they cannot parse and
// domain.ErrSurveyNotFound for ids they do not hold.
type SurveyRepository interface {
	// Create assigns survey.ID.
	Create(ctx context.Context, survey *domain.Survey) error
	SetShareURL(ctx context.Context, id, shareURL string) error
	GetByID(ctx context.Context, id string) (*domain.Survey, error)
	// GetPublished behaves like GetByID but treats unpublished surveys as missing.
	GetPublished(ctx context.Context, id string) (*domain.Survey, error)
	ListByCreator(ctx context.Context, creatorID string) ([]*domain.Survey, error)
	ListIDs(ctx context.Context) ([]string, error)
	// IncrementResponses atomically adds one to stats.totalResponses.
	IncrementResponses(ctx context.Context, id string) error
	SetStats(ctx context.Context, id string, stats domain.SurveyStats) error
}

type SurveyService interface {
	Create(ctx context.Context, creatorID string, req domain.SurveyCreateRequest) (*domain.SurveyCreated, error)
	ListForCreator(ctx context.Context, creatorID string) ([]domain.SurveySummary, error)
	GetPublic(ctx context.Context, id string) (*domain.PublicSurvey, error)
}
