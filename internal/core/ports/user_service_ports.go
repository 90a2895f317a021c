package ports

import (
	"context"

	"github.com/vncsmyrnk/justask/internal/core/domain"
)

type UserService interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	CompleteOnboarding(ctx context.Context, id string, profile domain.OnboardingProfile) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, interests []string) (*domain.User, error)
}
