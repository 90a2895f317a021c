package ports

import (
	"context"
	"time"

	"github.com/vncsmyrnk/justask/internal/core/domain"
)

type UserRepository interface {
	// UpsertGoogleUser creates the user on first login and refreshes the
	// identity fields and lastLogin on every later one.
	UpsertGoogleUser(ctx context.Context, identity domain.GoogleIdentity, at time.Time) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	UpdateOnboarding(ctx context.Context, id string, profile domain.OnboardingProfile, at time.Time) (*domain.User, error)
	UpdateInterests(ctx context.Context, id string, interests []string, at time.Time) (*domain.User, error)
}
