package ports

import (
	"context"

	"github.com/vncsmyrnk/justask/internal/core/domain"
)

// GoogleAuthenticator trades an OAuth authorization code for a verified identity.
type GoogleAuthenticator interface {
	Exchange(ctx context.Context, code, redirectURI string) (*domain.GoogleIdentity, error)
}

// TokenClaims are the session facts carried by an issued token.
type TokenClaims struct {
	UserID             string
	Email              string
	OnboardingComplete bool
}

type LoginResult struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

type AuthService interface {
	LoginWithGoogle(ctx context.Context, code, redirectURI string) (*LoginResult, error)
	ParseToken(token string) (*TokenClaims, error)
}
