package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vncsmyrnk/justask/internal/core/domain"
	"github.com/vncsmyrnk/justask/internal/core/ports"
)

// DefaultTokenTTL is how long an issued session token stays valid.
const DefaultTokenTTL = 7 * 24 * time.Hour

type sessionClaims struct {
	UserID             string `json:"userId"`
	Email              string `json:"email"`
	OnboardingComplete bool   `json:"onboardingComplete"`
	jwt.RegisteredClaims
}

type AuthService struct {
	userRepo  ports.UserRepository
	google    ports.GoogleAuthenticator
	jwtSecret []byte
	tokenTTL  time.Duration
	now       func() time.Time
}

func NewAuthService(userRepo ports.UserRepository, google ports.GoogleAuthenticator, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}
	return &AuthService{
		userRepo:  userRepo,
		google:    google,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		now:       time.Now,
	}
}

func (s *AuthService) LoginWithGoogle(ctx context.Context, code, redirectURI string) (*ports.LoginResult, error) {
	if strings.TrimSpace(code) == "" {
		return nil, domain.NewValidationError("authorization code is required")
	}

	identity, err := s.google.Exchange(ctx, code, redirectURI)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange google code: %w", err)
	}
	if identity.Subject == "" || identity.Email == "" {
		return nil, fmt.Errorf("%w: token has no subject or email", domain.ErrGoogleRejected)
	}

	user, err := s.userRepo.UpsertGoogleUser(ctx, *identity, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &ports.LoginResult{Token: token, User: user}, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	now := s.now()
	claims := sessionClaims{
		UserID:             user.ID,
		Email:              user.Email,
		OnboardingComplete: user.OnboardingComplete,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ParseToken verifies signature and expiry. Every failure wraps domain.ErrInvalidToken.
func (s *AuthService) ParseToken(token string) (*ports.TokenClaims, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.UserID == "" {
		return nil, domain.ErrInvalidToken
	}
	return &ports.TokenClaims{
		UserID:             claims.UserID,
		Email:              claims.Email,
		OnboardingComplete: claims.OnboardingComplete,
	}, nil
}

// IsExpired reports whether err came from an expired token.
func IsExpired(err error) bool {
	return errors.Is(err, jwt.ErrTokenExpired)
}
