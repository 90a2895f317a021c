package google

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"

	"github.com/vncsmyrnk/justask/internal/core/domain"
	"github.com/vncsmyrnk/justask/internal/core/ports"
)

// ValidateFunc verifies a raw ID token for the given audience.
type ValidateFunc func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)

type Option func(*Authenticator)

// WithEndpoint overrides Google's token endpoint.
func WithEndpoint(endpoint oauth2.Endpoint) Option {
	return func(a *Authenticator) { a.config.Endpoint = endpoint }
}

func WithValidator(fn ValidateFunc) Option {
	return func(a *Authenticator) { a.validate = fn }
}

// Authenticator exchanges an authorization code obtained by the app for
// Google's tokens and verifies the returned ID token.
type Authenticator struct {
	config   oauth2.Config
	validate ValidateFunc
}

func NewAuthenticator(clientID, clientSecret string, opts ...Option) *Authenticator {
	a := &Authenticator{
		config: oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     googleoauth.Endpoint,
			Scopes:       []string{"openid", "email", "profile"},
		},
		validate: idtoken.Validate,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

var _ ports.GoogleAuthenticator = (*Authenticator)(nil)

func (a *Authenticator) Exchange(ctx context.Context, code, redirectURI string) (*domain.GoogleIdentity, error) {
	config := a.config
	config.RedirectURL = redirectURI

	token, err := config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: exchange code: %v", domain.ErrGoogleRejected, err)
	}

	raw, ok := token.Extra("id_token").(string)
	if !ok || raw == "" {
		return nil, fmt.Errorf("%w: no id_token in token response", domain.ErrGoogleRejected)
	}

	payload, err := a.validate(ctx, raw, a.config.ClientID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGoogleRejected, err)
	}

	return identityFrom(payload)
}

func identityFrom(payload *idtoken.Payload) (*domain.GoogleIdentity, error) {
	if payload.Subject == "" {
		return nil, fmt.Errorf("%w: subject not found in claims", domain.ErrGoogleRejected)
	}
	email, ok := payload.Claims["email"].(string)
	if !ok || email == "" {
		return nil, fmt.Errorf("%w: email not found in claims", domain.ErrGoogleRejected)
	}
	name, _ := payload.Claims["name"].(string)
	picture, _ := payload.Claims["picture"].(string)

	return &domain.GoogleIdentity{
		Subject: payload.Subject,
		Email:   email,
		Name:    name,
		Picture: picture,
	}, nil
}
