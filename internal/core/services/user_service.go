package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/vncsmyrnk/justask/internal/core/domain"
	"github.com/vncsmyrnk/justask/internal/core/ports"
)

type UserService struct {
	repo ports.UserRepository
	now  func() time.Time
}

func NewUserService(repo ports.UserRepository) ports.UserService {
	return &UserService{
		repo: repo,
		now:  time.Now,
	}
}

func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *UserService) CompleteOnboarding(ctx context.Context, id string, profile domain.OnboardingProfile) (*domain.User, error) {
	profile.Name = strings.TrimSpace(profile.Name)
	profile.SocialHandle = strings.TrimSpace(profile.SocialHandle)
	if profile.Name == "" || profile.SocialHandle == "" {
		return nil, domain.NewValidationError("name and social handle are required")
	}
	if profile.Age != nil && (*profile.Age < 1 || *profile.Age > 150) {
		return nil, domain.NewValidationError("age must be between 1 and 150")
	}

	user, err := s.repo.UpdateOnboarding(ctx, id, profile, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to complete onboarding: %w", err)
	}
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, id string, interests []string) (*domain.User, error) {
	interests = lo.Uniq(lo.Compact(lo.Map(interests, func(i string, _ int) string {
		return strings.TrimSpace(i)
	})))
	if len(interests) == 0 {
		return nil, domain.NewValidationError("at least one interest is required")
	}

	user, err := s.repo.UpdateInterests(ctx, id, interests, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}
