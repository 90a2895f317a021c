package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/vncsmyrnk/justask/internal/core/domain"
	"github.com/vncsmyrnk/justask/internal/core/ports"
)

const DefaultQRCodeAPIURL = "https://api.qrserver.com/v1/create-qr-code/?size=200x200&data="

type surveyService struct {
	repo          ports.SurveyRepository
	publicBaseURL string
	qrCodeAPIURL  string
	now           func() time.Time
}

// NewSurveyService builds share links under publicBaseURL. qrCodeAPIURL is a
// prefix the escaped share link is appended to.
func NewSurveyService(repo ports.SurveyRepository, publicBaseURL, qrCodeAPIURL string) ports.SurveyService {
	if qrCodeAPIURL == "" {
		qrCodeAPIURL = DefaultQRCodeAPIURL
	}
	return &surveyService{
		repo:          repo,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		qrCodeAPIURL:  qrCodeAPIURL,
		now:           time.Now,
	}
}

func (s *surveyService) Create(ctx context.Context, creatorID string, req domain.SurveyCreateRequest) (*domain.SurveyCreated, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, domain.ErrTitleRequired
	}
	if err := domain.ValidateQuestions(req.Questions); err != nil {
		return nil, err
	}

	settings := domain.DefaultSettings()
	if req.Settings != nil {
		settings = *req.Settings
	}

	now := s.now().UTC()
	survey := &domain.Survey{
		Title:         title,
		Description:   strings.TrimSpace(req.Description),
		Questions:     domain.CloneQuestions(req.Questions),
		QuestionCount: len(req.Questions),
		EstimatedTime: strings.TrimSpace(req.EstimatedTime),
		Settings:      settings,
		IsPublished:   true,
		CreatedBy:     creatorID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, survey); err != nil {
		return nil, fmt.Errorf("failed to create survey: %w", err)
	}

	shareURL := s.shareURL(survey.ID)
	if err := s.repo.SetShareURL(ctx, survey.ID, shareURL); err != nil {
		return nil, fmt.Errorf("failed to set share url: %w", err)
	}

	return &domain.SurveyCreated{
		SurveyID:  survey.ID,
		ShareURL:  shareURL,
		QRCodeURL: s.qrCodeAPIURL + url.QueryEscape(shareURL),
	}, nil
}

func (s *surveyService) shareURL(id string) string {
	return s.publicBaseURL + "/survey/" + id
}

func (s *surveyService) ListForCreator(ctx context.Context, creatorID string) ([]domain.SurveySummary, error) {
	surveys, err := s.repo.ListByCreator(ctx, creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list surveys: %w", err)
	}
	return lo.Map(surveys, func(sv *domain.Survey, _ int) domain.SurveySummary {
		return sv.Summary()
	}), nil
}

func (s *surveyService) GetPublic(ctx context.Context, id string) (*domain.PublicSurvey, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.ErrInvalidSurveyID
	}
	survey, err := s.repo.GetPublished(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get survey: %w", err)
	}
	return survey.Public(), nil
}
