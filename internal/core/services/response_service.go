package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/vncsmyrnk/justask/internal/core/domain"
	"github.com/vncsmyrnk/justask/internal/core/ports"
)

type responseService struct {
	surveyRepo   ports.SurveyRepository
	responseRepo ports.ResponseRepository
	logger       *zap.Logger
	now          func() time.Time
}

func NewResponseService(surveyRepo ports.SurveyRepository, responseRepo ports.ResponseRepository, logger *zap.Logger) ports.ResponseService {
	return &responseService{
		surveyRepo:   surveyRepo,
		responseRepo: responseRepo,
		logger:       logger,
		now:          time.Now,
	}
}

// Submit stores a response set for a published survey and bumps its counter.
// Nothing is written when the survey is missing or the answers do not fit it.
func (s *responseService) Submit(ctx context.Context, surveyID string, submission domain.ResponseSubmission, ip string) (string, error) {
	surveyID = strings.TrimSpace(surveyID)
	if surveyID == "" {
		return "", domain.ErrInvalidSurveyID
	}
	if len(submission.Responses) == 0 {
		return "", domain.ErrEmptyResponses
	}

	survey, err := s.surveyRepo.GetPublished(ctx, surveyID)
	if err != nil {
		return "", fmt.Errorf("failed to get survey: %w", err)
	}
	if err := checkResponses(survey.Questions, submission.Responses); err != nil {
		return "", err
	}

	resp := &domain.SurveyResponse{
		SurveyID:    surveyID,
		Responses:   submission.Responses,
		CompletedAt: submission.CompletedAt,
		TimeSpent:   submission.TimeSpent,
		SubmittedAt: s.now().UTC(),
		IPAddress:   ip,
	}
	if err := s.responseRepo.Insert(ctx, resp); err != nil {
		return "", fmt.Errorf("failed to insert response: %w", err)
	}

	// The response is already stored; a failed counter update is repaired by
	// the next stats run.
	if err := s.surveyRepo.IncrementResponses(ctx, surveyID); err != nil {
		s.logger.Error("Failed to increment response count",
			zap.String("survey_id", surveyID),
			zap.String("response_id", resp.ID),
			zap.Error(err),
		)
	}

	return resp.ID, nil
}

// ListForSurvey hides surveys owned by someone else behind ErrSurveyNotFound.
func (s *responseService) ListForSurvey(ctx context.Context, creatorID, surveyID string) ([]*domain.SurveyResponse, error) {
	survey, err := s.surveyRepo.GetByID(ctx, surveyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get survey: %w", err)
	}
	if survey.CreatedBy != creatorID {
		return nil, domain.ErrSurveyNotFound
	}
	responses, err := s.responseRepo.ListBySurvey(ctx, surveyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list responses: %w", err)
	}
	return responses, nil
}

func checkResponses(questions []domain.Question, responses []domain.QuestionResponse) error {
	seen := make(map[int64]struct{}, len(responses))
	for _, r := range responses {
		if _, dup := seen[r.QuestionID]; dup {
			return domain.NewValidationError("question %d answered more than once", r.QuestionID)
		}
		seen[r.QuestionID] = struct{}{}

		i := domain.FindQuestion(questions, r.QuestionID)
		if i < 0 {
			return domain.NewValidationError("question %d is not part of this survey", r.QuestionID)
		}
		if r.Answer.IsZero() {
			return domain.NewValidationError("question %d has no answer", r.QuestionID)
		}
		if err := questions[i].Accepts(r.Answer); err != nil {
			return fmt.Errorf("question %d: %w", r.QuestionID, err)
		}
	}
	return nil
}
