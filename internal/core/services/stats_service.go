package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/vncsmyrnk/justask/internal/core/ports"
)

type statsService struct {
	surveyRepo   ports.SurveyRepository
	responseRepo ports.ResponseRepository
	logger       *zap.Logger
}

func NewStatsService(surveyRepo ports.SurveyRepository, responseRepo ports.ResponseRepository, logger *zap.Logger) ports.StatsService {
	return &statsService{
		surveyRepo:   surveyRepo,
		responseRepo: responseRepo,
		logger:       logger,
	}
}

// SummarizeAll recomputes the stats of every survey from its stored responses.
func (s *statsService) SummarizeAll(ctx context.Context) error {
	ids, err := s.surveyRepo.ListIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch all surveys: %w", err)
	}

	var wg sync.WaitGroup
	errChan := make(chan error, len(ids))

	for _, id := range ids {
		id := id
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.summarize(ctx, id); err != nil {
				s.logger.Warn("Failed to summarize survey", zap.String("survey_id", id), zap.Error(err))
				errChan <- fmt.Errorf("failed to summarize survey %s: %w", id, err)
			}
		}()
	}

	wg.Wait()
	close(errChan)

	var errs []error
	for err := range errChan {
		errs = append(errs, err)
	}

	s.logger.Info("Survey stats summarized", zap.Int("surveys", len(ids)), zap.Int("failed", len(errs)))
	return errors.Join(errs...)
}

func (s *statsService) summarize(ctx context.Context, id string) error {
	stats, err := s.responseRepo.StatsFor(ctx, id)
	if err != nil {
		return err
	}
	return s.surveyRepo.SetStats(ctx, id, stats)
}
