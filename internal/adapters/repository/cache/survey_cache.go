// Package cache keeps published surveys in process memory in front of the
// survey repository.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/marshaler"
	"github.com/eko/gocache/lib/v4/store"
	ristretto_store "github.com/eko/gocache/store/ristretto/v4"
	"go.uber.org/zap"

	"github.com/vncsmyrnk/justask/internal/core/domain"
	"github.com/vncsmyrnk/justask/internal/core/ports"
)

const DefaultTTL = 5 * time.Minute

// surveyRepository serves GetPublished from cache. Entries are stored
// marshaled, so every reader gets its own copy. Writes that touch a survey
// evict it.
type surveyRepository struct {
	ports.SurveyRepository
	client  *ristretto.Cache
	surveys *marshaler.Marshaler
	ttl     time.Duration
	logger  *zap.Logger
}

func NewSurveyRepository(next ports.SurveyRepository, ttl time.Duration, logger *zap.Logger) (ports.SurveyRepository, error) {
	client, err := ristretto.NewCache(&ristretto.Config{
		NumCounters:        10_000,
		MaxCost:            1_000,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create survey cache: %w", err)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	manager := cache.New[any](ristretto_store.NewRistretto(client))
	return &surveyRepository{
		SurveyRepository: next,
		client:           client,
		surveys:          marshaler.New(manager),
		ttl:              ttl,
		logger:           logger,
	}, nil
}

func publishedKey(id string) string {
	return "survey-published#" + id
}

func (r *surveyRepository) GetPublished(ctx context.Context, id string) (*domain.Survey, error) {
	key := publishedKey(id)
	if cached, err := r.surveys.Get(ctx, key, new(domain.Survey)); err == nil {
		return cached.(*domain.Survey), nil
	}

	survey, err := r.SurveyRepository.GetPublished(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.surveys.Set(ctx, key, survey, store.WithExpiration(r.ttl), store.WithCost(1)); err != nil {
		r.logger.Warn("Failed to cache survey", zap.String("survey_id", id), zap.Error(err))
	} else {
		r.client.Wait()
	}
	return survey, nil
}

func (r *surveyRepository) evict(ctx context.Context, id string) {
	_ = r.surveys.Delete(ctx, publishedKey(id))
}

func (r *surveyRepository) SetShareURL(ctx context.Context, id, shareURL string) error {
	defer r.evict(ctx, id)
	return r.SurveyRepository.SetShareURL(ctx, id, shareURL)
}

func (r *surveyRepository) IncrementResponses(ctx context.Context, id string) error {
	defer r.evict(ctx, id)
	return r.SurveyRepository.IncrementResponses(ctx, id)
}

func (r *surveyRepository) SetStats(ctx context.Context, id string, stats domain.SurveyStats) error {
	defer r.evict(ctx, id)
	return r.SurveyRepository.SetStats(ctx, id, stats)
}
