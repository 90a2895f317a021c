package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/vncsmyrnk/justask/internal/core/domain"
	"github.com/vncsmyrnk/justask/internal/core/ports"
)

type fakeGoogle struct {
	identity *domain.GoogleIdentity
	err      error
}

func (f *fakeGoogle) Exchange(ctx context.Context, code, redirectURI string) (*domain.GoogleIdentity, error) {
	if f.err != nil {
		return nil, f.err
	}
	id := *f.identity
	return &id, nil
}

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
	seq   int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*domain.User{}}
}

func (r *memUserRepo) UpsertGoogleUser(ctx context.Context, identity domain.GoogleIdentity, at time.Time) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.GoogleID == identity.Subject {
			u.Email, u.Name, u.Picture = identity.Email, identity.Name, identity.Picture
			u.LastLogin = &at
			u.UpdatedAt = at
			c := *u
			return &c, nil
		}
	}
	r.seq++
	u := &domain.User{
		ID:        fmt.Sprintf("user-%d", r.seq),
		GoogleID:  identity.Subject,
		Email:     identity.Email,
		Name:      identity.Name,
		Picture:   identity.Picture,
		LastLogin: &at,
		CreatedAt: at,
		UpdatedAt: at,
	}
	r.users[u.ID] = u
	c := *u
	return &c, nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	c := *u
	return &c, nil
}

func (r *memUserRepo) UpdateOnboarding(ctx context.Context, id string, p domain.OnboardingProfile, at time.Time) (*domain.User, error) {
	r.mu.Lock()
	u, ok := r.users[id]
	if ok {
		u.Name, u.SocialHandle, u.Gender, u.Age, u.Location = p.Name, p.SocialHandle, p.Gender, p.Age, p.Location
		u.OnboardingComplete = true
		u.UpdatedAt = at
	}
	r.mu.Unlock()
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *memUserRepo) UpdateInterests(ctx context.Context, id string, interests []string, at time.Time) (*domain.User, error) {
	r.mu.Lock()
	u, ok := r.users[id]
	if ok {
		u.Interests = interests
		u.ProfileCreated = true
		u.UpdatedAt = at
	}
	r.mu.Unlock()
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return r.GetByID(ctx, id)
}

type memSurveyRepo struct {
	mu      sync.Mutex
	surveys map[string]*domain.Survey
	order   []string
	seq     int
	incErr  error
}

func newMemSurveyRepo() *memSurveyRepo {
	return &memSurveyRepo{surveys: map[string]*domain.Survey{}}
}

func (r *memSurveyRepo) Create(ctx context.Context, s *domain.Survey) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	s.ID = fmt.Sprintf("survey-%d", r.seq)
	c := *s
	c.Questions = domain.CloneQuestions(s.Questions)
	r.surveys[s.ID] = &c
	r.order = append(r.order, s.ID)
	return nil
}

func (r *memSurveyRepo) SetShareURL(ctx context.Context, id, shareURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.surveys[id]
	if !ok {
		return domain.ErrSurveyNotFound
	}
	s.ShareURL = shareURL
	return nil
}

func (r *memSurveyRepo) GetByID(ctx context.Context, id string) (*domain.Survey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.surveys[id]
	if !ok {
		return nil, domain.ErrSurveyNotFound
	}
	c := *s
	c.Questions = domain.CloneQuestions(s.Questions)
	return &c, nil
}

func (r *memSurveyRepo) GetPublished(ctx context.Context, id string) (*domain.Survey, error) {
	s, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.IsPublished {
		return nil, domain.ErrSurveyNotFound
	}
	return s, nil
}

func (r *memSurveyRepo) ListByCreator(ctx context.Context, creatorID string) ([]*domain.Survey, error) {
	var out []*domain.Survey
	for _, id := range r.order {
		s, _ := r.GetByID(ctx, id)
		if s.CreatedBy == creatorID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memSurveyRepo) ListIDs(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.order...), nil
}

func (r *memSurveyRepo) IncrementResponses(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.incErr != nil {
		return r.incErr
	}
	s, ok := r.surveys[id]
	if !ok {
		return domain.ErrSurveyNotFound
	}
	s.Stats.TotalResponses++
	return nil
}

func (r *memSurveyRepo) SetStats(ctx context.Context, id string, stats domain.SurveyStats) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.surveys[id]
	if !ok {
		return domain.ErrSurveyNotFound
	}
	s.Stats = stats
	return nil
}

type memResponseRepo struct {
	mu        sync.Mutex
	responses []*domain.SurveyResponse
	statsErr  map[string]error
}

func (r *memResponseRepo) Insert(ctx context.Context, resp *domain.SurveyResponse) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	resp.ID = fmt.Sprintf("response-%d", len(r.responses)+1)
	r.responses = append(r.responses, resp)
	return nil
}

func (r *memResponseRepo) ListBySurvey(ctx context.Context, surveyID string) ([]*domain.SurveyResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.SurveyResponse
	for _, resp := range r.responses {
		if resp.SurveyID == surveyID {
			out = append(out, resp)
		}
	}
	return out, nil
}

func (r *memResponseRepo) StatsFor(ctx context.Context, surveyID string) (domain.SurveyStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.statsErr[surveyID]; err != nil {
		return domain.SurveyStats{}, err
	}
	var stats domain.SurveyStats
	var completed int
	var total float64
	var timed int
	for _, resp := range r.responses {
		if resp.SurveyID != surveyID {
			continue
		}
		stats.TotalResponses++
		if resp.CompletedAt != nil {
			completed++
		}
		if resp.TimeSpent != nil {
			total += *resp.TimeSpent
			timed++
		}
	}
	if stats.TotalResponses > 0 {
		stats.CompletionRate = float64(completed) / float64(stats.TotalResponses) * 100
	}
	if timed > 0 {
		stats.AverageTime = total / float64(timed)
	}
	return stats, nil
}

var (
	_ ports.UserRepository      = (*memUserRepo)(nil)
	_ ports.SurveyRepository    = (*memSurveyRepo)(nil)
	_ ports.ResponseRepository  = (*memResponseRepo)(nil)
	_ ports.GoogleAuthenticator = (*fakeGoogle)(nil)
)
