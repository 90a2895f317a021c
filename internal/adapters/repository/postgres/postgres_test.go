package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/vncsmyrnk/justask/internal/core/domain"
)

func setupDatabase(t *testing.T) *sql.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx, "postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("user"),
		tcpostgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := Open(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	applied, err := Migrate(ctx, db)
	require.NoError(t, err)
	require.Len(t, applied, 3)
	return db
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := setupDatabase(t)

	applied, err := Migrate(context.Background(), db)
	require.NoError(t, err)
	assert.Empty(t, applied)

	name, err := MigrateOne(context.Background(), db, "create_surveys")
	require.NoError(t, err)
	assert.Equal(t, "002_create_surveys", name)

	_, err = MigrateOne(context.Background(), db, "missing")
	assert.Error(t, err)
}

func createUser(t *testing.T, db *sql.DB) string {
	t.Helper()
	user, err := NewUserRepository(db).UpsertGoogleUser(context.Background(), domain.GoogleIdentity{
		Subject: uuid.NewString(),
		Email:   "creator@example.com",
		Name:    "Creator",
	}, time.Now().UTC())
	require.NoError(t, err)
	return user.ID
}

func TestUserRepository(t *testing.T) {
	db := setupDatabase(t)
	repo := NewUserRepository(db)
	ctx := context.Background()
	first := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	user, err := repo.UpsertGoogleUser(ctx, domain.GoogleIdentity{Subject: "google-1", Email: "ada@example.com", Name: "Ada"}, first)
	require.NoError(t, err)
	assert.False(t, user.OnboardingComplete)

	again, err := repo.UpsertGoogleUser(ctx, domain.GoogleIdentity{Subject: "google-1", Email: "ada@new.example.com", Name: "Other"}, first.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)
	assert.Equal(t, "Ada", again.Name)
	assert.Equal(t, "ada@new.example.com", again.Email)
	assert.True(t, first.Equal(again.CreatedAt))

	onboarded, err := repo.UpdateOnboarding(ctx, user.ID, domain.OnboardingProfile{Name: "Ada L", SocialHandle: "@ada"}, first)
	require.NoError(t, err)
	assert.True(t, onboarded.OnboardingComplete)
	assert.Nil(t, onboarded.Age)

	profiled, err := repo.UpdateInterests(ctx, user.ID, []string{"tech", "music"}, first)
	require.NoError(t, err)
	assert.Equal(t, []string{"tech", "music"}, profiled.Interests)

	_, err = repo.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	_, err = repo.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrInvalidUserID)
}

func newSurvey(creator string, published bool) *domain.Survey {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.Survey{
		Title: "Poll",
		Questions: []domain.Question{
			{ID: 1, Type: domain.QuestionMultipleChoice, Subtype: domain.SubtypeBoolean, Title: "Like it?", Options: []string{"Yes", "No"}, Required: true},
			{ID: 2, Type: domain.QuestionTextInput, Title: "Why?", Placeholder: "Tell us"},
		},
		Settings:    domain.DefaultSettings(),
		IsPublished: published,
		CreatedBy:   creator,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestSurveyRepository(t *testing.T) {
	db := setupDatabase(t)
	repo := NewSurveyRepository(db)
	ctx := context.Background()
	creator := createUser(t, db)

	survey := newSurvey(creator, true)
	require.NoError(t, repo.Create(ctx, survey))
	require.NoError(t, repo.SetShareURL(ctx, survey.ID, "https://justask.app/survey/"+survey.ID))

	got, err := repo.GetPublished(ctx, survey.ID)
	require.NoError(t, err)
	assert.Equal(t, survey.Questions, got.Questions)
	assert.Equal(t, 2, got.QuestionCount)
	assert.Equal(t, creator, got.CreatedBy)

	hidden := newSurvey(creator, false)
	require.NoError(t, repo.Create(ctx, hidden))
	_, err = repo.GetPublished(ctx, hidden.ID)
	assert.ErrorIs(t, err, domain.ErrSurveyNotFound)

	_, err = repo.GetPublished(ctx, "123")
	assert.ErrorIs(t, err, domain.ErrInvalidSurveyID)

	list, err := repo.ListByCreator(ctx, creator)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	ids, err := repo.ListIDs(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{survey.ID, hidden.ID}, ids)

	require.NoError(t, repo.SetStats(ctx, survey.ID, domain.SurveyStats{TotalResponses: 3, CompletionRate: 66.6, AverageTime: 12}))
	got, _ = repo.GetByID(ctx, survey.ID)
	assert.Equal(t, int64(3), got.Stats.TotalResponses)

	assert.ErrorIs(t, repo.IncrementResponses(ctx, uuid.NewString()), domain.ErrSurveyNotFound)
}

func TestIncrementResponsesIsAtomic(t *testing.T) {
	db := setupDatabase(t)
	repo := NewSurveyRepository(db)
	ctx := context.Background()

	survey := newSurvey(createUser(t, db), true)
	require.NoError(t, repo.Create(ctx, survey))

	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, repo.IncrementResponses(ctx, survey.ID))
		}()
	}
	wg.Wait()

	got, err := repo.GetByID(ctx, survey.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(25), got.Stats.TotalResponses)
}

func TestResponseRepository(t *testing.T) {
	db := setupDatabase(t)
	surveys := NewSurveyRepository(db)
	repo := NewResponseRepository(db)
	ctx := context.Background()

	survey := newSurvey(createUser(t, db), true)
	require.NoError(t, surveys.Create(ctx, survey))

	done := time.Now().UTC().Truncate(time.Microsecond)
	for i, spent := range []float64{20, 40} {
		resp := &domain.SurveyResponse{
			SurveyID: survey.ID,
			Responses: []domain.QuestionResponse{
				{QuestionID: 1, Answer: domain.Text("Yes"), AnsweredAt: done},
				{QuestionID: 2, Answer: domain.Text(fmt.Sprintf("reason %d", i)), AnsweredAt: done},
			},
			CompletedAt: &done,
			TimeSpent:   &spent,
			SubmittedAt: done.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, repo.Insert(ctx, resp))
		require.NotEmpty(t, resp.ID)
	}
	require.NoError(t, repo.Insert(ctx, &domain.SurveyResponse{
		SurveyID:    survey.ID,
		Responses:   []domain.QuestionResponse{{QuestionID: 1, Answer: domain.Text("No"), AnsweredAt: done}},
		SubmittedAt: done.Add(time.Minute),
	}))

	list, err := repo.ListBySurvey(ctx, survey.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "reason 1", list[1].Responses[1].Answer.String())
	assert.Nil(t, list[2].CompletedAt)

	stats, err := repo.StatsFor(ctx, survey.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalResponses)
	assert.InDelta(t, 66.666, stats.CompletionRate, 0.01)
	assert.InDelta(t, 30.0, stats.AverageTime, 0.001)

	assert.ErrorContains(t, repo.Insert(ctx, &domain.SurveyResponse{SurveyID: uuid.NewString(), SubmittedAt: done}), "failed to insert response")
}
