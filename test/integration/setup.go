package integration

import (
	"context"
	"database/sql"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	handler "github.com/vncsmyrnk/justask/internal/adapters/handler/http"
	"github.com/vncsmyrnk/justask/internal/adapters/repository/cache"
	repo "github.com/vncsmyrnk/justask/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/justask/internal/core/domain"
	"github.com/vncsmyrnk/justask/internal/core/ports"
	"github.com/vncsmyrnk/justask/internal/core/services"
	"github.com/vncsmyrnk/justask/internal/core/templates"
)

const testSecret = "test-secret"

type TestApp struct {
	DB          *sql.DB
	Server      *httptest.Server
	StatsSvc    ports.StatsService
	DBContainer testcontainers.Container
}

func (app *TestApp) Teardown(t *testing.T) {
	app.Server.Close()
	app.DB.Close()
	require.NoError(t, app.DBContainer.Terminate(context.Background()))
}

// MockGoogle accepts the code "valid_code" for a fixed identity.
type MockGoogle struct {
	identity domain.GoogleIdentity
}

func (m *MockGoogle) Exchange(ctx context.Context, code, redirectURI string) (*domain.GoogleIdentity, error) {
	if code != "valid_code" {
		return nil, domain.ErrGoogleRejected
	}
	identity := m.identity
	return &identity, nil
}

func setupPostgresContainer(ctx context.Context) (testcontainers.Container, string, error) {
	dbName := "testdb"
	user := "user"
	password := "password"

	pgContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(user),
		postgres.WithPassword(password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", err
	}

	return pgContainer, connStr, nil
}

func setupTestApp(t *testing.T) *TestApp {
	t.Helper()
	ctx := context.Background()

	dbContainer, dbURL, err := setupPostgresContainer(ctx)
	require.NoError(t, err)

	db, err := repo.Open(ctx, dbURL)
	require.NoError(t, err)

	_, err = repo.Migrate(ctx, db)
	require.NoError(t, err)

	logger := zap.NewNop()
	userRepo := repo.NewUserRepository(db)
	responseRepo := repo.NewResponseRepository(db)
	surveyRepo, err := cache.NewSurveyRepository(repo.NewSurveyRepository(db), time.Minute, logger)
	require.NoError(t, err)

	google := &MockGoogle{identity: domain.GoogleIdentity{
		Subject: "google-ada",
		Email:   "ada@example.com",
		Name:    "Ada",
	}}
	authSvc := services.NewAuthService(userRepo, google, testSecret, services.DefaultTokenTTL)
	responseSvc := services.NewResponseService(surveyRepo, responseRepo, logger)

	router := handler.NewHandler(handler.Handlers{
		Auth:      handler.NewAuthHandler(authSvc),
		Users:     handler.NewUserHandler(services.NewUserService(userRepo)),
		Surveys:   handler.NewSurveyHandler(services.NewSurveyService(surveyRepo, "https://justask.test", ""), responseSvc),
		Responses: handler.NewResponseHandler(responseSvc),
		Templates: handler.NewTemplateHandler(templates.Default()),
	}, authSvc, logger, []string{"*"})

	return &TestApp{
		DB:          db,
		Server:      httptest.NewServer(router),
		StatsSvc:    services.NewStatsService(surveyRepo, responseRepo, logger),
		DBContainer: dbContainer,
	}
}

// testContext returns a context canceled when the test finishes
// (equivalent of testing.T.Context, which requires Go 1.24).
func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}
