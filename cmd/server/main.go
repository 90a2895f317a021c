package main

import (
	"context"
	"errors"
	"log"
	stdhttp "net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/vncsmyrnk/justask/internal/adapters/handler/http"
	"github.com/vncsmyrnk/justask/internal/adapters/oauth/google"
	"github.com/vncsmyrnk/justask/internal/adapters/repository"
	"github.com/vncsmyrnk/justask/internal/adapters/repository/cache"
	"github.com/vncsmyrnk/justask/internal/config"
	"github.com/vncsmyrnk/justask/internal/core/services"
	"github.com/vncsmyrnk/justask/internal/core/templates"
	"github.com/vncsmyrnk/justask/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.New(logging.Options{
		Production: cfg.IsProduction(),
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	connectCtx, cancelConnect := context.WithTimeout(ctx, 30*time.Second)
	store, err := repository.Open(connectCtx, cfg, true)
	cancelConnect()
	if err != nil {
		logger.Fatal("Failed to open store", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}
	defer store.Close(context.Background())

	surveyRepo, err := cache.NewSurveyRepository(store.Surveys, cfg.PublicSurveyCacheTTL, logger)
	if err != nil {
		logger.Fatal("Failed to create survey cache", zap.Error(err))
	}

	authService := services.NewAuthService(
		store.Users,
		google.NewAuthenticator(cfg.GoogleClientID, cfg.GoogleClientSecret),
		cfg.JWTSecret,
		services.DefaultTokenTTL,
	)
	userService := services.NewUserService(store.Users)
	surveyService := services.NewSurveyService(surveyRepo, cfg.PublicBaseURL, cfg.QRCodeAPIURL)
	responseService := services.NewResponseService(surveyRepo, store.Responses, logger)
	statsService := services.NewStatsService(surveyRepo, store.Responses, logger)

	handler := http.NewHandler(http.Handlers{
		Auth:      http.NewAuthHandler(authService),
		Users:     http.NewUserHandler(userService),
		Surveys:   http.NewSurveyHandler(surveyService, responseService),
		Responses: http.NewResponseHandler(responseService),
		Templates: http.NewTemplateHandler(templates.Default()),
	}, authService, logger, cfg.AllowedOrigins())

	scheduler := cron.New()
	if cfg.StatsSchedule != "" {
		_, err := scheduler.AddFunc(cfg.StatsSchedule, func() {
			jobCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
			defer cancel()
			if err := statsService.SummarizeAll(jobCtx); err != nil {
				logger.Error("Stats summarization failed", zap.Error(err))
			}
		})
		if err != nil {
			logger.Fatal("Invalid STATS_SCHEDULE", zap.String("schedule", cfg.StatsSchedule), zap.Error(err))
		}
	}
	scheduler.Start()

	server := &stdhttp.Server{Addr: cfg.Addr(), Handler: handler}

	go func() {
		logger.Info("Starting server", zap.String("addr", server.Addr), zap.String("store", cfg.StoreDriver))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Gracefully shutting down...")

	<-scheduler.Stop().Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Forced shutdown", zap.Error(err))
	}
}
