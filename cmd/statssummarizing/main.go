package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/vncsmyrnk/justask/internal/adapters/repository"
	"github.com/vncsmyrnk/justask/internal/config"
	"github.com/vncsmyrnk/justask/internal/core/services"
	"github.com/vncsmyrnk/justask/internal/logging"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := &config.Config{}

	flag.StringVar(&cfg.StoreDriver, "driver", envOr("STORE_DRIVER", config.DriverMongo), "Store driver (mongo or postgres)")
	flag.StringVar(&cfg.DatabaseURL, "database-url", os.Getenv("DATABASE_URL"), "Postgres connection string")
	flag.StringVar(&cfg.MongoURI, "mongodb-uri", os.Getenv("MONGODB_URI"), "MongoDB connection string")
	flag.StringVar(&cfg.MongoDatabase, "mongodb-database", envOr("MONGODB_DATABASE", "just_ask_v1"), "MongoDB database name")
	flag.StringVar(&cfg.LogLevel, "log-level", envOr("LOG_LEVEL", "info"), "Log level")
	flag.Parse()

	logger, err := logging.New(logging.Options{Level: cfg.LogLevel})
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	// Use a timeout for the job execution to prevent it from hanging indefinitely
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	store, err := repository.Open(ctx, cfg, false)
	if err != nil {
		logger.Fatal("Failed to open store", zap.Error(err))
	}
	defer store.Close(context.Background())

	statsService := services.NewStatsService(store.Surveys, store.Responses, logger)

	logger.Info("Starting survey stats summarization job...")

	if err := statsService.SummarizeAll(ctx); err != nil {
		logger.Fatal("Error summarizing survey stats", zap.Error(err))
	}

	logger.Info("Survey stats summarization completed successfully.")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
