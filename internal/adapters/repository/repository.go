// Package repository opens the configured store and hands out its repositories.
package repository

import (
	"context"
	"fmt"

	"github.com/vncsmyrnk/justask/internal/adapters/repository/mongodb"
	"github.com/vncsmyrnk/justask/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/justask/internal/config"
	"github.com/vncsmyrnk/justask/internal/core/ports"
)

type Store struct {
	Users     ports.UserRepository
	Surveys   ports.SurveyRepository
	Responses ports.ResponseRepository
	close     func(context.Context) error
}

func (s *Store) Close(ctx context.Context) error {
	return s.close(ctx)
}

// Open connects to the store selected by cfg.StoreDriver. Mongo indexes and
// postgres migrations are applied when prepare is set.
func Open(ctx context.Context, cfg *config.Config, prepare bool) (*Store, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, db, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		if prepare {
			if err := mongodb.EnsureIndexes(ctx, db); err != nil {
				_ = client.Disconnect(ctx)
				return nil, err
			}
		}
		return &Store{
			Users:     mongodb.NewUserRepository(db),
			Surveys:   mongodb.NewSurveyRepository(db),
			Responses: mongodb.NewResponseRepository(db),
			close:     client.Disconnect,
		}, nil

	case config.DriverPostgres:
		db, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if prepare {
			if _, err := postgres.Migrate(ctx, db); err != nil {
				db.Close()
				return nil, err
			}
		}
		return &Store{
			Users:     postgres.NewUserRepository(db),
			Surveys:   postgres.NewSurveyRepository(db),
			Responses: postgres.NewResponseRepository(db),
			close:     func(context.Context) error { return db.Close() },
		}, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
