// Package postgres stores users, surveys and responses in PostgreSQL, keeping
// question and answer payloads as JSONB.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/vncsmyrnk/justask/internal/core/domain"
)

// Open connects with the lib/pq driver and checks the server is reachable.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}
	return db, nil
}

func parseSurveyID(id string) (uuid.UUID, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", domain.ErrInvalidSurveyID, id)
	}
	return u, nil
}

func parseUserID(id string) (uuid.UUID, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", domain.ErrInvalidUserID, id)
	}
	return u, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}
