package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/vncsmyrnk/justask/internal/core/domain"
	"github.com/vncsmyrnk/justask/internal/core/ports"
)

const userColumns = `id, google_id, email, name, picture, social_handle, gender, age, location,
	interests, onboarding_complete, profile_created, last_login, created_at, updated_at`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) ports.UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row rowScanner) (*domain.User, error) {
	user := &domain.User{}
	var age sql.NullInt64
	var lastLogin sql.NullTime
	err := row.Scan(
		&user.ID, &user.GoogleID, &user.Email, &user.Name, &user.Picture,
		&user.SocialHandle, &user.Gender, &age, &user.Location,
		pq.Array(&user.Interests), &user.OnboardingComplete, &user.ProfileCreated,
		&lastLogin, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	if age.Valid {
		a := int(age.Int64)
		user.Age = &a
	}
	if lastLogin.Valid {
		t := lastLogin.Time.UTC()
		user.LastLogin = &t
	}
	user.CreatedAt = user.CreatedAt.UTC()
	user.UpdatedAt = user.UpdatedAt.UTC()
	if len(user.Interests) == 0 {
		user.Interests = nil
	}
	return user, nil
}

func (r *UserRepository) UpsertGoogleUser(ctx context.Context, identity domain.GoogleIdentity, at time.Time) (*domain.User, error) {
	query := `
		INSERT INTO users (google_id, email, name, picture, last_login, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5, $5)
		ON CONFLICT (google_id) DO UPDATE
		SET email = EXCLUDED.email,
		    picture = EXCLUDED.picture,
		    last_login = EXCLUDED.last_login,
		    updated_at = EXCLUDED.updated_at
		RETURNING ` + userColumns
	user, err := scanUser(r.db.QueryRowContext(ctx, query, identity.Subject, identity.Email, identity.Name, identity.Picture, at))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}
	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	uid, err := parseUserID(id)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, uid))
}

func (r *UserRepository) UpdateOnboarding(ctx context.Context, id string, profile domain.OnboardingProfile, at time.Time) (*domain.User, error) {
	uid, err := parseUserID(id)
	if err != nil {
		return nil, err
	}
	var age sql.NullInt64
	if profile.Age != nil {
		age = sql.NullInt64{Int64: int64(*profile.Age), Valid: true}
	}
	query := `
		UPDATE users
		SET name = $2, social_handle = $3, gender = $4, age = COALESCE($5, age), location = $6,
		    onboarding_complete = TRUE, updated_at = $7
		WHERE id = $1
		RETURNING ` + userColumns
	return scanUser(r.db.QueryRowContext(ctx, query,
		uid, profile.Name, profile.SocialHandle, profile.Gender, age, profile.Location, at))
}

func (r *UserRepository) UpdateInterests(ctx context.Context, id string, interests []string, at time.Time) (*domain.User, error) {
	uid, err := parseUserID(id)
	if err != nil {
		return nil, err
	}
	query := `
		UPDATE users
		SET interests = $2, profile_created = TRUE, updated_at = $3
		WHERE id = $1
		RETURNING ` + userColumns
	return scanUser(r.db.QueryRowContext(ctx, query, uid, pq.Array(interests), at))
}
