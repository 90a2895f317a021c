package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vncsmyrnk/justask/internal/core/domain"
	"github.com/vncsmyrnk/justask/internal/core/ports"
)

const surveyColumns = `id, title, description, questions, question_count, estimated_time, settings,
	is_published, share_url, total_responses, completion_rate, average_time, created_by, created_at, updated_at`

type surveyRepository struct {
	db *sql.DB
}

func NewSurveyRepository(db *sql.DB) ports.SurveyRepository {
	return &surveyRepository{
		db: db,
	}
}

func scanSurvey(row rowScanner) (*domain.Survey, error) {
	s := &domain.Survey{}
	var questions, settings []byte
	err := row.Scan(
		&s.ID, &s.Title, &s.Description, &questions, &s.QuestionCount, &s.EstimatedTime, &settings,
		&s.IsPublished, &s.ShareURL, &s.Stats.TotalResponses, &s.Stats.CompletionRate, &s.Stats.AverageTime,
		&s.CreatedBy, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSurveyNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(questions, &s.Questions); err != nil {
		return nil, fmt.Errorf("failed to decode questions of survey %s: %w", s.ID, err)
	}
	if err := json.Unmarshal(settings, &s.Settings); err != nil {
		return nil, fmt.Errorf("failed to decode settings of survey %s: %w", s.ID, err)
	}
	s.CreatedAt = s.CreatedAt.UTC()
	s.UpdatedAt = s.UpdatedAt.UTC()
	return s, nil
}

func (r *surveyRepository) Create(ctx context.Context, survey *domain.Survey) error {
	creator, err := parseUserID(survey.CreatedBy)
	if err != nil {
		return err
	}
	questions, err := json.Marshal(survey.Questions)
	if err != nil {
		return fmt.Errorf("failed to encode questions: %w", err)
	}
	settings, err := json.Marshal(survey.Settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	query := `
		INSERT INTO surveys (title, description, questions, question_count, estimated_time, settings,
			is_published, share_url, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`
	err = r.db.QueryRowContext(ctx, query,
		survey.Title, survey.Description, string(questions), len(survey.Questions), survey.EstimatedTime, string(settings),
		survey.IsPublished, survey.ShareURL, creator, survey.CreatedAt, survey.UpdatedAt,
	).Scan(&survey.ID)
	if err != nil {
		return fmt.Errorf("failed to insert survey: %w", err)
	}
	return nil
}

func (r *surveyRepository) SetShareURL(ctx context.Context, id, shareURL string) error {
	return r.exec(ctx, `UPDATE surveys SET share_url = $2 WHERE id = $1`, id, shareURL)
}

func (r *surveyRepository) GetByID(ctx context.Context, id string) (*domain.Survey, error) {
	sid, err := parseSurveyID(id)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + surveyColumns + ` FROM surveys WHERE id = $1`
	return scanSurvey(r.db.QueryRowContext(ctx, query, sid))
}

func (r *surveyRepository) GetPublished(ctx context.Context, id string) (*domain.Survey, error) {
	sid, err := parseSurveyID(id)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + surveyColumns + ` FROM surveys WHERE id = $1 AND is_published`
	return scanSurvey(r.db.QueryRowContext(ctx, query, sid))
}

func (r *surveyRepository) ListByCreator(ctx context.Context, creatorID string) ([]*domain.Survey, error) {
	creator, err := parseUserID(creatorID)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + surveyColumns + ` FROM surveys WHERE created_by = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, creator)
	if err != nil {
		return nil, fmt.Errorf("failed to list surveys: %w", err)
	}
	defer rows.Close()

	var surveys []*domain.Survey
	for rows.Next() {
		s, err := scanSurvey(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan survey: %w", err)
		}
		surveys = append(surveys, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating surveys: %w", err)
	}
	return surveys, nil
}

func (r *surveyRepository) ListIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM surveys`)
	if err != nil {
		return nil, fmt.Errorf("failed to list survey ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan survey id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// IncrementResponses relies on the row lock taken by UPDATE, so concurrent
// submissions never lose a count.
func (r *surveyRepository) IncrementResponses(ctx context.Context, id string) error {
	return r.exec(ctx, `
		UPDATE surveys
		SET total_responses = total_responses + 1, updated_at = NOW()
		WHERE id = $1
	`, id)
}

func (r *surveyRepository) SetStats(ctx context.Context, id string, stats domain.SurveyStats) error {
	return r.exec(ctx, `
		UPDATE surveys
		SET total_responses = $2, completion_rate = $3, average_time = $4
		WHERE id = $1
	`, id, stats.TotalResponses, stats.CompletionRate, stats.AverageTime)
}

func (r *surveyRepository) exec(ctx context.Context, query, id string, args ...any) error {
	sid, err := parseSurveyID(id)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, query, append([]any{sid}, args...)...)
	if err != nil {
		return fmt.Errorf("failed to update survey: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrSurveyNotFound
	}
	return nil
}
