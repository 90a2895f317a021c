package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/vncsmyrnk/justask/internal/core/domain"
	"github.com/vncsmyrnk/justask/internal/core/ports"
)

type responseRepository struct {
	db *sql.DB
}

func NewResponseRepository(db *sql.DB) ports.ResponseRepository {
	return &responseRepository{
		db: db,
	}
}

func (r *responseRepository) Insert(ctx context.Context, resp *domain.SurveyResponse) error {
	sid, err := parseSurveyID(resp.SurveyID)
	if err != nil {
		return err
	}
	responses, err := json.Marshal(resp.Responses)
	if err != nil {
		return fmt.Errorf("failed to encode responses: %w", err)
	}

	query := `
		INSERT INTO survey_responses (survey_id, responses, completed_at, time_spent, submitted_at, ip_address)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err = r.db.QueryRowContext(ctx, query,
		sid, string(responses), resp.CompletedAt, resp.TimeSpent, resp.SubmittedAt, resp.IPAddress,
	).Scan(&resp.ID)
	if err != nil {
		return fmt.Errorf("failed to insert response: %w", err)
	}
	return nil
}

func (r *responseRepository) ListBySurvey(ctx context.Context, surveyID string) ([]*domain.SurveyResponse, error) {
	sid, err := parseSurveyID(surveyID)
	if err != nil {
		return nil, err
	}
	query := `
		SELECT id, survey_id, responses, completed_at, time_spent, submitted_at, ip_address
		FROM survey_responses
		WHERE survey_id = $1
		ORDER BY submitted_at
	`
	rows, err := r.db.QueryContext(ctx, query, sid)
	if err != nil {
		return nil, fmt.Errorf("failed to list responses: %w", err)
	}
	defer rows.Close()

	var out []*domain.SurveyResponse
	for rows.Next() {
		resp := &domain.SurveyResponse{}
		var payload []byte
		var completedAt sql.NullTime
		var timeSpent sql.NullFloat64
		if err := rows.Scan(&resp.ID, &resp.SurveyID, &payload, &completedAt, &timeSpent, &resp.SubmittedAt, &resp.IPAddress); err != nil {
			return nil, fmt.Errorf("failed to scan response: %w", err)
		}
		if err := json.Unmarshal(payload, &resp.Responses); err != nil {
			return nil, fmt.Errorf("failed to decode response %s: %w", resp.ID, err)
		}
		if completedAt.Valid {
			t := completedAt.Time.UTC()
			resp.CompletedAt = &t
		}
		if timeSpent.Valid {
			resp.TimeSpent = &timeSpent.Float64
		}
		resp.SubmittedAt = resp.SubmittedAt.UTC()
		out = append(out, resp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating responses: %w", err)
	}
	return out, nil
}

func (r *responseRepository) StatsFor(ctx context.Context, surveyID string) (domain.SurveyStats, error) {
	sid, err := parseSurveyID(surveyID)
	if err != nil {
		return domain.SurveyStats{}, err
	}
	query := `
		SELECT COUNT(*), COUNT(completed_at), AVG(time_spent)
		FROM survey_responses
		WHERE survey_id = $1
	`
	var total, completed int64
	var avg sql.NullFloat64
	if err := r.db.QueryRowContext(ctx, query, sid).Scan(&total, &completed, &avg); err != nil {
		return domain.SurveyStats{}, fmt.Errorf("failed to aggregate responses for survey %s: %w", surveyID, err)
	}

	stats := domain.SurveyStats{TotalResponses: total}
	if total > 0 {
		stats.CompletionRate = float64(completed) / float64(total) * 100
	}
	if avg.Valid {
		stats.AverageTime = avg.Float64
	}
	return stats, nil
}
