package repository

import (
	"context"
	"fmt"

	"github.com/bytehacks/bumblebee_service/internal/client"
)

// DailyScore is one calendar day's running rhotic counts.
type DailyScore struct {
	Date      string `json:"date"`
	Incorrect int    `json:"incorrect"`
	Total     int    `json:"total"`
}

// DailyScoreRepository persists per-day pronunciation counters.
type DailyScoreRepository interface {
	AddCounts(ctx context.Context, date string, incorrect, total int) error
	ListAll(ctx context.Context) ([]DailyScore, error)
}

type PostgresDailyScoreRepository struct {
	db *client.PostgresClient
}

func NewPostgresDailyScoreRepository(db *client.PostgresClient) *PostgresDailyScoreRepository {
	return &PostgresDailyScoreRepository{db: db}
}

// EnsureSchema creates the daily_scores table if it does not exist.
func (r *PostgresDailyScoreRepository) EnsureSchema(ctx context.Context) error {
	if r.db == nil || r.db.Pool == nil {
		return fmt.Errorf("database not configured")
	}

	query := `
		CREATE TABLE IF NOT EXISTS daily_scores (
			day TEXT PRIMARY KEY,
			incorrect INTEGER NOT NULL DEFAULT 0,
			total INTEGER NOT NULL DEFAULT 0
		)
	`
	if _, err := r.db.Pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to ensure daily_scores schema: %w", err)
	}
	return nil
}

// AddCounts merges a submission's counts into the day's record in a single
// statement, creating the row on the day's first submission. Concurrent
// submissions for the same day serialize on the upsert instead of racing a
// read-modify-write.
func (r *PostgresDailyScoreRepository) AddCounts(ctx context.Context, date string, incorrect, total int) error {
	if r.db == nil || r.db.Pool == nil {
		return fmt.Errorf("database not configured")
	}

	query := `
		INSERT INTO daily_scores (day, incorrect, total)
		VALUES ($1, $2, $3)
		ON CONFLICT (day) DO UPDATE
		SET incorrect = daily_scores.incorrect + EXCLUDED.incorrect,
		    total = daily_scores.total + EXCLUDED.total
	`
	if _, err := r.db.Pool.Exec(ctx, query, date, incorrect, total); err != nil {
		return fmt.Errorf("failed to add daily counts: %w", err)
	}
	return nil
}

// ListAll returns every day's record ordered by date ascending.
func (r *PostgresDailyScoreRepository) ListAll(ctx context.Context) ([]DailyScore, error) {
	if r.db == nil || r.db.Pool == nil {
		return nil, fmt.Errorf("database not configured")
	}

	query := `
		SELECT day, incorrect, total
		FROM daily_scores
		ORDER BY day ASC
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list daily scores: %w", err)
	}
	defer rows.Close()

	scores := []DailyScore{}
	for rows.Next() {
		var s DailyScore
		if err := rows.Scan(&s.Date, &s.Incorrect, &s.Total); err != nil {
			return nil, fmt.Errorf("failed to scan daily score: %w", err)
		}
		scores = append(scores, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read daily scores: %w", err)
	}

	return scores, nil
}
