package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/moviegoers/moviegoers-api/internal/models"
)

// AttemptRepository handles database operations related to rate-limit counters
type AttemptRepository struct {
	db *Database
}

// NewAttemptRepository creates a new AttemptRepository
func NewAttemptRepository(db *Database) *AttemptRepository {
	return &AttemptRepository{
		db: db,
	}
}

// Increment records one attempt for the identity inside the window ending at
// now. A single conditional upsert starts a fresh window when the previous
// one elapsed, increments while under max, and matches no row at the cap, so
// the cap holds even under concurrent requests. Returns nil at the cap.
func (r *AttemptRepository) Increment(ctx context.Context, identity string, now time.Time, window time.Duration, max int) (*models.Attempt, error) {
	cutoff := now.Add(-window)
	attempt := &models.Attempt{}

	query := `INSERT INTO attempts (identity, window_start, attempt_count)
			  VALUES ($1, $2, 1)
			  ON CONFLICT (identity) DO UPDATE SET
				attempt_count = CASE WHEN attempts.window_start <= $3 THEN 1
									 ELSE attempts.attempt_count + 1 END,
				window_start = CASE WHEN attempts.window_start <= $3 THEN $2
								    ELSE attempts.window_start END
			  WHERE attempts.window_start <= $3 OR attempts.attempt_count < $4
			  RETURNING identity, window_start, attempt_count`

	err := r.db.GetDB().GetContext(ctx, attempt, query, identity, now, cutoff, max)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return attempt, nil
}

// Active returns the identity's counter when its window is still open
func (r *AttemptRepository) Active(ctx context.Context, identity string, now time.Time, window time.Duration) (*models.Attempt, error) {
	attempt := &models.Attempt{}
	query := `SELECT identity, window_start, attempt_count
			  FROM attempts
			  WHERE identity = $1 AND window_start > $2`

	err := r.db.GetDB().GetContext(ctx, attempt, query, identity, now.Add(-window))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return attempt, nil
}

// Clear removes the identity's counter
func (r *AttemptRepository) Clear(ctx context.Context, identity string) error {
	query := `DELETE FROM attempts WHERE identity = $1`
	_, err := r.db.GetDB().ExecContext(ctx, query, identity)
	return err
}
