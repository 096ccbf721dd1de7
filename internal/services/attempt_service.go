package services

import (
	"context"
	"time"

	"github.com/moviegoers/moviegoers-api/internal/models"
)

// AttemptStore is the storage contract for rate-limit counters. Increment
// must enforce the cap atomically and return nil once it is reached.
type AttemptStore interface {
	Increment(ctx context.Context, identity string, now time.Time, window time.Duration, max int) (*models.Attempt, error)
	Active(ctx context.Context, identity string, now time.Time, window time.Duration) (*models.Attempt, error)
	Clear(ctx context.Context, identity string) error
}

// AttemptService throttles guess attempts per identity
type AttemptService struct {
	store  AttemptStore
	window time.Duration
	max    int
}

// NewAttemptService creates a new AttemptService
func NewAttemptService(store AttemptStore, window time.Duration, max int) *AttemptService {
	return &AttemptService{
		store:  store,
		window: window,
		max:    max,
	}
}

// Record counts one attempt for the identity. Past the cap it fails with
// TooManyAttemptsError and does not increment further.
func (s *AttemptService) Record(ctx context.Context, identity string, now time.Time) (*models.AttemptStatus, error) {
	attempt, err := s.store.Increment(ctx, identity, now, s.window, s.max)
	if err != nil {
		return nil, err
	}

	if attempt == nil {
		resetAt := now.Add(s.window)
		if active, err := s.store.Active(ctx, identity, now, s.window); err == nil && active != nil {
			resetAt = active.WindowStart.Add(s.window)
		}
		return nil, &TooManyAttemptsError{ResetAt: resetAt}
	}

	remaining := s.max - attempt.AttemptCount
	if remaining < 0 {
		remaining = 0
	}

	return &models.AttemptStatus{
		Attempts:          attempt.AttemptCount,
		RemainingAttempts: remaining,
	}, nil
}

// Get returns the attempt count inside the identity's active window
func (s *AttemptService) Get(ctx context.Context, identity string, now time.Time) (int, error) {
	attempt, err := s.store.Active(ctx, identity, now, s.window)
	if err != nil {
		return 0, err
	}
	if attempt == nil {
		return 0, nil
	}
	return attempt.AttemptCount, nil
}

// Reset clears the identity's counter
func (s *AttemptService) Reset(ctx context.Context, identity string) error {
	return s.store.Clear(ctx, identity)
}
