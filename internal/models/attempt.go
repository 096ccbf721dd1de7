package models

import (
	"time"
)

// Attempt is the per-identity guess counter for the active rate window.
// One row per identity; the row is reused once its window elapses.
type Attempt struct {
	Identity     string    `json:"identity" db:"identity"`
	WindowStart  time.Time `json:"window_start" db:"window_start"`
	AttemptCount int       `json:"attempt_count" db:"attempt_count"`
}

// AttemptStatus is returned after recording a guess attempt.
type AttemptStatus struct {
	Attempts          int `json:"attempts"`
	RemainingAttempts int `json:"remainingAttempts"`
}
