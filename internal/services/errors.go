package services

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrEmptyCatalog means no movies have been seeded
	ErrEmptyCatalog = errors.New("movie catalog is empty")

	// ErrInvalidAddress means the wallet address is not a valid base58 key
	ErrInvalidAddress = errors.New("invalid wallet address")

	// ErrInvalidEmail means the email address is malformed
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrDuplicateEmail means the email belongs to a different wallet
	ErrDuplicateEmail = errors.New("email already registered to another wallet")

	// ErrAlreadyParticipated means the identity already submitted today
	ErrAlreadyParticipated = errors.New("already participated today")

	// ErrUserNotFound means no record exists for the wallet address
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidToken means the verification token is unknown or expired
	ErrInvalidToken = errors.New("invalid or expired verification token")
)

// TooManyAttemptsError is returned when the attempt cap is reached within the
// active window. ResetAt is when the window elapses.
type TooManyAttemptsError struct {
	ResetAt time.Time
}

func (e *TooManyAttemptsError) Error() string {
	return fmt.Sprintf("too many attempts, retry after %s", e.ResetAt.Format(time.RFC3339))
}
