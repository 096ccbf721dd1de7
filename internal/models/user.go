package models

import (
	"time"

	"github.com/lib/pq"
)

// User is an identity record keyed by wallet address. Created on first
// submission, updated on later submissions and correct guesses, never deleted.
type User struct {
	ID                  string         `json:"id" db:"id"`
	Email               string         `json:"email" db:"email"`
	WalletAddress       string         `json:"wallet_address" db:"wallet_address"`
	UserIP              string         `json:"-" db:"user_ip"`
	IsEmailVerified     bool           `json:"is_email_verified" db:"is_email_verified"`
	VerificationToken   *string        `json:"-" db:"verification_token"`
	VerificationExpires *time.Time     `json:"-" db:"verification_expires"`
	CorrectAnswers      int            `json:"correct_answers" db:"correct_answers"`
	SolvedMovies        pq.StringArray `json:"solved_movies" db:"solved_movies"`
	LastParticipation   *time.Time     `json:"last_participation,omitempty" db:"last_participation"`
	CreatedAt           time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at" db:"updated_at"`
}

// UserInfo is the public subset returned by the participation check.
type UserInfo struct {
	Email          string `json:"email"`
	WalletAddress  string `json:"walletAddress"`
	CorrectAnswers int    `json:"correctAnswers"`
}

// SubmitUserRequest registers or updates an identity for today's prize draw.
type SubmitUserRequest struct {
	Email         string `json:"email"`
	WalletAddress string `json:"walletAddress"`
}

// SubmitUserResponse acknowledges a submission.
type SubmitUserResponse struct {
	Message              string `json:"message"`
	RequiresVerification bool   `json:"requiresVerification,omitempty"`
}

// ParticipationResponse answers the one-submission-per-day check.
type ParticipationResponse struct {
	HasParticipated bool      `json:"hasParticipated"`
	UserInfo        *UserInfo `json:"userInfo,omitempty"`
}

// IncrementScoreRequest credits a correct guess.
type IncrementScoreRequest struct {
	WalletAddress string `json:"walletAddress"`
	MovieTitle    string `json:"movieTitle"`
}

// ScoreResponse is the score state after (or without) an increment.
type ScoreResponse struct {
	Message      string   `json:"message"`
	NewScore     int      `json:"newScore"`
	SolvedMovies []string `json:"solvedMovies"`
}

// SessionToken is issued by the wallet-connect gate.
type SessionToken struct {
	Success   bool      `json:"success"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
