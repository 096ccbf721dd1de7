package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/moviegoers/moviegoers-api/internal/services"
	"go.uber.org/zap"
)

// ErrorResponse is the JSON error envelope
type ErrorResponse struct {
	Error   string     `json:"error"`
	Message string     `json:"message"`
	ResetAt *time.Time `json:"resetAt,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{Error: code, Message: message})
}

// respondServiceError maps service errors to the HTTP taxonomy. Validation
// and gating failures return structured codes; anything unexpected is logged
// and surfaced as a generic 500.
func respondServiceError(log *zap.Logger, w http.ResponseWriter, err error) {
	var tooMany *services.TooManyAttemptsError
	switch {
	case errors.Is(err, services.ErrEmptyCatalog):
		respondError(w, http.StatusNotFound, "empty_catalog", "No movie found")
	case errors.Is(err, services.ErrInvalidAddress):
		respondError(w, http.StatusBadRequest, "invalid_address", "Invalid wallet address")
	case errors.Is(err, services.ErrInvalidEmail):
		respondError(w, http.StatusBadRequest, "invalid_email", "Invalid email address")
	case errors.Is(err, services.ErrDuplicateEmail):
		respondError(w, http.StatusBadRequest, "duplicate_email", "This email is already registered.")
	case errors.Is(err, services.ErrAlreadyParticipated):
		respondError(w, http.StatusTooManyRequests, "already_participated", "You can only submit your information once per day.")
	case errors.Is(err, services.ErrUserNotFound):
		respondError(w, http.StatusNotFound, "not_found", "User not found")
	case errors.Is(err, services.ErrInvalidToken):
		respondError(w, http.StatusBadRequest, "invalid_token", "Invalid or expired verification link.")
	case errors.As(err, &tooMany):
		respondJSON(w, http.StatusTooManyRequests, ErrorResponse{
			Error:   "too_many_attempts",
			Message: "Too many attempts. Please wait a minute before trying again.",
			ResetAt: &tooMany.ResetAt,
		})
	default:
		log.Error("request failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "Something went wrong. Please try again later.")
	}
}
