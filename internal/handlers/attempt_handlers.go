package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/moviegoers/moviegoers-api/internal/models"
	"github.com/moviegoers/moviegoers-api/internal/services"
	"go.uber.org/zap"
)

type attemptRequest struct {
	WalletAddress string `json:"walletAddress"`
}

// RecordAttempt counts one guess attempt for the caller's identity
func RecordAttempt(log *zap.Logger, attemptService *services.AttemptService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req attemptRequest
		if r.Body != nil {
			// Body is optional; identity falls back to the caller's IP.
			json.NewDecoder(r.Body).Decode(&req)
		}

		status, err := attemptService.Record(r.Context(), identity(r, req.WalletAddress), time.Now())
		if err != nil {
			respondServiceError(log, w, err)
			return
		}

		respondJSON(w, http.StatusOK, status)
	}
}

// GetAttempts returns the current attempt count for the caller's identity
func GetAttempts(log *zap.Logger, attemptService *services.AttemptService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		walletAddress := r.URL.Query().Get("walletAddress")

		attempts, err := attemptService.Get(r.Context(), identity(r, walletAddress), time.Now())
		if err != nil {
			respondServiceError(log, w, err)
			return
		}

		respondJSON(w, http.StatusOK, map[string]int{"attempts": attempts})
	}
}

// ResetAttempts clears the caller's attempt counter
func ResetAttempts(log *zap.Logger, attemptService *services.AttemptService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req attemptRequest
		if r.Body != nil {
			json.NewDecoder(r.Body).Decode(&req)
		}

		if err := attemptService.Reset(r.Context(), identity(r, req.WalletAddress)); err != nil {
			respondServiceError(log, w, err)
			return
		}

		respondJSON(w, http.StatusOK, map[string]string{"message": "Attempts reset successfully"})
	}
}

// WalletConnect gates wallet connections per caller IP and issues a session
// token when a valid address is presented
func WalletConnect(log *zap.Logger, authService *services.AuthService, walletService *services.WalletService, r float64, burst int) http.HandlerFunc {
	limiter := newIPRateLimiter(r, burst)

	return func(w http.ResponseWriter, req *http.Request) {
		if !limiter.Allow(clientIP(req)) {
			respondError(w, http.StatusTooManyRequests, "too_many_attempts", "Too many connection attempts. Please wait before trying again.")
			return
		}

		var body attemptRequest
		if req.Body != nil {
			json.NewDecoder(req.Body).Decode(&body)
		}

		if body.WalletAddress == "" {
			respondJSON(w, http.StatusOK, map[string]bool{"success": true})
			return
		}

		if !walletService.IsValidAddress(body.WalletAddress) {
			respondError(w, http.StatusBadRequest, "invalid_address", "Invalid wallet address")
			return
		}

		token, expiresAt, err := authService.GenerateToken(body.WalletAddress)
		if err != nil {
			respondServiceError(log, w, err)
			return
		}

		respondJSON(w, http.StatusOK, models.SessionToken{
			Success:   true,
			Token:     token,
			ExpiresAt: expiresAt,
		})
	}
}
