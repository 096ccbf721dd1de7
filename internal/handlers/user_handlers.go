package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/moviegoers/moviegoers-api/internal/models"
	"github.com/moviegoers/moviegoers-api/internal/services"
	"go.uber.org/zap"
)

// CheckParticipation answers the one-submission-per-day check
func CheckParticipation(log *zap.Logger, userService *services.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		walletAddress := query.Get("walletAddress")
		if walletAddress == "" {
			if address, ok := WalletFromContext(r.Context()); ok {
				walletAddress = address
			}
		}

		participation, err := userService.CheckParticipation(
			r.Context(),
			walletAddress,
			query.Get("adminCode"),
			query.Get("testMode") == "true",
			time.Now(),
		)
		if err != nil {
			respondServiceError(log, w, err)
			return
		}

		respondJSON(w, http.StatusOK, participation)
	}
}

// SubmitUser registers or updates an identity and triggers verification
func SubmitUser(log *zap.Logger, userService *services.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.SubmitUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
			return
		}

		resp, err := userService.Submit(
			r.Context(),
			req,
			clientIP(r),
			r.Header.Get("admin-code"),
			r.Header.Get("test-mode") == "true",
			time.Now(),
		)
		if err != nil {
			respondServiceError(log, w, err)
			return
		}

		respondJSON(w, http.StatusOK, resp)
	}
}

// IncrementScore credits a correct guess once per movie
func IncrementScore(log *zap.Logger, userService *services.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.IncrementScoreRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
			return
		}

		if req.WalletAddress == "" || req.MovieTitle == "" {
			respondError(w, http.StatusBadRequest, "invalid_request", "Wallet address and movie title are required")
			return
		}

		score, err := userService.IncrementScore(r.Context(), req.WalletAddress, req.MovieTitle)
		if err != nil {
			respondServiceError(log, w, err)
			return
		}

		respondJSON(w, http.StatusOK, score)
	}
}

// GetUserScore returns the wallet's score state
func GetUserScore(log *zap.Logger, userService *services.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		walletAddress := r.URL.Query().Get("walletAddress")
		if walletAddress == "" {
			respondError(w, http.StatusBadRequest, "invalid_address", "Wallet address is required")
			return
		}

		user, err := userService.Score(r.Context(), walletAddress)
		if err != nil {
			respondServiceError(log, w, err)
			return
		}

		respondJSON(w, http.StatusOK, map[string]interface{}{
			"correctAnswers": user.CorrectAnswers,
			"solvedMovies":   []string(user.SolvedMovies),
		})
	}
}

// VerifyEmail consumes a verification link. The response is plain text
// because the link is opened directly in a browser.
func VerifyEmail(log *zap.Logger, userService *services.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := chi.URLParam(r, "token")

		err := userService.VerifyEmail(r.Context(), token, time.Now())
		if errors.Is(err, services.ErrInvalidToken) {
			http.Error(w, "Invalid or expired verification link.", http.StatusBadRequest)
			return
		}
		if err != nil {
			log.Error("email verification failed", zap.Error(err))
			http.Error(w, "Error verifying email.", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("Email verified successfully! You can now close this window."))
	}
}
