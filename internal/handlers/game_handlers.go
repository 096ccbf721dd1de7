package handlers

import (
	"net/http"
	"time"

	"github.com/moviegoers/moviegoers-api/internal/services"
	"go.uber.org/zap"
)

// GetDailyMovie handles fetching today's movie and rotation timing
func GetDailyMovie(log *zap.Logger, gameService *services.GameService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		daily, err := gameService.DailyMovie(r.Context(), time.Now())
		if err != nil {
			respondServiceError(log, w, err)
			return
		}

		respondJSON(w, http.StatusOK, daily)
	}
}

// CheckMovieSolved reports whether a wallet already solved today's movie
func CheckMovieSolved(log *zap.Logger, userService *services.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		walletAddress := r.URL.Query().Get("walletAddress")
		if walletAddress == "" {
			respondError(w, http.StatusBadRequest, "invalid_address", "Wallet address is required")
			return
		}

		solved, err := userService.CheckMovieSolved(r.Context(), walletAddress, time.Now())
		if err != nil {
			respondServiceError(log, w, err)
			return
		}

		respondJSON(w, http.StatusOK, solved)
	}
}

// Health reports liveness, including database reachability
func Health(log *zap.Logger, pinger interface{ Ping() error }) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := pinger.Ping(); err != nil {
			log.Error("health check failed", zap.Error(err))
			respondError(w, http.StatusServiceUnavailable, "unhealthy", "database unreachable")
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
