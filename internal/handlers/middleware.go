package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/moviegoers/moviegoers-api/internal/services"
	"go.uber.org/zap"
)

// SessionMiddleware attaches the wallet address from a Bearer session token
// to the request context. The token is optional; requests without one pass
// through untouched.
func SessionMiddleware(authService *services.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				respondError(w, http.StatusUnauthorized, "unauthorized", "Invalid Authorization header format")
				return
			}

			address, err := authService.ValidateToken(parts[1])
			if err != nil {
				respondError(w, http.StatusUnauthorized, "unauthorized", "Invalid session token")
				return
			}

			next.ServeHTTP(w, r.WithContext(NewContextWithWallet(r.Context(), address)))
		})
	}
}

// RequestLogger logs one line per request with status and latency
func RequestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			log.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.String("ip", clientIP(r)),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
