package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/moviegoers/moviegoers-api/internal/config"
	"github.com/moviegoers/moviegoers-api/internal/handlers"
	"github.com/moviegoers/moviegoers-api/internal/logger"
	"github.com/moviegoers/moviegoers-api/internal/services"
	"github.com/moviegoers/moviegoers-api/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog := logger.New(cfg.LogLevel, cfg.LogFile)
	defer zlog.Sync()

	zone, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		zlog.Warn("unknown time zone, falling back to UTC", zap.String("timezone", cfg.Timezone))
		zone = time.UTC
	}

	db, err := store.NewDatabase(cfg)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	movieRepo := store.NewMovieRepository(db)
	userRepo := store.NewUserRepository(db)
	attemptRepo := store.NewAttemptRepository(db)

	emailService := services.NewEmailService(cfg)
	walletService := services.NewWalletService()
	gameService := services.NewGameService(movieRepo, zone)
	attemptService := services.NewAttemptService(attemptRepo, cfg.AttemptWindow, cfg.AttemptMax)
	authService := services.NewAuthService(cfg.JWTSecret, cfg.JWTExpiration)
	userService := services.NewUserService(userRepo, emailService, walletService, gameService,
		cfg.AdminCode, cfg.BaseURL, cfg.VerificationExpiry)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := handlers.NewHub(gameService, zlog)
	go hub.Run(ctx)
	go hub.RunRotationNotifier(ctx)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(handlers.RequestLogger(zlog))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))
	r.Use(handlers.MetricsMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "admin-code", "test-mode"},
		MaxAge:         300,
	}))
	r.Use(handlers.SessionMiddleware(authService))

	r.Route("/api", func(r chi.Router) {
		r.Get("/daily-movie", handlers.GetDailyMovie(zlog, gameService))
		r.Get("/attempt", handlers.GetAttempts(zlog, attemptService))
		r.Post("/attempt", handlers.RecordAttempt(zlog, attemptService))
		r.Post("/reset-attempts", handlers.ResetAttempts(zlog, attemptService))
		r.Get("/check-participation", handlers.CheckParticipation(zlog, userService))
		r.Get("/check-movie-solved", handlers.CheckMovieSolved(zlog, userService))
		r.Post("/submit-user", handlers.SubmitUser(zlog, userService))
		r.Post("/increment-score", handlers.IncrementScore(zlog, userService))
		r.Get("/user-score", handlers.GetUserScore(zlog, userService))
		r.Post("/wallet-connect", handlers.WalletConnect(zlog, authService, walletService,
			cfg.WalletConnectRate, cfg.WalletConnectBurst))
	})

	r.Get("/verify-email/{token}", handlers.VerifyEmail(zlog, userService))
	r.Get("/ws", handlers.ServeWS(hub))
	r.Get("/health", handlers.Health(zlog, db))
	r.Handle("/metrics", handlers.MetricsHandler())
	r.Handle("/*", http.FileServer(http.Dir("./web/static")))

	srv := &http.Server{
		Addr:         cfg.ServerHost + ":" + cfg.ServerPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zlog.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("forced shutdown", zap.Error(err))
	}
}
