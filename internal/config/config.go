package config

import (
	"crypto/rand"
	"encoding/base64"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration, loaded from the environment.
type Config struct {
	ServerPort string
	ServerHost string
	BaseURL    string

	DBHost     string
	DBPort     int
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	// Reference time zone used for daily rotation and participation days.
	Timezone string

	AdminCode string

	AttemptWindow time.Duration
	AttemptMax    int

	VerificationExpiry time.Duration

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	FromEmail    string

	JWTSecret     string
	JWTExpiration time.Duration

	WalletConnectRate  float64
	WalletConnectBurst int

	CORSOrigins []string

	LogLevel string
	LogFile  string
}

// Load reads config.env (if present) and the process environment.
func Load() (*Config, error) {
	godotenv.Load("config.env")

	cfg := &Config{
		ServerPort: getEnvString("SERVER_PORT", "8080"),
		ServerHost: getEnvString("SERVER_HOST", "0.0.0.0"),
		BaseURL:    getEnvString("BASE_URL", "http://localhost:8080"),

		DBHost:     getEnvString("DB_HOST", "localhost"),
		DBPort:     getEnvInt("DB_PORT", 5432),
		DBName:     getEnvString("DB_NAME", "moviegoers"),
		DBUser:     getEnvString("DB_USER", "postgres"),
		DBPassword: getEnvString("DB_PASSWORD", ""),
		DBSSLMode:  getEnvString("DB_SSL_MODE", "disable"),

		Timezone: getEnvString("GAME_TIMEZONE", "Europe/Paris"),

		AdminCode: getEnvString("ADMIN_CODE", ""),

		AttemptWindow: time.Duration(getEnvInt("ATTEMPT_WINDOW_SECONDS", 60)) * time.Second,
		AttemptMax:    getEnvInt("ATTEMPT_MAX", 5),

		VerificationExpiry: time.Duration(getEnvInt("VERIFICATION_EXPIRY_HOURS", 24)) * time.Hour,

		SMTPHost:     getEnvString("SMTP_HOST", ""),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUser:     getEnvString("SMTP_USER", ""),
		SMTPPassword: getEnvString("SMTP_PASSWORD", ""),
		FromEmail:    getEnvString("FROM_EMAIL", "noreply@moviegoers.cat"),

		JWTSecret:     getEnvString("JWT_SECRET", ""),
		JWTExpiration: time.Duration(getEnvInt("JWT_EXPIRATION_HOURS", 24)) * time.Hour,

		WalletConnectRate:  getEnvFloat("WALLET_CONNECT_RATE", 1),
		WalletConnectBurst: getEnvInt("WALLET_CONNECT_BURST", 5),

		CORSOrigins: getEnvStringSlice("CORS_ORIGINS", []string{"*"}),

		LogLevel: getEnvString("LOG_LEVEL", "info"),
		LogFile:  getEnvString("LOG_FILE", ""),
	}

	if cfg.JWTSecret == "" {
		// Generate a random secret if not provided; sessions then do not
		// survive a restart.
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return nil, err
		}
		cfg.JWTSecret = base64.StdEncoding.EncodeToString(buf)
	}

	return cfg, nil
}

func getEnvString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvStringSlice(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return fallback
}
