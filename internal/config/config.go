// Package config reads environment configuration. A .env file in the
// working directory is honored when present; everything has a default, so
// the client runs with no configuration at all.
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"booking-console/internal/api"
	"booking-console/internal/upload"
)

type Config struct {
	APIBaseURL string
	UploadURL  string
	StateDir   string
	LogLevel   string
}

func Load() Config {
	_ = godotenv.Load()

	return Config{
		APIBaseURL: env("BOOKING_API_URL", api.DefaultBaseURL),
		UploadURL:  env("BOOKING_UPLOAD_URL", upload.DefaultEndpoint),
		StateDir:   env("BOOKING_STATE_DIR", defaultStateDir()),
		LogLevel:   env("LOG_LEVEL", "info"),
	}
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".booking-console"
	}
	return filepath.Join(home, ".booking-console")
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
