// Package config loads application settings from the environment,
// with an optional .env file for local development.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/example/halovoc/internal/scheduler"
)

// Config holds every runtime setting.
type Config struct {
	// DBDriver selects the storage backend: sqlite3 or postgres.
	DBDriver string
	// DBPath is the SQLite file location.
	DBPath string
	// DBDSN is the PostgreSQL connection string.
	DBDSN string

	TelegramToken  string
	TelegramChatID int64

	ReminderStartHour int
	ReminderEndHour   int

	LogLevel slog.Level
}

// Load reads the environment, applying defaults for anything unset.
// A missing .env file is not an error.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBDriver:          envOr("HALOVOC_DB_DRIVER", "sqlite3"),
		DBPath:            envOr("HALOVOC_DB_PATH", "data/halovoc.db"),
		DBDSN:             os.Getenv("HALOVOC_DB_DSN"),
		TelegramToken:     os.Getenv("TELEGRAM_BOT_TOKEN"),
		ReminderStartHour: envHour("REMINDER_START_HOUR", scheduler.DefaultStartHour),
		ReminderEndHour:   envHour("REMINDER_END_HOUR", scheduler.DefaultEndHour),
		LogLevel:          parseLevel(os.Getenv("LOG_LEVEL")),
	}
	if raw := os.Getenv("TELEGRAM_CHAT_ID"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			cfg.TelegramChatID = id
		}
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envHour(key string, fallback int) int {
	if raw := os.Getenv(key); raw != "" {
		if h, err := strconv.Atoi(raw); err == nil && h >= 0 && h <= 23 {
			return h
		}
	}
	return fallback
}

func parseLevel(raw string) slog.Level {
	switch strings.ToLower(raw) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
