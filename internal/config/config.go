package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"bookmarks-search/internal/bookmarks"
)

// JournalDisabled is the DB_PATH value that turns off the refresh journal.
const JournalDisabled = "off"

// Config holds all configuration for the application.
type Config struct {
	BookmarkFile  string   // Explicit bookmark file, empty when defaults are used
	SourcePaths   []string // Resolved bookmark files, fixed for the process lifetime
	APIPort       string
	DBPath        string
	LogLevel      slog.Level
	LogFormat     string // "text" or "json"
	WatchDebounce time.Duration
	DesktopNotify bool
	URLOpener     string
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates the rest.
// If a .env file exists in the current directory or a parent, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ { // Limit search depth
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break // Reached filesystem root
			}
			dir = parent
		}
	}

	cfg := &Config{
		BookmarkFile: strings.TrimSpace(os.Getenv(bookmarks.EnvBookmarkFile)),
		APIPort:      getEnv("API_PORT", "9000"),
		DBPath:       getEnv("DB_PATH", "./data/bookmarks-search.db"),
		LogFormat:    strings.ToLower(getEnv("LOG_FORMAT", "text")),
		URLOpener:    getEnv("URL_OPENER", "xdg-open"),
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error: %w", err)
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}

	debounce, err := time.ParseDuration(getEnv("WATCH_DEBOUNCE", "300ms"))
	if err != nil {
		return nil, fmt.Errorf("WATCH_DEBOUNCE must be a valid duration: %w", err)
	}
	if debounce < 0 {
		return nil, fmt.Errorf("WATCH_DEBOUNCE must not be negative")
	}
	cfg.WatchDebounce = debounce

	notifyDesktop, err := strconv.ParseBool(getEnv("DESKTOP_NOTIFY", "false"))
	if err != nil {
		return nil, fmt.Errorf("DESKTOP_NOTIFY must be a boolean: %w", err)
	}
	cfg.DesktopNotify = notifyDesktop

	var home string
	if cfg.BookmarkFile == "" {
		home, err = os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to determine home directory: %w", err)
		}
	}
	cfg.SourcePaths = bookmarks.ResolveSources(cfg.BookmarkFile, home)

	if cfg.JournalEnabled() {
		dataDir := filepath.Dir(cfg.DBPath)
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	return cfg, nil
}

// JournalEnabled reports whether refreshes are recorded to SQLite.
func (c *Config) JournalEnabled() bool {
	return c.DBPath != "" && !strings.EqualFold(c.DBPath, JournalDisabled)
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
