package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"bookmarks-search/internal/config"
	"bookmarks-search/internal/storage"
)

var globalConfig *config.Config

var rootCmd = &cobra.Command{
	Use:   "bookmarks-search",
	Short: "Search Chrome and Chromium bookmarks",
	Long: `Indexes the Chrome and Chromium bookmark files of the current user and
answers search queries against them. The index follows changes to the
bookmark files while the server is running.

Set CHROME_BOOKMARK_FILE to index a single bookmark file instead.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" {
			return nil
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		globalConfig = cfg

		configureLogging(cfg)
		return nil
	},
}

// configureLogging installs the default slog logger. Logs go to stderr so
// command output on stdout stays clean.
func configureLogging(cfg *config.Config) {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)
}

// openJournal opens and migrates the refresh journal. It returns a nil
// journal when the journal is disabled.
func openJournal(cfg *config.Config) (*sql.DB, storage.Journal, error) {
	if !cfg.JournalEnabled() {
		return nil, nil, nil
	}

	db, err := storage.New(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := storage.Migrate(db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)
	return db, storage.NewJournalRepo(db), nil
}
