package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"bookmarks-search/internal/desktop"
	"bookmarks-search/internal/http"
	"bookmarks-search/internal/notify"
	"bookmarks-search/internal/provider"
	"bookmarks-search/internal/shell"
	"bookmarks-search/internal/watch"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve bookmark search over HTTP",
	Long:  "Enable the bookmarks provider, follow bookmark file changes and serve the search API until interrupted.",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

var shutdownTimeout time.Duration

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 5*time.Second, "Time allowed for in-flight requests on shutdown")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := globalConfig

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, journal, err := openJournal(cfg)
	if err != nil {
		return err
	}
	if db != nil {
		defer func() {
			_ = db.Close()
		}()
	}

	recent := notify.NewLogNotifier(0)
	var notifier notify.Notifier = recent
	if cfg.DesktopNotify {
		notifier = notify.Multi{recent, notify.NewDesktopNotifier("Bookmarks Search")}
	}

	integration := shell.New(provider.NewRegistry(), shell.Deps{
		Sources:  cfg.SourcePaths,
		Watcher:  watch.NewFSWatcher(cfg.WatchDebounce),
		Notifier: notifier,
		Journal:  journal,
		Launcher: desktop.NewCommandLauncher(cfg.URLOpener),
		Icons:    desktop.NewBrowserIcons(),
		Logger:   slog.Default(),
	})
	if err := integration.Enable(ctx); err != nil {
		return fmt.Errorf("failed to enable bookmarks search: %w", err)
	}
	defer func() {
		if err := integration.Disable(); err != nil {
			slog.Warn("Failed to release bookmark watches", "error", err)
		}
	}()

	deps := &http.Deps{
		Integration:  integration,
		Journal:      journal,
		RecentErrors: recent,
	}

	server := &nethttp.Server{
		Addr:              ":" + cfg.APIPort,
		Handler:           http.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting API server", "addr", server.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, nethttp.ErrServerClosed) {
			return fmt.Errorf("API server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down API server: %w", err)
	}
	return nil
}
