package main

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"bookmarks-search/internal/desktop"
	"bookmarks-search/internal/index"
	"bookmarks-search/internal/notify"
	"bookmarks-search/internal/provider"
	"bookmarks-search/internal/store"
)

var queryCmd = &cobra.Command{
	Use:   "query <term>...",
	Short: "Search bookmarks once",
	Long: `Load the bookmark files, print every match and exit.

Each term is a case-insensitive regular expression matched against the
bookmark title and URL. A bookmark is printed once for every term it matches.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runQuery,
}

var (
	queryJSON  bool
	queryLimit int
	queryOpen  bool
)

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "Print results as JSON")
	queryCmd.Flags().IntVar(&queryLimit, "limit", 0, "Maximum number of results to print (0 for all)")
	queryCmd.Flags().BoolVar(&queryOpen, "open", false, "Open the first result in the default browser")
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg := globalConfig
	ctx := cmd.Context()

	st := store.New()
	idx := index.New(ctx, cfg.SourcePaths, st, index.Options{
		Notifier: notify.NewLogNotifier(0),
		Logger:   slog.Default(),
	})
	defer func() {
		_ = idx.Close()
	}()

	p := provider.New(st, desktop.NewCommandLauncher(cfg.URLOpener), desktop.NewBrowserIcons())
	ids := p.InitialResultSet(args)
	if queryLimit > 0 && len(ids) > queryLimit {
		ids = ids[:queryLimit]
	}
	metas := p.ResultMetas(ids)

	out := cmd.OutOrStdout()
	if queryJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(metas); err != nil {
			return fmt.Errorf("failed to encode results: %w", err)
		}
	} else {
		for _, m := range metas {
			fmt.Fprintf(out, "%s\t%s\n", m.Name, m.URL)
		}
	}

	if queryOpen && len(metas) > 0 {
		if err := p.Activate(ctx, metas[0].ID); err != nil {
			return err
		}
	}
	return nil
}
