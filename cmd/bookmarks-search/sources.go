package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"bookmarks-search/internal/storage"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the bookmark files that are indexed",
	Long:  "Print the resolved bookmark files together with the outcome of their last load, when the refresh journal is enabled.",
	Args:  cobra.NoArgs,
	RunE:  runSources,
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}

func runSources(cmd *cobra.Command, args []string) error {
	cfg := globalConfig
	out := cmd.OutOrStdout()

	db, journal, err := openJournal(cfg)
	if err != nil {
		return err
	}
	if journal == nil {
		for _, path := range cfg.SourcePaths {
			fmt.Fprintln(out, path)
		}
		return nil
	}
	defer func() {
		_ = db.Close()
	}()

	records, err := journal.ListSources(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list sources: %w", err)
	}
	byPath := make(map[string]storage.SourceRecord, len(records))
	for _, rec := range records {
		byPath[rec.Path] = rec
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PATH\tSTATUS\tENTRIES\tREFRESHED")
	for _, path := range cfg.SourcePaths {
		rec, ok := byPath[path]
		if !ok {
			fmt.Fprintf(tw, "%s\t-\t-\t-\n", path)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", path, rec.Status, rec.Entries, rec.RefreshedAt.Local().Format(time.DateTime))
	}
	return tw.Flush()
}
