// Command batchimport walks a source's listing pages and imports every
// recipe it has not seen before, recording an audit row per URL.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ysads/cookbook/internal/cookbookdb"
	"github.com/ysads/cookbook/internal/importer"
	"github.com/ysads/cookbook/internal/source"
)

func main() {
	if err := newCommand().Execute(); err != nil {
		slog.Error("batchimport: run failed", "error", err)
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	var (
		dryRun     bool
		dbPath     string
		maxRetries uint64
		timeout    time.Duration
		userAgent  string
	)

	cmd := &cobra.Command{
		Use:   "batchimport <source>",
		Short: "Import all recipes from one supported source",
		Long: "Walks the source's listing pages until pagination runs out, importing\n" +
			"each recipe not already in the catalogue. Sources: " + strings.Join(sourceNames(), ", ") + ".",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			src := cookbookdb.Source(args[0])
			if !cookbookdb.ValidSource(args[0]) {
				return fmt.Errorf("batchimport: unknown source %q (want one of: %s)",
					args[0], strings.Join(sourceNames(), ", "))
			}

			store, err := cookbookdb.Open(dbPath)
			if err != nil {
				return err
			}
			defer func() {
				if err := store.Close(); err != nil {
					slog.Error("batchimport: close store", "error", err)
				}
			}()

			fetcher := importer.NewCollyFetcher(userAgent, timeout)
			batch := &importer.Batch{
				Store:      store,
				Importer:   importer.New(fetcher, source.NewRegistry()),
				DryRun:     dryRun,
				MaxRetries: maxRetries,
			}
			return batch.Run(cmd.Context(), src)
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "parse and log without writing to the database")
	cmd.Flags().StringVar(&dbPath, "db", "cookbook.db", "path to the sqlite database")
	cmd.Flags().Uint64Var(&maxRetries, "max-retries", 2, "retries per recipe page fetch")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "timeout per page fetch")
	cmd.Flags().StringVar(&userAgent, "useragent", "CookbookBot/1.0 (+https://github.com/ysads/cookbook)", "user agent for scraped sites")

	return cmd
}

func sourceNames() []string {
	names := make([]string, len(cookbookdb.Sources))
	for i, s := range cookbookdb.Sources {
		names[i] = string(s)
	}
	return names
}
