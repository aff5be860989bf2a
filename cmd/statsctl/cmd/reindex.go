package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"filestats/internal/indexer"
	"filestats/internal/stats"
)

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Run one stats pass over the site",
	Long: `Run one stats pass and persist the result.

By default the pass is additive: only files without a cached entry are
scanned. --all rebuilds every entry, --cat rebuilds one category, and
--sweep also drops entries whose files no longer exist.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		category, _ := cmd.Flags().GetString("cat")
		sweep, _ := cmd.Flags().GetBool("sweep")

		store, err := openStore()
		if err != nil {
			return fmt.Errorf("opening cache store: %w", err)
		}
		defer store.Close()

		universe, err := newBuilder().Build()
		if err != nil {
			return fmt.Errorf("scanning site directories: %w", err)
		}

		req, err := indexer.ParseRequest(all, category, sweep, universe)
		if err != nil {
			return err
		}

		recon := indexer.New(store, stats.Options{WholeDocument: wholeDocument})
		mapping, result, err := recon.Reindex(req, universe)
		if err != nil {
			return fmt.Errorf("stats pass failed: %w", err)
		}

		fmt.Printf("mode:      %s\n", result.Mode)
		fmt.Printf("scanned:   %d\n", result.Scanned)
		fmt.Printf("deleted:   %d\n", result.Deleted)
		fmt.Printf("entries:   %d\n", len(mapping))
		fmt.Printf("persisted: %v\n", result.Persisted)

		return nil
	},
}

func init() {
	reindexCmd.Flags().Bool("all", false, "rebuild every entry from disk")
	reindexCmd.Flags().String("cat", "", "rebuild only the entries of one category")
	reindexCmd.Flags().Bool("sweep", false, "also drop entries whose files are gone")
	rootCmd.AddCommand(reindexCmd)
}
