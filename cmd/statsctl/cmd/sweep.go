package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"filestats/internal/indexer"
	"filestats/internal/stats"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Drop cached entries whose files no longer exist",
	Long: `Run an additive pass with deletion enabled.

New files get entries, and entries whose files are gone are removed.
Existing entries are left untouched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return fmt.Errorf("opening cache store: %w", err)
		}
		defer store.Close()

		universe, err := newBuilder().Build()
		if err != nil {
			return fmt.Errorf("scanning site directories: %w", err)
		}

		recon := indexer.New(store, stats.Options{WholeDocument: wholeDocument})
		mapping, result, err := recon.Reindex(indexer.Request{Sweep: true}, universe)
		if err != nil {
			return fmt.Errorf("sweep failed: %w", err)
		}

		fmt.Printf("scanned:   %d\n", result.Scanned)
		fmt.Printf("deleted:   %d\n", result.Deleted)
		fmt.Printf("entries:   %d\n", len(mapping))
		fmt.Printf("persisted: %v\n", result.Persisted)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(sweepCmd)
}
