package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [path]",
	Short: "Print cached stats without modifying them",
	Long: `Print the cached stats mapping.

With no argument the whole mapping is printed as a table. With a path
argument the single entry is printed as JSON.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return fmt.Errorf("opening cache store: %w", err)
		}
		defer store.Close()

		mapping, err := store.Load()
		if err != nil {
			return fmt.Errorf("loading cache: %w", err)
		}

		if len(args) == 1 {
			entry, ok := mapping[args[0]]
			if !ok {
				return fmt.Errorf("no stats for %s", args[0])
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(entry)
		}

		if len(mapping) == 0 {
			fmt.Println("Cache is empty")
			return nil
		}

		paths := make([]string, 0, len(mapping))
		for path := range mapping {
			paths = append(paths, path)
		}
		sort.Strings(paths)

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "PATH\tSIZE\tTYPE\tWORDS\tMODIFIED")
		for _, path := range paths {
			entry := mapping[path]
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
				path,
				entry.SizeString,
				entry.MimeType,
				entry.WordCount,
				time.Unix(entry.MTime, 0).Format("2006-01-02 15:04"),
			)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
