package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"filestats/internal/cachestore"
	"filestats/internal/filesystem"
	"filestats/internal/site"
	"filestats/internal/startup"
)

var (
	contentDir    string
	staticDir     string
	cacheFile     string
	cacheBackend  string
	wholeDocument bool
)

var rootCmd = &cobra.Command{
	Use:   "statsctl",
	Short: "Manage the file stats cache from the command line",
	Long: `statsctl operates directly on a site's file stats cache.

It can run full, additive, or per-category passes over the content and
static directories, sweep entries whose files are gone, and print the
cached stats without touching them.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&contentDir, "content", getEnvOrDefault("CONTENT_DIR", "/content"), "site content directory")
	rootCmd.PersistentFlags().StringVar(&staticDir, "static", getEnvOrDefault("STATIC_DIR", "/static"), "site static directory")
	rootCmd.PersistentFlags().StringVar(&cacheFile, "cache-file", os.Getenv("CACHE_FILE"), "cache file path (defaults under STATE_DIR)")
	rootCmd.PersistentFlags().StringVar(&cacheBackend, "backend", getEnvOrDefault("CACHE_BACKEND", startup.BackendFile), "cache backend: file or sqlite")
	rootCmd.PersistentFlags().BoolVar(&wholeDocument, "whole-document", false, "count words over whole HTML documents instead of just the body")
}

func getEnvOrDefault(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultValue
}

// openStore opens the configured cache store.
func openStore() (cachestore.Store, error) {
	path := cacheFile
	if path == "" {
		stateDir := getEnvOrDefault("STATE_DIR", "/state")
		name := "file_stats.dat"
		if cacheBackend == startup.BackendSQLite {
			name = "file_stats.db"
		}
		path = stateDir + "/" + name
	}

	if cacheBackend == startup.BackendSQLite {
		return cachestore.NewSQLiteStore(context.Background(), path)
	}
	return cachestore.NewFileStore(path), nil
}

func newBuilder() *site.Builder {
	filesystem.SetDefaultVolumeResolver(filesystem.NewVolumeResolver(map[string]string{
		"content": contentDir,
		"static":  staticDir,
	}))
	return site.NewBuilder(contentDir, staticDir)
}
