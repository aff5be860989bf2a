package startup

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"time"

	"filestats/internal/logging"

	"github.com/gorilla/mux"
	"gopkg.in/yaml.v3"
)

// Build-time variables (injected via -ldflags)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
	GoVersion = runtime.Version()
)

// BuildInfo contains version and build information
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// GetBuildInfo returns the current build information
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: GoVersion,
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// Cache backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config holds all application configuration
type Config struct {
	ContentDir string
	StaticDir  string
	StateDir   string
	Port       string

	UseCaching   bool
	CacheBackend string
	CacheFile    string

	IndexInterval   time.Duration
	WholeDocument   bool
	MetricsEnabled  bool
	LogHealthChecks bool
}

// fileConfig mirrors Config for the optional YAML configuration file.
// Every field is a pointer so absent keys fall through to the defaults.
type fileConfig struct {
	ContentDir      *string `yaml:"contentDir"`
	StaticDir       *string `yaml:"staticDir"`
	StateDir        *string `yaml:"stateDir"`
	Port            *string `yaml:"port"`
	UseCaching      *bool   `yaml:"useCaching"`
	CacheBackend    *string `yaml:"cacheBackend"`
	CacheFile       *string `yaml:"cacheFile"`
	IndexInterval   *string `yaml:"indexInterval"`
	WholeDocument   *bool   `yaml:"wholeDocument"`
	MetricsEnabled  *bool   `yaml:"metricsEnabled"`
	LogHealthChecks *bool   `yaml:"logHealthChecks"`
}

// LoadConfig loads configuration in three layers: built-in defaults, an
// optional YAML file named by FILESTATS_CONFIG, then environment variables.
func LoadConfig() (*Config, error) {
	printBanner()
	logSystemInfo()

	logging.Info("------------------------------------------------------------")
	logging.Info("CONFIGURATION")
	logging.Info("------------------------------------------------------------")

	config := &Config{
		ContentDir:      "/content",
		StaticDir:       "/static",
		StateDir:        "/state",
		Port:            "8080",
		UseCaching:      true,
		CacheBackend:    BackendFile,
		IndexInterval:   30 * time.Minute,
		MetricsEnabled:  true,
		LogHealthChecks: true,
	}

	if path := os.Getenv("FILESTATS_CONFIG"); path != "" {
		if err := applyConfigFile(config, path); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		logging.Info("  Config file:         %s", path)
	}

	config.ContentDir = getEnv("CONTENT_DIR", config.ContentDir)
	config.StaticDir = getEnv("STATIC_DIR", config.StaticDir)
	config.StateDir = getEnv("STATE_DIR", config.StateDir)
	config.Port = getEnv("PORT", config.Port)
	config.UseCaching = getEnvBool("USE_CACHING", config.UseCaching)
	config.CacheBackend = getEnv("CACHE_BACKEND", config.CacheBackend)
	config.CacheFile = getEnv("CACHE_FILE", config.CacheFile)
	config.WholeDocument = getEnvBool("WHOLE_DOCUMENT", config.WholeDocument)
	config.MetricsEnabled = getEnvBool("METRICS_ENABLED", config.MetricsEnabled)
	config.LogHealthChecks = getEnvBool("LOG_HEALTH_CHECKS", config.LogHealthChecks)

	if s := getEnv("INDEX_INTERVAL", ""); s != "" {
		interval, err := time.ParseDuration(s)
		if err != nil {
			logging.Warn("  Invalid INDEX_INTERVAL %q, keeping %v", s, config.IndexInterval)
		} else {
			config.IndexInterval = interval
		}
	}

	switch config.CacheBackend {
	case BackendFile, BackendSQLite:
	default:
		return nil, fmt.Errorf("unknown CACHE_BACKEND %q (want %q or %q)",
			config.CacheBackend, BackendFile, BackendSQLite)
	}

	logging.Info("  CONTENT_DIR:         %s", config.ContentDir)
	logging.Info("  STATIC_DIR:          %s", config.StaticDir)
	logging.Info("  STATE_DIR:           %s", config.StateDir)
	logging.Info("  PORT:                %s", config.Port)
	logging.Info("  USE_CACHING:         %v", config.UseCaching)
	logging.Info("  CACHE_BACKEND:       %s", config.CacheBackend)
	logging.Info("  INDEX_INTERVAL:      %s", config.IndexInterval)
	logging.Info("  WHOLE_DOCUMENT:      %v", config.WholeDocument)
	logging.Info("  METRICS_ENABLED:     %v", config.MetricsEnabled)
	logging.Info("  LOG_HEALTH_CHECKS:   %v", config.LogHealthChecks)
	logging.Info("  LOG_LEVEL:           %s", logging.GetLevel())

	// Resolve paths
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("DIRECTORY SETUP")
	logging.Info("------------------------------------------------------------")

	var err error
	config.ContentDir, err = filepath.Abs(config.ContentDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve content directory path: %w", err)
	}
	logging.Info("  Content directory (absolute): %s", config.ContentDir)

	config.StaticDir, err = filepath.Abs(config.StaticDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve static directory path: %w", err)
	}
	logging.Info("  Static directory (absolute): %s", config.StaticDir)

	config.StateDir, err = filepath.Abs(config.StateDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve state directory path: %w", err)
	}
	logging.Info("  State directory (absolute): %s", config.StateDir)

	// Missing content/static directories are warnings only; the site may
	// not have been mounted yet.
	if err := ensureDirectory(config.ContentDir, "content"); err != nil {
		logging.Warn("  Content directory issue: %v", err)
	}
	if err := ensureDirectory(config.StaticDir, "static"); err != nil {
		logging.Warn("  Static directory issue: %v", err)
	}

	if config.UseCaching {
		if err := ensureDirectory(config.StateDir, "state"); err != nil {
			logging.Warn("  State directory error: %v", err)
			logging.Warn("  Caching will be disabled")
			config.UseCaching = false
		} else if err := testWriteAccess(config.StateDir); err != nil {
			logging.Warn("  State directory is not writable: %v", err)
			logging.Warn("  Caching will be disabled")
			config.UseCaching = false
		} else {
			logging.Info("  [OK] State directory is writable")
		}
	}

	if config.CacheFile == "" {
		name := "file_stats.dat"
		if config.CacheBackend == BackendSQLite {
			name = "file_stats.db"
		}
		config.CacheFile = filepath.Join(config.StateDir, name)
	}

	logging.Info("")
	logging.Info("  Feature availability:")
	logging.Info("    Caching:     %s", enabledString(config.UseCaching))
	logging.Info("    Metrics:     %s", enabledString(config.MetricsEnabled))

	return config, nil
}

func applyConfigFile(config *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parsing YAML: %w", err)
	}

	if fc.ContentDir != nil {
		config.ContentDir = *fc.ContentDir
	}
	if fc.StaticDir != nil {
		config.StaticDir = *fc.StaticDir
	}
	if fc.StateDir != nil {
		config.StateDir = *fc.StateDir
	}
	if fc.Port != nil {
		config.Port = *fc.Port
	}
	if fc.UseCaching != nil {
		config.UseCaching = *fc.UseCaching
	}
	if fc.CacheBackend != nil {
		config.CacheBackend = *fc.CacheBackend
	}
	if fc.CacheFile != nil {
		config.CacheFile = *fc.CacheFile
	}
	if fc.IndexInterval != nil {
		interval, err := time.ParseDuration(*fc.IndexInterval)
		if err != nil {
			return fmt.Errorf("invalid indexInterval %q: %w", *fc.IndexInterval, err)
		}
		config.IndexInterval = interval
	}
	if fc.WholeDocument != nil {
		config.WholeDocument = *fc.WholeDocument
	}
	if fc.MetricsEnabled != nil {
		config.MetricsEnabled = *fc.MetricsEnabled
	}
	if fc.LogHealthChecks != nil {
		config.LogHealthChecks = *fc.LogHealthChecks
	}

	return nil
}

func enabledString(enabled bool) string {
	if enabled {
		return "ENABLED"
	}
	return "DISABLED"
}

// LogCacheInit logs cache store initialization
func LogCacheInit(backend string, duration time.Duration) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("CACHE INITIALIZATION")
	logging.Info("------------------------------------------------------------")
	logging.Info("  [OK] %s cache store initialized in %v", backend, duration)
}

// LogIndexerInit logs indexer initialization
func LogIndexerInit(interval time.Duration) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("INDEXER INITIALIZATION")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Index interval: %v", interval)
	logging.Info("  Starting indexer...")
}

// LogIndexerStarted logs successful indexer start
func LogIndexerStarted() {
	logging.Info("  [OK] Indexer started")
}

// RouteInfo contains information about a registered route
type RouteInfo struct {
	Method string
	Path   string
	Name   string
}

// GetRoutes extracts all registered routes from a mux.Router
func GetRoutes(router *mux.Router) ([]RouteInfo, error) {
	var routes []RouteInfo

	err := router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		pathTemplate, err := route.GetPathTemplate()
		if err != nil {
			return err
		}

		methods, err := route.GetMethods()
		if err != nil {
			// Route might not have methods specified
			methods = []string{"*"}
		}

		name := route.GetName()

		for _, method := range methods {
			routes = append(routes, RouteInfo{
				Method: method,
				Path:   pathTemplate,
				Name:   name,
			})
		}

		return nil
	})

	return routes, err
}

// LogHTTPRoutes logs all registered HTTP routes dynamically
func LogHTTPRoutes(router *mux.Router, logHealthChecks bool) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("HTTP SERVER SETUP")
	logging.Info("------------------------------------------------------------")

	if logging.IsDebugEnabled() {
		routes, err := GetRoutes(router)
		if err != nil {
			logging.Warn("error walking routes: %v", err)
		}

		logging.Debug("  Registered routes (%d total):", len(routes))

		sort.Slice(routes, func(i, j int) bool {
			if routes[i].Path != routes[j].Path {
				return routes[i].Path < routes[j].Path
			}
			return routes[i].Method < routes[j].Method
		})

		for _, route := range routes {
			logging.Debug("    %-6s %s", route.Method, route.Path)
		}
	}

	logging.Info("  HTTP logging enabled")
	if logHealthChecks {
		logging.Info("    Health check logging: ON")
	} else {
		logging.Info("    Health check logging: OFF (set LOG_HEALTH_CHECKS=true to enable)")
	}
}

// ServerConfig holds configuration for the server startup log
type ServerConfig struct {
	Port            string
	MetricsEnabled  bool
	StartupDuration time.Duration
}

// LogServerStarted logs successful server start with all endpoint information
func LogServerStarted(config ServerConfig) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("SERVER STARTED")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Startup time:    %v", config.StartupDuration)
	logging.Info("")
	logging.Info("  Endpoints:")
	logging.Info("    API:           http://0.0.0.0:%s/api", config.Port)
	if config.MetricsEnabled {
		logging.Info("    Metrics:       http://0.0.0.0:%s/metrics", config.Port)
	} else {
		logging.Info("    Metrics:       DISABLED")
	}
	logging.Info("")
	logging.Info("  Press Ctrl+C to stop the server")
	logging.Info("------------------------------------------------------------")
	logging.Info("")
}

// LogShutdownInitiated logs shutdown start
func LogShutdownInitiated(signal string) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("SHUTDOWN INITIATED (received %s)", signal)
	logging.Info("------------------------------------------------------------")
}

// LogShutdownStep logs a shutdown step
func LogShutdownStep(step string) {
	logging.Debug("  %s...", step)
}

// LogShutdownStepComplete logs a completed shutdown step
func LogShutdownStepComplete(step string) {
	logging.Info("  [OK] %s", step)
}

// LogShutdownComplete logs shutdown completion
func LogShutdownComplete() {
	logging.Info("  [OK] Shutdown complete")
}

// LogFatal logs a fatal error and exits
func LogFatal(format string, args ...interface{}) {
	logging.Fatal(format, args...)
}

// Helper functions

func printBanner() {
	banner := `
------------------------------------------------------------
    _____ _ _      _____ _        _
   |  ___(_) | ___/  ___| |_ __ _| |_ ___
   | |_  | | |/ _ \ \__ \ __/ _' | __/ __|
   |  _| | | |  __/___) || || (_| | |_\__ \
   |_|   |_|_|\___|____/  \__\__,_|\__|___/

------------------------------------------------------------`
	fmt.Println(banner)
	logging.Info("  Version:    %s", Version)
	logging.Info("  Commit:     %s", Commit)
	logging.Info("  Build Time: %s", BuildTime)
	logging.Info("  Started:    %s", time.Now().Format(time.RFC1123))
	logging.Info("")
}

func logSystemInfo() {
	logging.Info("------------------------------------------------------------")
	logging.Info("SYSTEM INFORMATION")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Go version:      %s", runtime.Version())
	logging.Info("  OS/Arch:         %s/%s", runtime.GOOS, runtime.GOARCH)
	logging.Info("  CPUs available:  %d", runtime.NumCPU())
	logging.Info("  GOMAXPROCS:      %d", runtime.GOMAXPROCS(0))

	if runtime.GOMAXPROCS(0) < runtime.NumCPU() {
		logging.Info("  (Container CPU limit detected)")
	}

	if logging.IsDebugEnabled() {
		logging.Debug("  Goroutines:      %d", runtime.NumGoroutine())

		if wd, err := os.Getwd(); err == nil {
			logging.Debug("  Working dir:     %s", wd)
		}

		if hostname, err := os.Hostname(); err == nil {
			logging.Debug("  Hostname:        %s", hostname)
		}
	}

	logging.Info("")
}

func ensureDirectory(path, name string) error {
	logging.Debug("  Checking %s directory: %s", name, path)

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		logging.Debug("    Directory does not exist, creating...")
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
		logging.Debug("    [OK] Created directory: %s", path)
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to stat directory: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("path exists but is not a directory")
	}

	logging.Debug("    [OK] Directory exists")
	return nil
}

func testWriteAccess(dir string) error {
	testFile := filepath.Join(dir, ".write-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o644); err != nil {
		return err
	}
	if err := os.Remove(testFile); err != nil {
		logging.Warn("failed to remove write test file %s: %v", testFile, err)
		// Write access was confirmed regardless
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		logging.Warn("Invalid boolean value for %s: %q, using default: %v", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}
