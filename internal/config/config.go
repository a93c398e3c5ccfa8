// Package config provides application configuration management with support for environment variables, command-line flags, and .env files.
package config

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds the application configuration.
type Config struct {
	App     AppConfig
	Logger  LoggerConfig
	Library LibraryConfig
	Server  ServerConfig
	Scan    ScanConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string `validate:"required,oneof=development staging production"`
	DataPath    string `validate:"required"` // catalog database and other state
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string `validate:"required,oneof=debug info warn error"`
}

// LibraryConfig holds audio archive configuration.
type LibraryConfig struct {
	// Root of the live-show library, laid out as {year}/{show folder}.
	Path string `validate:"required"`
	// Root holding official-release folders. Optional.
	OfficialPath string
	// Path segment under Path that marks studio albums.
	StudioDirName string `validate:"required"`
	// Song alias database file.
	SongDBPath string `validate:"required"`
	// Artist names stripped when they lead a folder name.
	Artists []string
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string        `validate:"required"`
	ReadTimeout  time.Duration // HTTP read timeout (default: 15s)
	WriteTimeout time.Duration // HTTP write timeout (default: 15s)
	IdleTimeout  time.Duration // HTTP idle timeout (default: 60s)
}

// ScanConfig holds library scan configuration.
type ScanConfig struct {
	// Workers bounds concurrent show-folder scans.
	Workers int `validate:"min=1"`
	// WatchLibrary enables the fsnotify watcher that triggers rescans.
	WatchLibrary bool
	// RescanInterval is the minimum spacing between triggered rescans.
	RescanInterval time.Duration
}

// LoadConfig loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func LoadConfig(args []string) (*Config, error) {
	fs := newFlagSet()
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// Load .env file if it exists (silently ignore if not found).
	_ = loadEnvFile(fs.envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(fs.env, "ENV", "development"),
			DataPath:    getConfigValue(fs.dataPath, "DATA_PATH", ""),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(fs.logLevel, "LOG_LEVEL", "info"),
		},
		Library: LibraryConfig{
			Path:          getConfigValue(fs.libraryPath, "LIBRARY_PATH", ""),
			OfficialPath:  getConfigValue(fs.officialPath, "OFFICIAL_PATH", ""),
			StudioDirName: getConfigValue(fs.studioDirName, "STUDIO_DIR_NAME", "Studio Albums"),
			SongDBPath:    getConfigValue(fs.songDBPath, "SONGDB_PATH", ""),
		},
		Server: ServerConfig{
			Port: getConfigValue(fs.port, "SERVER_PORT", "8080"),
		},
		Scan: ScanConfig{
			Workers:      getIntConfigValue(fs.scanWorkers, "SCAN_WORKERS", 4),
			WatchLibrary: getBoolConfigValue(fs.watchLibrary, "WATCH_LIBRARY", false),
		},
	}

	if artists := getConfigValue(fs.artists, "ARTISTS", "Grateful Dead"); artists != "" {
		for _, a := range strings.Split(artists, ",") {
			if a = strings.TrimSpace(a); a != "" {
				cfg.Library.Artists = append(cfg.Library.Artists, a)
			}
		}
	}

	var err error
	if cfg.Server.ReadTimeout, err = parseDurationValue(fs.readTimeout, "SERVER_READ_TIMEOUT", "15s"); err != nil {
		return nil, err
	}
	if cfg.Server.WriteTimeout, err = parseDurationValue(fs.writeTimeout, "SERVER_WRITE_TIMEOUT", "15s"); err != nil {
		return nil, err
	}
	if cfg.Server.IdleTimeout, err = parseDurationValue(fs.idleTimeout, "SERVER_IDLE_TIMEOUT", "60s"); err != nil {
		return nil, err
	}
	if cfg.Scan.RescanInterval, err = parseDurationValue(fs.rescanInterval, "RESCAN_INTERVAL", "30s"); err != nil {
		return nil, err
	}

	if err := cfg.expandPaths(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	return validator.New(validator.WithRequiredStructEnabled()).Struct(c)
}

// expandPaths applies tilde expansion and defaults for every path setting.
func (c *Config) expandPaths() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	if c.App.DataPath, err = expandPath(c.App.DataPath, filepath.Join(homeDir, "TapeVault", "data")); err != nil {
		return fmt.Errorf("invalid data path: %w", err)
	}
	if c.Library.Path, err = expandPath(c.Library.Path, filepath.Join(homeDir, "TapeVault", "library")); err != nil {
		return fmt.Errorf("invalid library path: %w", err)
	}
	if c.Library.OfficialPath != "" {
		if c.Library.OfficialPath, err = expandPath(c.Library.OfficialPath, ""); err != nil {
			return fmt.Errorf("invalid official-releases path: %w", err)
		}
	}
	if c.Library.SongDBPath, err = expandPath(c.Library.SongDBPath, filepath.Join(c.App.DataPath, "songs.json")); err != nil {
		return fmt.Errorf("invalid song database path: %w", err)
	}
	return nil
}

// flagSet declares every command-line flag on a private FlagSet so tests
// can load config repeatedly without tripping the global flag package.
type flagSet struct {
	fs *flag.FlagSet

	env, logLevel, dataPath            string
	libraryPath, officialPath          string
	studioDirName, songDBPath, artists string
	port                               string
	readTimeout, writeTimeout          string
	idleTimeout, rescanInterval        string
	scanWorkers, watchLibrary          string
	envFile                            string
}

func (f *flagSet) Parse(args []string) error { return f.fs.Parse(args) }

func newFlagSet() *flagSet {
	f := &flagSet{fs: flag.NewFlagSet("tapevault", flag.ContinueOnError)}
	f.fs.StringVar(&f.env, "env", "", "Environment (development, staging, production)")
	f.fs.StringVar(&f.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	f.fs.StringVar(&f.dataPath, "data-path", "", "Base path for catalog data")
	f.fs.StringVar(&f.libraryPath, "library-path", "", "Path to the live-show library")
	f.fs.StringVar(&f.officialPath, "official-path", "", "Path to official releases")
	f.fs.StringVar(&f.studioDirName, "studio-dir", "", "Studio-albums path segment (default: Studio Albums)")
	f.fs.StringVar(&f.songDBPath, "songdb-path", "", "Path to the song alias database")
	f.fs.StringVar(&f.artists, "artists", "", "Comma-separated artist names to strip from folder names")
	f.fs.StringVar(&f.port, "port", "", "Server port (default: 8080)")
	f.fs.StringVar(&f.readTimeout, "read-timeout", "", "HTTP read timeout (default: 15s)")
	f.fs.StringVar(&f.writeTimeout, "write-timeout", "", "HTTP write timeout (default: 15s)")
	f.fs.StringVar(&f.idleTimeout, "idle-timeout", "", "HTTP idle timeout (default: 60s)")
	f.fs.StringVar(&f.rescanInterval, "rescan-interval", "", "Minimum spacing between rescans (default: 30s)")
	f.fs.StringVar(&f.scanWorkers, "scan-workers", "", "Concurrent show scans (default: 4)")
	f.fs.StringVar(&f.watchLibrary, "watch", "", "Watch the library for changes (default: false)")
	f.fs.StringVar(&f.envFile, "env-file", ".env", "Path to .env file")
	return f
}

func parseDurationValue(flagValue, envKey, defaultValue string) (time.Duration, error) {
	raw := getConfigValue(flagValue, envKey, defaultValue)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", strings.ToLower(envKey), raw, err)
	}
	return d, nil
}

// expandPath expands ~ and makes the path absolute.
// If path is empty and defaultPath is provided, uses the default.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}
	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}
	return filepath.Clean(path), nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

// getBoolConfigValue returns a bool from flag, env var, or default.
// Accepts: "true", "1", "yes" (case-insensitive) as true; anything else is false.
func getBoolConfigValue(flagValue, envKey string, defaultValue bool) bool {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	strValue = strings.ToLower(strValue)
	return strValue == "true" || strValue == "1" || strValue == "yes"
}

// getIntConfigValue returns an int from flag, env var, or default.
func getIntConfigValue(flagValue, envKey string, defaultValue int) int {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	var result int
	if _, err := fmt.Sscanf(strValue, "%d", &result); err != nil {
		return defaultValue
	}
	return result
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments).
func loadEnvFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}
		key := strings.TrimSpace(parts[0])
		value := strings.Trim(strings.TrimSpace(parts[1]), `"'`)
		// env vars take precedence over the .env file
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}
	return scanner.Err()
}
