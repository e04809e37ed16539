// Package config handles the XDG configuration directory and environment
// settings.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	// AppName is the application directory name.
	AppName = "todocli"

	// TokenFile is the stored bearer credential filename.
	TokenFile = "token.json"

	// SessionFile is the stored user record filename.
	SessionFile = "session.json"

	// TasksFile is the offline task store filename.
	TasksFile = "tasks.json"

	// DefaultAPIBaseURL is used when TODO_API_URL is unset.
	DefaultAPIBaseURL = "http://localhost:3000/api"

	// DefaultStaleTTL is the cache staleness horizon when
	// TODO_STALE_TTL is unset.
	DefaultStaleTTL = 5 * time.Minute
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// APIBaseURL is the remote backend base URL.
	APIBaseURL string

	// StaleTTL is how long cached query results stay fresh.
	StaleTTL time.Duration

	// Offline selects the local file-backed task store instead of the
	// remote backend.
	Offline bool

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// New creates a Config with the default or specified config directory.
// Environment variables (optionally from a .env file) override defaults:
// TODO_API_URL, TODO_STALE_TTL, TODO_OFFLINE.
func New(configDir string) (*Config, error) {
	_ = godotenv.Load()

	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{
		Dir:        dir,
		APIBaseURL: getEnv("TODO_API_URL", DefaultAPIBaseURL),
		StaleTTL:   getDurationEnv("TODO_STALE_TTL", DefaultStaleTTL),
		Offline:    getBoolEnv("TODO_OFFLINE", false),
	}, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// TokenPath returns the path to the stored bearer credential file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// SessionPath returns the path to the stored user record file.
func (c *Config) SessionPath() string {
	return filepath.Join(c.Dir, SessionFile)
}

// TasksPath returns the path to the offline task store file.
func (c *Config) TasksPath() string {
	return filepath.Join(c.Dir, TasksFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
