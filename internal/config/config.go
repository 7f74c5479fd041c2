package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds the server settings.
type Config struct {
	// Addr is the listen address of the HTTP server.
	Addr string `toml:"addr"`
	// Storage selects the snapshot backend: "sqlite" or "memory".
	Storage string `toml:"storage"`
	// DBPath is the SQLite database file. ":memory:" keeps everything in process.
	DBPath string `toml:"db_path"`
	// StorageKey names the snapshot row, like a local-storage key.
	StorageKey string `toml:"storage_key"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`
	// ResetCorrupt installs the default projects when the stored snapshot is corrupt.
	ResetCorrupt bool `toml:"reset_corrupt"`

	Auth AuthConfig `toml:"auth"`
}

// AuthConfig enables passphrase login. Auth is disabled when Passphrase is empty.
type AuthConfig struct {
	Passphrase string        `toml:"passphrase"`
	JWTSecret  string        `toml:"jwt_secret"`
	Issuer     string        `toml:"issuer"`
	Audience   string        `toml:"audience"`
	TokenTTL   time.Duration `toml:"token_ttl"`
}

// Enabled reports whether the API requires a token.
func (a AuthConfig) Enabled() bool { return a.Passphrase != "" }

// Storage backends.
const (
	StorageSQLite = "sqlite"
	StorageMemory = "memory"
)

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Addr:       ":8008",
		Storage:    StorageSQLite,
		DBPath:     "todo-list.db",
		StorageKey: "todo",
		LogLevel:   "info",
		Auth: AuthConfig{
			JWTSecret: "development-insecure-secret-change-me",
			Issuer:    "todo-list-api",
			Audience:  "todo-list-clients",
			TokenTTL:  24 * time.Hour,
		},
	}
}

// Load builds the configuration from defaults, then the TOML file named by
// TODO_CONFIG (if set), then environment variables.
func Load() (Config, error) {
	cfg := Default()
	if path := os.Getenv("TODO_CONFIG"); path != "" {
		if err := LoadFile(&cfg, path); err != nil {
			return cfg, err
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// LoadFile overlays the TOML file at path onto cfg.
func LoadFile(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("loading config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	cfg.Addr = getEnv("TODO_ADDR", cfg.Addr)
	cfg.Storage = getEnv("TODO_STORAGE", cfg.Storage)
	cfg.DBPath = getEnv("TODO_DB_PATH", cfg.DBPath)
	cfg.StorageKey = getEnv("TODO_STORAGE_KEY", cfg.StorageKey)
	cfg.LogLevel = getEnv("TODO_LOG_LEVEL", cfg.LogLevel)
	cfg.Auth.Passphrase = getEnv("TODO_PASSPHRASE", cfg.Auth.Passphrase)
	cfg.Auth.JWTSecret = getEnv("JWT_SECRET", cfg.Auth.JWTSecret)
	cfg.Auth.Issuer = getEnv("JWT_ISSUER", cfg.Auth.Issuer)
	cfg.Auth.Audience = getEnv("JWT_AUDIENCE", cfg.Auth.Audience)

	if v := os.Getenv("TODO_RESET_CORRUPT"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TODO_RESET_CORRUPT: %w", err)
		}
		cfg.ResetCorrupt = b
	}
	if v := os.Getenv("JWT_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("JWT_TTL: %w", err)
		}
		cfg.Auth.TokenTTL = d
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Validate reports settings that would prevent the server from starting.
func (c Config) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("addr is empty"))
	}
	switch c.Storage {
	case StorageSQLite:
		if c.DBPath == "" {
			errs = append(errs, errors.New("db_path is empty"))
		}
	case StorageMemory:
	default:
		errs = append(errs, fmt.Errorf("storage %q must be %s or %s", c.Storage, StorageSQLite, StorageMemory))
	}
	if c.StorageKey == "" {
		errs = append(errs, errors.New("storage_key is empty"))
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log_level %q must be one of debug, info, warn, error", c.LogLevel))
	}
	if c.Auth.Enabled() {
		if c.Auth.JWTSecret == "" {
			errs = append(errs, errors.New("auth.jwt_secret is required when a passphrase is set"))
		}
		if c.Auth.TokenTTL <= 0 {
			errs = append(errs, errors.New("auth.token_ttl must be positive"))
		}
	}
	return errors.Join(errs...)
}
