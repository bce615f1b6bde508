package state

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the user configuration for cfbrowse.
type Config struct {
	API        APIConfig        `yaml:"api"`
	Pagination PaginationConfig `yaml:"pagination"`
	Cache      CacheConfig      `yaml:"cache"`
	TUI        TUIConfig        `yaml:"tui"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// APIConfig holds upstream API settings.
type APIConfig struct {
	BaseURL   string        `yaml:"base_url"`
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
	RateLimit int           `yaml:"rate_limit"`
}

// PaginationConfig holds the page sizes offered in listings.
type PaginationConfig struct {
	DefaultPageSize int   `yaml:"default_page_size"`
	PageSizeOptions []int `yaml:"page_size_options"`
}

// CacheConfig holds request cache settings.
type CacheConfig struct {
	StaleTime  time.Duration `yaml:"stale_time"`
	Retries    int           `yaml:"retries"`
	Capacity   int           `yaml:"capacity"`
	RetryDelay time.Duration `yaml:"retry_delay"`
}

// TUIConfig holds TUI configuration.
type TUIConfig struct {
	Theme string `yaml:"theme"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns a Config with the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:   "https://api.curseforge.com/v1",
			Timeout:   30 * time.Second,
			UserAgent: "",
			RateLimit: 120,
		},
		Pagination: PaginationConfig{
			DefaultPageSize: 20,
			PageSizeOptions: []int{10, 20, 50},
		},
		Cache: CacheConfig{
			StaleTime:  5 * time.Minute,
			Retries:    1,
			Capacity:   256,
			RetryDelay: time.Second,
		},
		TUI: TUIConfig{
			Theme: "default",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// ErrStorageUnavailable marks a config file that could not be read or
// written. Callers may continue with DefaultConfig.
var ErrStorageUnavailable = errors.New("config storage unavailable")

// LoadConfigFrom loads the configuration from path.
// A missing file is created with defaults. A file that is not valid YAML is
// moved aside to path.corrupted and replaced with defaults. Read and write
// failures wrap ErrStorageUnavailable.
func LoadConfigFrom(ctx context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg := DefaultConfig()
		if err := SaveConfigTo(ctx, path, cfg); err != nil {
			return nil, fmt.Errorf("%w: failed to save default config: %w", ErrStorageUnavailable, err)
		}
		slog.Debug("created default config", "path", path)
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read config file: %w", ErrStorageUnavailable, err)
	}

	// Start from defaults so sections missing from the file keep their
	// built-in values.
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		backupPath := path + ".corrupted"
		if backupErr := os.Rename(path, backupPath); backupErr != nil {
			return nil, fmt.Errorf("%w: config file is corrupted and failed to create backup: %w (original error: %v)", ErrStorageUnavailable, backupErr, err)
		}

		slog.Warn("config file was corrupted, replaced with defaults",
			"path", path,
			"backup", backupPath,
			"error", err)

		fresh := DefaultConfig()
		if saveErr := SaveConfigTo(ctx, path, fresh); saveErr != nil {
			return nil, fmt.Errorf("%w: config file was corrupted (backed up to %s), failed to save fresh config: %w (original error: %v)", ErrStorageUnavailable, backupPath, saveErr, err)
		}
		return fresh, nil
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveConfigTo validates cfg and writes it to path atomically.
func SaveConfigTo(ctx context.Context, path string, cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if err := ValidateConfig(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := AtomicWrite(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// ValidateConfig validates the configuration.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if err := ValidateBaseURL(cfg.API.BaseURL); err != nil {
		return fmt.Errorf("invalid api config: %w", err)
	}

	if cfg.API.Timeout < time.Second {
		return fmt.Errorf("api timeout must be >= 1s, got %v", cfg.API.Timeout)
	}

	if cfg.API.RateLimit < 0 {
		return fmt.Errorf("api rate limit must be >= 0, got %d", cfg.API.RateLimit)
	}

	if err := ValidatePageSizes(cfg.Pagination.DefaultPageSize, cfg.Pagination.PageSizeOptions); err != nil {
		return fmt.Errorf("invalid pagination config: %w", err)
	}

	if cfg.Cache.StaleTime <= 0 {
		return fmt.Errorf("cache stale time must be > 0, got %v", cfg.Cache.StaleTime)
	}

	if cfg.Cache.Retries < 0 || cfg.Cache.Retries > 1 {
		return fmt.Errorf("cache retries must be 0 or 1, got %d", cfg.Cache.Retries)
	}

	if cfg.Cache.Capacity < 1 {
		return fmt.Errorf("cache capacity must be >= 1, got %d", cfg.Cache.Capacity)
	}

	if cfg.Cache.RetryDelay < 0 {
		return fmt.Errorf("cache retry delay must be >= 0, got %v", cfg.Cache.RetryDelay)
	}

	if err := ValidateTheme(cfg.TUI.Theme); err != nil {
		return fmt.Errorf("invalid tui config: %w", err)
	}

	if err := ValidateLogLevel(cfg.Logging.Level); err != nil {
		return fmt.Errorf("invalid logging config: %w", err)
	}

	return nil
}
