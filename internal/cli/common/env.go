// Package common holds what the cfbrowse command groups share: loading the
// configuration and credential, building the catalog and writing output.
package common

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/steviee/cfbrowse/internal/catalog"
	"github.com/steviee/cfbrowse/internal/credential"
	"github.com/steviee/cfbrowse/internal/curseforge"
	"github.com/steviee/cfbrowse/internal/paging"
	"github.com/steviee/cfbrowse/internal/query"
	"github.com/steviee/cfbrowse/internal/state"
)

// EnvPrefix is the prefix of environment variables read by cfbrowse.
const EnvPrefix = "CFBROWSE"

// Viper keys.
const (
	KeyAPIKey  = "api_key"
	KeyBaseURL = "base_url"
	KeyLogLvl  = "logging.level"
)

// BindEnv makes viper resolve keys from CFBROWSE_* variables.
func BindEnv() {
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()
}

// Env is everything a catalog command needs.
type Env struct {
	Config      *state.Config
	ConfigPath  string
	Credentials *credential.Store
	Catalog     *catalog.Catalog
}

// Load reads the configuration and credential for cmd and builds the
// catalog.
func Load(cmd *cobra.Command) (*Env, error) {
	ctx := commandContext(cmd)

	configPath, err := ConfigPath(cmd)
	if err != nil {
		return nil, err
	}

	cfg, err := state.LoadConfigFrom(ctx, configPath)
	if errors.Is(err, state.ErrStorageUnavailable) {
		slog.Warn("cannot use config file, continuing with defaults",
			"path", configPath,
			"error", err)
		cfg = state.DefaultConfig()
	} else if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	BindEnv()
	if baseURL := viper.GetString(KeyBaseURL); baseURL != "" {
		if err := state.ValidateBaseURL(baseURL); err != nil {
			return nil, fmt.Errorf("%s_BASE_URL: %w", EnvPrefix, err)
		}
		cfg.API.BaseURL = baseURL
	}

	creds, err := OpenCredentials(cmd)
	if err != nil {
		return nil, err
	}

	client := curseforge.NewClient(ClientConfig(cfg))

	return &Env{
		Config:      cfg,
		ConfigPath:  configPath,
		Credentials: creds,
		Catalog:     catalog.New(client, CatalogConfig(cfg)),
	}, nil
}

// ConfigPath returns the --config flag value or the default config path.
func ConfigPath(cmd *cobra.Command) (string, error) {
	if cmd != nil {
		if path, err := cmd.Flags().GetString("config"); err == nil && path != "" {
			return path, nil
		}
	}

	path, err := state.GetConfigPath()
	if err != nil {
		return "", fmt.Errorf("get config path: %w", err)
	}
	return path, nil
}

// OpenCredentials opens the stored credential and applies the --api-key
// flag or the CFBROWSE_API_KEY variable on top of it.
func OpenCredentials(cmd *cobra.Command) (*credential.Store, error) {
	var store *credential.Store
	if path, err := state.GetCredentialPath(); err != nil {
		slog.Warn("no credential path, API key is kept in memory", "error", err)
		store = credential.Memory("")
	} else {
		store = credential.Open(path)
	}

	BindEnv()
	if key := viper.GetString(KeyAPIKey); key != "" {
		source := credential.SourceEnv
		if cmd != nil {
			if f := cmd.Flags().Lookup("api-key"); f != nil && f.Changed {
				source = credential.SourceFlag
			}
		}
		store.Override(key, source)
		slog.Debug("API key overridden", "source", string(source))
	}

	return store, nil
}

// ClientConfig maps the configuration onto the API client's.
func ClientConfig(cfg *state.Config) *curseforge.Config {
	return &curseforge.Config{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.API.Timeout,
		UserAgent: cfg.API.UserAgent,
		RateLimit: cfg.API.RateLimit,
		Paging:    PagingDefaults(cfg),
	}
}

// PagingDefaults maps the pagination section.
func PagingDefaults(cfg *state.Config) paging.Defaults {
	sizes := make([]int, len(cfg.Pagination.PageSizeOptions))
	copy(sizes, cfg.Pagination.PageSizeOptions)
	return paging.Defaults{
		PageSize:  cfg.Pagination.DefaultPageSize,
		PageSizes: sizes,
	}
}

// CatalogConfig maps the cache and pagination sections.
func CatalogConfig(cfg *state.Config) catalog.Config {
	return catalog.Config{
		Cache: query.Config{
			StaleTime:  cfg.Cache.StaleTime,
			Retries:    cfg.Cache.Retries,
			Capacity:   cfg.Cache.Capacity,
			RetryDelay: cfg.Cache.RetryDelay,
		},
		Paging: PagingDefaults(cfg),
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if cmd != nil && cmd.Context() != nil {
		return cmd.Context()
	}
	return context.Background()
}
