// Package app assembles the runtime shared by the cert commands from the
// root persistent flags and the loaded configuration.
package app

import (
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"

	"certview/src/internal/cache"
	"certview/src/internal/config"
	"certview/src/internal/doi"
	"certview/src/internal/log"
	"certview/src/internal/metadata"
)

// Persistent flag names defined on the root command.
const (
	FlagConfig  = "config"
	FlagVerbose = "verbose"
)

// Env is everything a command needs to run the page controllers.
type Env struct {
	Config  *config.Config
	Logger  *slog.Logger
	HTTP    *http.Client
	Service *doi.Engine
	Cache   *cache.Store
}

// Load reads the persistent flags of cmd, loads and validates the
// configuration, and builds the DOI engine. A cache that cannot be opened is
// logged and skipped.
func Load(cmd *cobra.Command) (*Env, error) {
	path, _ := cmd.Flags().GetString(FlagConfig)
	cfg, err := config.Load(path, nil)
	if err != nil {
		return nil, err
	}
	if v, _ := cmd.Flags().GetBool(FlagVerbose); v {
		cfg.Verbose = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	env := &Env{
		Config: cfg,
		Logger: log.New(cmd.ErrOrStderr(), cfg.Verbose),
		HTTP:   &http.Client{Timeout: cfg.Timeout},
	}
	opts := []doi.Option{
		doi.WithHTTPClient(env.HTTP),
		doi.WithResolver(cfg.Resolver),
		doi.WithLogger(env.Logger),
	}
	if !cfg.NoCache {
		store, err := cache.Open(cfg.CachePath(), cache.Options{TTL: cfg.CacheTTL})
		if err != nil {
			env.Logger.Warn("record cache disabled", "dir", cfg.CachePath(), "err", err)
		} else {
			env.Cache = store
			opts = append(opts, doi.WithCache(store))
		}
	}
	env.Service = doi.New(opts...)
	return env, nil
}

// Logger builds only the logger, for commands that make no requests.
func Logger(cmd *cobra.Command) *slog.Logger {
	v, _ := cmd.Flags().GetBool(FlagVerbose)
	return log.New(cmd.ErrOrStderr(), v)
}

// Metadata returns a metadata client for the page at base.
func (e *Env) Metadata(base string) *metadata.Client {
	return metadata.NewClient(base,
		metadata.WithResource(e.Config.Metadata),
		metadata.WithHTTPClient(e.HTTP))
}

// Close releases the cache.
func (e *Env) Close() error {
	if e == nil || e.Cache == nil {
		return nil
	}
	return e.Cache.Close()
}
