package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigFile is looked up in the working directory.
	DefaultConfigFile = ".certview.yaml"
	// xdgConfigFile is looked up in XDGConfigDir.
	xdgConfigFile = "config.yaml"
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "CERTVIEW_"
)

// Load builds a Config from defaults, the file FindConfigFile(path) selects
// and the environment read through getenv (os.Getenv when nil). An explicit
// path that does not exist is an error; a missing default file is not.
func Load(path string, getenv func(string) string) (*Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	cfg := NewConfig()
	file := FindConfigFile(path)
	if path != "" && file == "" {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
	}
	if file != "" {
		if err := cfg.loadFile(file); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(getenv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FindConfigFile returns the first existing file among path (when set),
// ./.certview.yaml and <XDGConfigDir>/config.yaml, or "".
func FindConfigFile(path string) string {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return path
		}
		return ""
	}
	candidates := []string{DefaultConfigFile, filepath.Join(XDGConfigDir(), xdgConfigFile)}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	str := func(key string, dst *string) {
		if v := strings.TrimSpace(getenv(EnvPrefix + key)); v != "" {
			*dst = v
		}
	}
	str("RESOLVER", &c.Resolver)
	str("METADATA", &c.Metadata)
	str("STYLE", &c.Style)
	str("CACHE_DIR", &c.CacheDir)
	str("ADDR", &c.Addr)

	for key, dst := range map[string]*time.Duration{"TIMEOUT": &c.Timeout, "CACHE_TTL": &c.CacheTTL} {
		v := strings.TrimSpace(getenv(EnvPrefix + key))
		if v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
		}
		*dst = d
	}
	for key, dst := range map[string]*bool{"NO_CACHE": &c.NoCache, "VERBOSE": &c.Verbose} {
		v := strings.TrimSpace(getenv(EnvPrefix + key))
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
		}
		*dst = b
	}
	if v := strings.TrimSpace(getenv(EnvPrefix + "WIDTH")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sWIDTH: %w", EnvPrefix, err)
		}
		c.Width = n
	}
	return nil
}
