package config

import (
	"net"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"

	"certview/src/internal/cache"
	"certview/src/internal/citation"
	"certview/src/internal/doi"
	"certview/src/internal/metadata"
)

const (
	// AppName names the XDG directories.
	AppName = "certview"

	// DefaultTimeout bounds each metadata or DOI request.
	DefaultTimeout = 10 * time.Second

	// DefaultAddr is the listen address of cert serve.
	DefaultAddr = "127.0.0.1:8080"

	// DefaultWidth is the wrap width of the terminal viewer.
	DefaultWidth = 80

	minWidth = 20
)

// Config holds every setting the commands read.
type Config struct {
	// Resolver is the DOI content-negotiation endpoint.
	Resolver string `yaml:"resolver"`
	// Metadata is the page-relative metadata document.
	Metadata string `yaml:"metadata"`
	// Style is the style selected after load.
	Style string `yaml:"style"`
	// Timeout bounds each outbound request.
	Timeout time.Duration `yaml:"timeout"`

	// CacheDir holds the record cache; empty means XDGCacheDir.
	CacheDir string `yaml:"cache_dir"`
	// CacheTTL is how long a cached record stays fresh; 0 uses cache.DefaultTTL.
	CacheTTL time.Duration `yaml:"cache_ttl"`
	// NoCache disables the record cache.
	NoCache bool `yaml:"no_cache"`

	// Addr is the cert serve listen address.
	Addr string `yaml:"addr"`
	// Width is the cert view wrap width.
	Width int `yaml:"width"`
	// Pages overrides page discovery with an explicit ordered list.
	Pages []string `yaml:"pages"`

	// Verbose enables debug logging.
	Verbose bool `yaml:"verbose"`
}

// NewConfig returns a Config with defaults.
func NewConfig() *Config {
	return &Config{
		Resolver: doi.DefaultResolver,
		Metadata: metadata.DefaultResource,
		Style:    string(citation.DefaultStyle),
		Timeout:  DefaultTimeout,
		CacheTTL: cache.DefaultTTL,
		Addr:     DefaultAddr,
		Width:    DefaultWidth,
	}
}

// XDGConfigDir returns the per-user config directory.
func XDGConfigDir() string { return filepath.Join(xdg.ConfigHome, AppName) }

// XDGCacheDir returns the per-user cache directory.
func XDGCacheDir() string { return filepath.Join(xdg.CacheHome, AppName) }

// CachePath returns the configured cache directory, or the XDG default.
func (c *Config) CachePath() string {
	if strings.TrimSpace(c.CacheDir) != "" {
		return c.CacheDir
	}
	return XDGCacheDir()
}

// Validate returns the first invalid setting.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Resolver)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidResolver
	}
	if strings.TrimSpace(c.Metadata) == "" {
		return ErrEmptyMetadata
	}
	if !citation.Style(strings.ToLower(strings.TrimSpace(c.Style))).Valid() {
		return ErrInvalidStyle
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.CacheTTL < 0 {
		return ErrInvalidCacheTTL
	}
	if c.Width < minWidth {
		return ErrInvalidWidth
	}
	if _, _, err := net.SplitHostPort(c.Addr); err != nil {
		return ErrInvalidAddr
	}
	return nil
}
