// Package metadata reads the certificate metadata document that sits next to
// a certificate page and exposes the report identifier.
package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"certview/src/internal/httpx"
)

// DefaultResource is the page-relative metadata document.
const DefaultResource = "index.json"

// maxBody caps the metadata document size.
const maxBody = 4 << 20

// ErrMetadataUnavailable wraps every fetch or parse failure.
var ErrMetadataUnavailable = errors.New("metadata unavailable")

// Metadata is the decoded document. Only codecheck.report is interpreted.
type Metadata map[string]any

// ReportID returns the trimmed codecheck.report value, or "" when the field
// is missing or not a string.
func (m Metadata) ReportID() string {
	cc, ok := m["codecheck"].(map[string]any)
	if !ok {
		return ""
	}
	s, _ := cc["report"].(string)
	return strings.TrimSpace(s)
}

// Client fetches the metadata document relative to a page base, which is
// either an http(s) URL or a local directory.
type Client struct {
	base     string
	resource string
	http     httpx.Doer
}

// Option configures a Client.
type Option func(*Client)

// WithResource overrides DefaultResource.
func WithResource(name string) Option {
	return func(c *Client) {
		if strings.TrimSpace(name) != "" {
			c.resource = strings.TrimSpace(name)
		}
	}
}

// WithHTTPClient sets the client used for http(s) bases.
func WithHTTPClient(d httpx.Doer) Option { return func(c *Client) { c.http = d } }

// NewClient returns a client for the page at base.
func NewClient(base string, opts ...Option) *Client {
	c := &Client{
		base:     strings.TrimSpace(base),
		resource: DefaultResource,
		http:     &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Location returns the resolved address of the metadata document.
func (c *Client) Location() string {
	if isRemote(c.base) {
		u, err := url.Parse(c.base)
		if err != nil {
			return c.base
		}
		if !strings.HasSuffix(u.Path, "/") {
			// treat the base as a page and resolve next to it, like a browser would
			if path.Ext(u.Path) == "" {
				u.Path += "/"
			}
		}
		ref, err := url.Parse(c.resource)
		if err != nil {
			return c.base
		}
		return u.ResolveReference(ref).String()
	}
	base := c.base
	if base == "" {
		base = "."
	}
	if fi, err := os.Stat(base); err == nil && !fi.IsDir() {
		base = filepath.Dir(base)
	}
	return filepath.Join(base, c.resource)
}

// Fetch reads and parses the document in a single attempt.
func (c *Client) Fetch(ctx context.Context) (Metadata, error) {
	loc := c.Location()
	var (
		data []byte
		err  error
	)
	if isRemote(c.base) {
		data, err = c.fetchRemote(ctx, loc)
	} else {
		data, err = readLocal(loc)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMetadataUnavailable, loc, err)
	}
	m, err := parse(loc, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMetadataUnavailable, loc, err)
	}
	return m, nil
}

func (c *Client) fetchRemote(ctx context.Context, loc string) ([]byte, error) {
	if c.http == nil {
		return nil, errors.New("no http client")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, loc, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9, */*;q=0.1")
	httpx.SetUA(req)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if err := httpx.CheckStatus(resp); err != nil {
		return nil, err
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxBody))
}

func readLocal(loc string) ([]byte, error) {
	f, err := os.Open(loc)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, maxBody))
}

// parse decodes YAML resources with yaml.v3 and everything else as JSON.
// The document must be a mapping; an empty mapping is valid.
func parse(loc string, data []byte) (Metadata, error) {
	var m Metadata
	switch strings.ToLower(path.Ext(strings.SplitN(loc, "?", 2)[0])) {
	case ".yml", ".yaml":
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, err
		}
	default:
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, err
		}
	}
	if m == nil {
		return nil, errors.New("document is not a mapping")
	}
	return m, nil
}

func isRemote(base string) bool {
	return strings.HasPrefix(base, "http://") || strings.HasPrefix(base, "https://")
}
