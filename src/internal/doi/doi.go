// Package doi is the bibliography engine behind the citation panel. It
// resolves DOIs through doi.org content negotiation (CSL JSON) and formats
// the resulting records locally.
package doi

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"certview/src/internal/citation"
	"certview/src/internal/csl"
	"certview/src/internal/httpx"
)

// DefaultResolver is the doi.org content-negotiation endpoint.
const DefaultResolver = "https://doi.org/"

const cslMediaType = "application/vnd.citationstyles.csl+json"

const maxBody = 2 << 20

// Cache stores raw CSL documents by normalised DOI.
type Cache interface {
	Get(ctx context.Context, doi string) ([]byte, bool, error)
	Put(ctx context.Context, doi string, data []byte) error
}

// Engine implements citation.Service.
type Engine struct {
	client   httpx.Doer
	resolver string
	cache    Cache
	logger   *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithHTTPClient sets the HTTP client; nil makes the engine unavailable.
func WithHTTPClient(c httpx.Doer) Option { return func(e *Engine) { e.client = c } }

// WithResolver overrides DefaultResolver.
func WithResolver(u string) Option { return func(e *Engine) { e.resolver = strings.TrimSpace(u) } }

// WithCache enables the CSL cache.
func WithCache(c Cache) Option { return func(e *Engine) { e.cache = c } }

// WithLogger sets a structured logger.
func WithLogger(l *slog.Logger) Option { return func(e *Engine) { e.logger = l } }

// New returns an engine using doi.org and a 10s HTTP timeout.
func New(opts ...Option) *Engine {
	e := &Engine{
		client:   &http.Client{Timeout: 10 * time.Second},
		resolver: DefaultResolver,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if !strings.HasSuffix(e.resolver, "/") {
		e.resolver += "/"
	}
	return e
}

// Record is a resolved DOI.
type Record struct {
	identifier string
	doi        string
	item       csl.Item
}

// Identifier returns the identifier as given to Resolve.
func (r *Record) Identifier() string { return r.identifier }

// DOI returns the normalised DOI.
func (r *Record) DOI() string { return r.doi }

// Item returns the decoded CSL item.
func (r *Record) Item() csl.Item { return r.item }

// Available reports whether the engine has a client and an absolute http(s) resolver.
func (e *Engine) Available() bool {
	if e == nil || e.client == nil {
		return false
	}
	u, err := url.Parse(e.resolver)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Resolve fetches the CSL record for identifier, which may be a bare DOI,
// a doi: URI or a doi.org link.
func (e *Engine) Resolve(ctx context.Context, identifier string) (citation.Record, error) {
	if strings.TrimSpace(identifier) == "" {
		return nil, citation.ErrIdentifierEmpty
	}
	if !e.Available() {
		return nil, citation.ErrEngineUnavailable
	}
	d := Normalize(identifier)
	if !Valid(d) {
		return nil, fmt.Errorf("%w: %q is not a DOI", citation.ErrResolutionFailed, identifier)
	}
	data, cached, err := e.load(ctx, d)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", citation.ErrResolutionFailed, d, err)
	}
	item, err := csl.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", citation.ErrResolutionFailed, d, err)
	}
	if item.DOI == "" {
		item.DOI = d
	}
	if e.cache != nil && !cached {
		if err := e.cache.Put(ctx, d, data); err != nil {
			e.logger.Warn("csl cache write failed", "doi", d, "error", err)
		}
	}
	return &Record{identifier: strings.TrimSpace(identifier), doi: d, item: item}, nil
}

// Format renders a record produced by this engine.
func (e *Engine) Format(rec citation.Record, style citation.Style) (string, error) {
	r, ok := rec.(*Record)
	if !ok || r == nil {
		return "", fmt.Errorf("%w: foreign record %T", citation.ErrFormatFailed, rec)
	}
	return csl.Format(r.item, style)
}

// load returns the CSL document for d and whether it came from the cache.
// Cache failures are logged and fall through to the network.
func (e *Engine) load(ctx context.Context, d string) ([]byte, bool, error) {
	if e.cache != nil {
		data, ok, err := e.cache.Get(ctx, d)
		switch {
		case err != nil:
			e.logger.Warn("csl cache read failed", "doi", d, "error", err)
		case ok:
			e.logger.Debug("csl cache hit", "doi", d)
			return data, true, nil
		}
	}
	data, err := e.fetch(ctx, d)
	return data, false, err
}

func (e *Engine) fetch(ctx context.Context, d string) ([]byte, error) {
	u := e.resolver + (&url.URL{Path: d}).EscapedPath()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", cslMediaType)
	httpx.SetUA(req)
	e.logger.Debug("resolving doi", "url", u)
	resp, err := e.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if err := httpx.CheckStatus(resp); err != nil {
		return nil, err
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxBody))
}

var prefixes = []string{
	"https://doi.org/",
	"http://doi.org/",
	"https://dx.doi.org/",
	"http://dx.doi.org/",
	"doi:",
}

// Normalize strips resolver prefixes and percent-encoding from a DOI.
func Normalize(id string) string {
	id = strings.TrimSpace(id)
	for _, p := range prefixes {
		if len(id) >= len(p) && strings.EqualFold(id[:len(p)], p) {
			id = strings.TrimSpace(id[len(p):])
			break
		}
	}
	if u, err := url.PathUnescape(id); err == nil {
		id = u
	}
	return id
}

// Valid reports whether d looks like a DOI: "10." prefix, a registrant code
// and a non-empty suffix.
func Valid(d string) bool {
	if !strings.HasPrefix(d, "10.") {
		return false
	}
	i := strings.Index(d, "/")
	return i > len("10.") && i < len(d)-1
}
