package panel

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"certview/src/internal/citation"
	"certview/src/internal/clipboard"
	"certview/src/internal/clock"
	"certview/src/internal/metadata"
)

// CopyFeedbackDuration is how long the "copied" indicator stays visible.
const CopyFeedbackDuration = 2 * time.Second

// User-facing messages.
const (
	MsgMetadataUnavailable = "Error loading certificate metadata."
	MsgEngineUnavailable   = "Citation library not loaded. Please refresh the page."
	MsgManualCopy          = "Could not copy to clipboard. Please copy manually."
	msgResolutionFailed    = "Error loading citation data from %s. Please try again later."
	msgFormatFailed        = "Error formatting citation in %s format."
)

// ErrAlreadyLoaded is returned by a second call to Load.
var ErrAlreadyLoaded = errors.New("panel: already loaded")

// MetadataSource fetches the page metadata. *metadata.Client satisfies it.
type MetadataSource interface {
	Fetch(ctx context.Context) (metadata.Metadata, error)
}

// Controller owns the citation panel state for one page.
type Controller struct {
	mu         sync.Mutex
	started    bool
	state      State
	identifier string
	record     citation.Record
	style      citation.Style
	rendered   string
	err        error
	feedback   clock.Timer
	feedbackN  int

	source    MetadataSource
	service   citation.Service
	clipboard clipboard.Writer
	clock     clock.Clock
	display   Display
	logger    *slog.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock sets the clock used for the copy-feedback timeout.
func WithClock(c clock.Clock) Option { return func(p *Controller) { p.clock = c } }

// WithDisplay sets the UI hooks.
func WithDisplay(d Display) Option { return func(p *Controller) { p.display = d } }

// WithLogger sets a structured logger.
func WithLogger(l *slog.Logger) Option { return func(p *Controller) { p.logger = l } }

// WithClipboard sets the clipboard used by Copy. Defaults to the system clipboard.
func WithClipboard(w clipboard.Writer) Option { return func(p *Controller) { p.clipboard = w } }

// New returns an Idle panel.
func New(source MetadataSource, service citation.Service, opts ...Option) *Controller {
	c := &Controller{
		state:   Idle,
		style:   citation.DefaultStyle,
		source:  source,
		service: service,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.clipboard == nil {
		c.clipboard = clipboard.System{}
	}
	if c.clock == nil {
		c.clock = clock.Real{}
	}
	if c.display == nil {
		c.display = nopDisplay{}
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Style returns the style of the current rendering.
func (c *Controller) Style() citation.Style {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.style
}

// Rendered returns the current citation text, or "" outside Ready.
func (c *Controller) Rendered() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rendered
}

// Identifier returns the report identifier read from the metadata.
func (c *Controller) Identifier() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.identifier
}

// Record returns the resolved record, or nil outside Ready.
func (c *Controller) Record() citation.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.record
}

// Err returns the failure that moved the panel to Error.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Load runs the load pipeline once. The panel stays Idle until the identifier
// and engine checks pass, and only then enters Loading. The returned error is
// the failure that moved the panel to Error; reaching Hidden is not an error.
// Network calls run without holding the lock, so accessors stay responsive
// while loading.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return ErrAlreadyLoaded
	}
	c.started = true
	c.mu.Unlock()

	run := &loadRun{}
	for _, st := range c.stages() {
		c.logger.Debug("citation stage", "stage", st.name)
		err := st.run(ctx, run)
		switch {
		case err == nil:
			continue
		case errors.Is(err, citation.ErrIdentifierEmpty):
			c.hide()
			return nil
		default:
			c.fail(st.name, run.identifier, err)
			return err
		}
	}
	return nil
}

// SelectStyle applies a selector value. Unrecognised values fall back to
// the default style.
func (c *Controller) SelectStyle(name string) error {
	style, ok := citation.ParseStyle(name)
	if !ok {
		c.logger.Warn("unknown citation style, using default", "style", name, "default", citation.DefaultStyle)
	}
	return c.SetStyle(style)
}

// SetStyle re-renders the citation in style. On a format failure the previous
// style and text stay in place and an inline note is shown. It is a no-op
// outside Ready.
func (c *Controller) SetStyle(style citation.Style) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Ready {
		return nil
	}
	text, err := c.format(style)
	if err != nil {
		c.logger.Error("format citation", "style", style, "err", err)
		c.display.SetFormatError(fmt.Sprintf(msgFormatFailed, style))
		return err
	}
	c.style = style
	c.rendered = text
	c.display.SetFormatError("")
	c.display.SetPreview(text)
	return nil
}

// Copy writes the current rendering to the clipboard. On success the copy
// indicator is shown and hidden again after CopyFeedbackDuration. It is a
// no-op when there is nothing rendered.
func (c *Controller) Copy(ctx context.Context) error {
	c.mu.Lock()
	text := c.rendered
	c.mu.Unlock()
	if text == "" {
		return nil
	}

	err := c.clipboard.WriteText(ctx, text)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		if !errors.Is(err, clipboard.ErrClipboardWriteFailed) {
			err = fmt.Errorf("%w: %v", clipboard.ErrClipboardWriteFailed, err)
		}
		c.logger.Error("copy citation", "err", err)
		c.display.PromptManualCopy(MsgManualCopy)
		return err
	}
	c.display.SetCopyFeedback(true)
	c.stopFeedback()
	n := c.feedbackN
	c.feedback = c.clock.AfterFunc(CopyFeedbackDuration, func() { c.hideFeedback(n) })
	return nil
}

// Close cancels a pending copy-feedback hide.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopFeedback()
}

// stopFeedback cancels the pending hide. A hide that already fired and waits
// for the lock is invalidated through feedbackN.
func (c *Controller) stopFeedback() {
	c.feedbackN++
	if c.feedback != nil {
		c.feedback.Stop()
		c.feedback = nil
	}
}

// hideFeedback hides the indicator unless the timeout n was cancelled or
// restarted since.
func (c *Controller) hideFeedback(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n != c.feedbackN {
		return
	}
	c.feedback = nil
	c.display.SetCopyFeedback(false)
}

func (c *Controller) format(style citation.Style) (string, error) {
	text, err := c.service.Format(c.record, style)
	if err != nil {
		if !errors.Is(err, citation.ErrFormatFailed) {
			err = fmt.Errorf("%w: %v", citation.ErrFormatFailed, err)
		}
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func (c *Controller) hide() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Hidden
	c.logger.Info("no report identifier, hiding citation section")
	c.display.SetSectionVisible(false)
}

func (c *Controller) fail(stage, identifier string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Error
	c.err = err
	c.record = nil
	c.rendered = ""
	c.logger.Error("citation panel failed", "stage", stage, "identifier", identifier, "err", err)
	c.display.SetPreviewError(message(identifier, c.style, err))
}

func message(identifier string, style citation.Style, err error) string {
	switch {
	case errors.Is(err, metadata.ErrMetadataUnavailable):
		return MsgMetadataUnavailable
	case errors.Is(err, citation.ErrEngineUnavailable):
		return MsgEngineUnavailable
	case errors.Is(err, citation.ErrFormatFailed):
		return fmt.Sprintf(msgFormatFailed, style)
	default:
		return fmt.Sprintf(msgResolutionFailed, identifier)
	}
}
