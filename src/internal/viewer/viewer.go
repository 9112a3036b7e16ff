package viewer

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"certview/src/internal/clock"
)

const (
	// GraceDelay is the pause between page load and the first auto-advance tick schedule.
	GraceDelay = 1 * time.Second
	// TickInterval is the auto-advance period.
	TickInterval = 5 * time.Second
)

var (
	// ErrNoPages is returned by New for an empty page set.
	ErrNoPages = errors.New("viewer: no pages")
	// ErrSinglePage is returned by New when there is nothing to page through.
	// It is not a failure: callers show the single image and skip the viewer.
	ErrSinglePage = errors.New("viewer: single page, viewer not needed")
)

// Direction is a navigation step.
type Direction int

const (
	Previous Direction = -1
	Next     Direction = 1
)

// Display receives viewer updates. Implementations must not call back into
// the Controller.
type Display interface {
	ShowPage(src string, index int)
	SetLabels(prev, next string)
}

type nopDisplay struct{}

func (nopDisplay) ShowPage(string, int)     {}
func (nopDisplay) SetLabels(string, string) {}

// Controller owns the viewer state for one page.
type Controller struct {
	mu      sync.Mutex
	pages   []string
	index   int
	auto    bool
	loaded  bool
	stopped bool
	timer   clock.Timer

	clock   clock.Clock
	display Display
	logger  *slog.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock sets the clock used for the grace delay and ticks.
func WithClock(c clock.Clock) Option { return func(v *Controller) { v.clock = c } }

// WithDisplay sets the display that mirrors the current page and labels.
func WithDisplay(d Display) Option { return func(v *Controller) { v.display = d } }

// WithLogger sets a structured logger.
func WithLogger(l *slog.Logger) Option { return func(v *Controller) { v.logger = l } }

// New returns a controller positioned on the first page with auto-advance
// enabled, and pushes the initial page and labels to the display.
func New(pages []string, opts ...Option) (*Controller, error) {
	switch len(pages) {
	case 0:
		return nil, ErrNoPages
	case 1:
		return nil, ErrSinglePage
	}
	c := &Controller{
		pages: append([]string(nil), pages...),
		auto:  true,
	}
	for _, opt := range opts {
		opt(c)
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
	c.mu.Lock()
	c.render()
	c.mu.Unlock()
	return c, nil
}

// Len returns the number of pages.
func (c *Controller) Len() int { return len(c.pages) }

// Index returns the zero-based current page.
func (c *Controller) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}

// Page returns the current image reference.
func (c *Controller) Page() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pages[c.index]
}

// AutoAdvance reports whether auto-advance is still enabled.
func (c *Controller) AutoAdvance() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.auto
}

// Labels returns the previous/next button titles for the current position.
func (c *Controller) Labels() (prev, next string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.labels()
}

// Navigate moves one page in dir as a user gesture, which permanently
// disables auto-advance. Any non-zero value is treated by its sign.
func (c *Controller) Navigate(dir Direction) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disableAuto("navigate")
	c.step(dir)
}

// ClickImage records a direct click on the displayed image.
func (c *Controller) ClickImage() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disableAuto("image click")
}

// PageLoaded starts the grace delay before auto-advance. Only the first call
// has an effect.
func (c *Controller) PageLoaded() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loaded || c.stopped {
		return
	}
	c.loaded = true
	if !c.auto {
		return
	}
	c.logger.Debug("page loaded, auto-advance in grace period", "delay", GraceDelay)
	c.timer = c.clock.AfterFunc(GraceDelay, c.startTicking)
}

// Stop cancels pending timers, e.g. when the hosting shell exits. It does
// not change the auto-advance latch.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopped = true
	c.cancelTimer()
}

func (c *Controller) startTicking() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timer = nil
	if !c.auto || c.stopped {
		return
	}
	c.logger.Debug("starting auto-advance", "interval", TickInterval)
	c.timer = c.clock.AfterFunc(TickInterval, c.onTimer)
}

func (c *Controller) onTimer() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timer = nil
	if c.stopped || !c.tick() {
		return
	}
	c.timer = c.clock.AfterFunc(TickInterval, c.onTimer)
}

func (c *Controller) tick() bool {
	if !c.auto {
		c.cancelTimer()
		return false
	}
	c.step(Next)
	c.logger.Debug("auto-advance", "page", c.index+1, "total", len(c.pages))
	return true
}

func (c *Controller) disableAuto(reason string) {
	if c.auto {
		c.logger.Debug("auto-advance stopped", "reason", reason)
	}
	c.auto = false
	c.cancelTimer()
}

func (c *Controller) cancelTimer() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Controller) step(dir Direction) {
	n := len(c.pages)
	switch {
	case dir > 0:
		c.index = (c.index + 1) % n
	case dir < 0:
		c.index = (c.index - 1 + n) % n
	default:
		return
	}
	c.render()
}

func (c *Controller) render() {
	c.display.ShowPage(c.pages[c.index], c.index)
	c.display.SetLabels(c.labels())
}

func (c *Controller) labels() (prev, next string) {
	n := len(c.pages)
	prevPage := (c.index-1+n)%n + 1
	nextPage := (c.index+1)%n + 1
	prev = fmt.Sprintf("View previous page %d/%d of the certificate", prevPage, n)
	next = fmt.Sprintf("View next page %d/%d of the certificate", nextPage, n)
	return prev, next
}
