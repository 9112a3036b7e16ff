// Package clipboard is the write-text boundary used by the citation panel's
// copy action.
package clipboard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	sysclip "github.com/atotto/clipboard"
)

// ErrClipboardWriteFailed wraps every failed write.
var ErrClipboardWriteFailed = errors.New("clipboard write failed")

// Writer writes text to a clipboard.
type Writer interface {
	WriteText(ctx context.Context, text string) error
}

// WriterFunc adapts a function to Writer.
type WriterFunc func(ctx context.Context, text string) error

// WriteText calls f.
func (f WriterFunc) WriteText(ctx context.Context, text string) error { return f(ctx, text) }

// System writes to the platform clipboard (pbcopy, xclip/xsel/wl-copy, or the
// Windows API).
type System struct{}

// WriteText copies text to the system clipboard.
func (System) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrClipboardWriteFailed, err)
	}
	if sysclip.Unsupported {
		return fmt.Errorf("%w: no clipboard utility available", ErrClipboardWriteFailed)
	}
	if err := sysclip.WriteAll(text); err != nil {
		return fmt.Errorf("%w: %v", ErrClipboardWriteFailed, err)
	}
	return nil
}

// Memory is an in-process clipboard. The zero value is ready to use.
type Memory struct {
	mu   sync.Mutex
	text string
	n    int
}

// WriteText stores text.
func (m *Memory) WriteText(_ context.Context, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	m.n++
	return nil
}

// Text returns the last written text.
func (m *Memory) Text() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text
}

// Writes returns the number of successful writes.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.n
}
