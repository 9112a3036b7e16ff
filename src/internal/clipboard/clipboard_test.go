package clipboard

import (
	"context"
	"errors"
	"testing"

	sysclip "github.com/atotto/clipboard"
)

func TestMemory(t *testing.T) {
	var m Memory
	if err := m.WriteText(context.Background(), "hello"); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	if m.Text() != "hello" || m.Writes() != 1 {
		t.Fatalf("memory: %q %d", m.Text(), m.Writes())
	}
}

func TestWriterFunc(t *testing.T) {
	var got string
	w := WriterFunc(func(_ context.Context, s string) error { got = s; return nil })
	_ = w.WriteText(context.Background(), "x")
	if got != "x" {
		t.Fatalf("WriterFunc not called")
	}
}

func TestSystem_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := (System{}).WriteText(ctx, "x"); !errors.Is(err, ErrClipboardWriteFailed) {
		t.Fatalf("want ErrClipboardWriteFailed, got %v", err)
	}
}

func TestSystem_Unsupported(t *testing.T) {
	if !sysclip.Unsupported {
		t.Skip("a clipboard utility is installed")
	}
	if err := (System{}).WriteText(context.Background(), "x"); !errors.Is(err, ErrClipboardWriteFailed) {
		t.Fatalf("want ErrClipboardWriteFailed, got %v", err)
	}
}
