package servecmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestServe_StopsWithContext(t *testing.T) {
	t.Setenv("CERTVIEW_NO_CACHE", "true")
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "page.png"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cmd := New()
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{dir, "--addr", "127.0.0.1:0"})
	if err := cmd.ExecuteContext(ctx); err != nil {
		t.Fatalf("serve: %v", err)
	}
}

func TestServe_NoPages(t *testing.T) {
	t.Setenv("CERTVIEW_NO_CACHE", "true")
	cmd := New()
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{t.TempDir()})
	if err := cmd.ExecuteContext(context.Background()); err == nil {
		t.Fatalf("expected error for a directory without pages")
	}
}
