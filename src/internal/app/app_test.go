package app

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"certview/src/internal/cache"
	"certview/src/internal/config"
)

func newCmd(args ...string) *cobra.Command {
	cmd := &cobra.Command{Use: "x", RunE: func(*cobra.Command, []string) error { return nil }}
	cmd.Flags().String(FlagConfig, "", "")
	cmd.Flags().Bool(FlagVerbose, false, "")
	cmd.SetErr(&bytes.Buffer{})
	_ = cmd.ParseFlags(args)
	return cmd
}

func TestLoad_WithCache(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CERTVIEW_CACHE_DIR", dir)
	t.Setenv("CERTVIEW_NO_CACHE", "")
	env, err := Load(newCmd("--verbose"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer env.Close()
	if env.Cache == nil || env.Cache.Path() != filepath.Join(dir, cache.FileName) {
		t.Fatalf("cache=%v", env.Cache)
	}
	if !env.Service.Available() || !env.Config.Verbose {
		t.Fatalf("env=%+v", env)
	}
	if loc := env.Metadata(dir).Location(); loc != filepath.Join(dir, "index.json") {
		t.Fatalf("metadata location=%q", loc)
	}
}

func TestLoad_NoCache(t *testing.T) {
	t.Setenv("CERTVIEW_NO_CACHE", "true")
	env, err := Load(newCmd())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if env.Cache != nil {
		t.Fatalf("cache opened with no_cache")
	}
	if err := env.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestLoad_ConfigFileAndValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.yaml")
	if err := os.WriteFile(path, []byte("style: chicago\nno_cache: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(newCmd("--config", path)); !errors.Is(err, config.ErrInvalidStyle) {
		t.Fatalf("want ErrInvalidStyle, got %v", err)
	}
	if _, err := Load(newCmd("--config", path+".missing")); !errors.Is(err, config.ErrConfigNotFound) {
		t.Fatalf("want ErrConfigNotFound, got %v", err)
	}
}

func TestLoad_UnopenableCacheIsSkipped(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CERTVIEW_NO_CACHE", "")
	t.Setenv("CERTVIEW_CACHE_DIR", file)
	env, err := Load(newCmd())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if env.Cache != nil {
		t.Fatalf("expected cache to be skipped")
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	cmd := newCmd("--verbose")
	cmd.SetErr(&buf)
	Logger(cmd).Debug("hello")
	if !bytes.Contains(buf.Bytes(), []byte("hello")) {
		t.Fatalf("verbose logger dropped debug: %q", buf.String())
	}
}
