package cachecmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	cmd := New()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("cache %v: %v", args, err)
	}
	return out.String()
}

func TestCache_PathAndPurge(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CERTVIEW_CACHE_DIR", dir)
	t.Setenv("CERTVIEW_NO_CACHE", "false")
	if got := run(t, "path"); got != filepath.Join(dir, "certview.db")+"\n" {
		t.Fatalf("path=%q", got)
	}
	if got := run(t, "purge"); got != "purged 0 expired records\n" {
		t.Fatalf("purge=%q", got)
	}
}

func TestCache_Disabled(t *testing.T) {
	t.Setenv("CERTVIEW_NO_CACHE", "true")
	if got := run(t, "purge"); !strings.Contains(got, "cache disabled") {
		t.Fatalf("purge=%q", got)
	}
}
