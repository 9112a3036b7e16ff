package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNew_LevelFollowsVerbose(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, false)
	l.Info("hidden")
	l.Warn("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("quiet logger output: %q", buf.String())
	}
	buf.Reset()
	New(&buf, true).Debug("debugging")
	if !strings.Contains(buf.String(), "debugging") {
		t.Fatalf("verbose logger dropped debug: %q", buf.String())
	}
}

func TestHandler_CleansStrings(t *testing.T) {
	var buf bytes.Buffer
	l := NewJSON(&buf, true)
	l.Info("load\x1b[2J", "identifier", "10.1/x\x1b[31m\nred", slog.Group("req", slog.String("title", "a\x07b")), "n", 3)

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	if rec["msg"] != "load[2J" {
		t.Fatalf("msg=%q", rec["msg"])
	}
	if rec["identifier"] != "10.1/x[31m red" {
		t.Fatalf("identifier=%q", rec["identifier"])
	}
	if g, _ := rec["req"].(map[string]any); g == nil || g["title"] != "ab" {
		t.Fatalf("group=%v", rec["req"])
	}
	if rec["n"] != float64(3) {
		t.Fatalf("n=%v", rec["n"])
	}
}

func TestHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, true).With("page", "p\x00age").WithGroup("g")
	l.Warn("x", "k", "v")
	out := buf.String()
	if !strings.Contains(out, "page=page") || !strings.Contains(out, "g.k=v") {
		t.Fatalf("output=%q", out)
	}
}

func TestDiscard(t *testing.T) {
	Discard().Error("nothing")
}
