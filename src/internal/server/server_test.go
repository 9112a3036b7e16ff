package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"certview/src/internal/citation"
)

type fakeRecord string

func (r fakeRecord) Identifier() string { return string(r) }

type fakeService struct{}

func (fakeService) Available() bool { return true }

func (fakeService) Resolve(_ context.Context, id string) (citation.Record, error) {
	if id == "10.1/missing" {
		return nil, citation.ErrResolutionFailed
	}
	return fakeRecord(id), nil
}

func (fakeService) Format(r citation.Record, style citation.Style) (string, error) {
	if style == citation.BibTeX {
		return "", citation.ErrFormatFailed
	}
	return string(style) + " " + r.Identifier(), nil
}

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newTestServer(t *testing.T, report string, pages []string) (*Server, string) {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "index.json", `{"codecheck":{"report":"`+report+`"}}`)
	writeFile(t, dir, "index.html", `<html><body><div class="card"><div id="abstract-section"><p id="abstract-content"></p></div></div></body></html>`)
	for _, p := range pages {
		writeFile(t, dir, p, "img")
	}
	return New(Config{Dir: dir, Pages: pages, Service: fakeService{}}), dir
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", rr.Body.String(), err)
	}
}

func TestCitation_Ready(t *testing.T) {
	s, _ := newTestServer(t, "10.1/x", []string{"a.png"})
	rr := get(t, s, "/api/citation")
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d", rr.Code)
	}
	var resp citationResponse
	decode(t, rr, &resp)
	if resp.State != "ready" || resp.Style != "apa" || resp.Text != "apa 10.1/x" || resp.Identifier != "10.1/x" {
		t.Fatalf("resp=%+v", resp)
	}
}

func TestCitation_StyleSelection(t *testing.T) {
	s, _ := newTestServer(t, "10.1/x", []string{"a.png"})
	cases := []struct {
		query, style, text, formatErr string
	}{
		{"ris", "ris", "ris 10.1/x", ""},
		{"chicago", "apa", "apa 10.1/x", ""},
		{"bibtex", "apa", "apa 10.1/x", "Error formatting citation in bibtex format."},
	}
	for _, tc := range cases {
		var resp citationResponse
		decode(t, get(t, s, "/api/citation?style="+tc.query), &resp)
		if resp.Style != tc.style || resp.Text != tc.text || resp.FormatError != tc.formatErr {
			t.Fatalf("%s: resp=%+v", tc.query, resp)
		}
	}
}

func TestCitation_HiddenAndError(t *testing.T) {
	s, _ := newTestServer(t, "", []string{"a.png"})
	var resp citationResponse
	decode(t, get(t, s, "/api/citation"), &resp)
	if resp.State != "hidden" || resp.Text != "" {
		t.Fatalf("resp=%+v", resp)
	}

	s, _ = newTestServer(t, "10.1/missing", []string{"a.png"})
	decode(t, get(t, s, "/api/citation"), &resp)
	if resp.State != "error" || !strings.Contains(resp.Error, "10.1/missing") {
		t.Fatalf("resp=%+v", resp)
	}
}

func TestCitation_MetadataMissing(t *testing.T) {
	s := New(Config{Dir: t.TempDir(), Pages: []string{"a.png"}, Service: fakeService{}})
	var resp citationResponse
	decode(t, get(t, s, "/api/citation"), &resp)
	if resp.State != "error" || resp.Error != "Error loading certificate metadata." {
		t.Fatalf("resp=%+v", resp)
	}
}

func TestPages(t *testing.T) {
	s, _ := newTestServer(t, "10.1/x", []string{"p1.png", "p2.png", "p3.png"})
	var resp pagesResponse
	decode(t, get(t, s, "/api/pages"), &resp)
	if !resp.Viewer || len(resp.Pages) != 3 || resp.GraceMS != 1000 || resp.IntervalMS != 5000 {
		t.Fatalf("resp=%+v", resp)
	}
	if resp.Pages[0].Src != "p1.png" || resp.Pages[0].Prev != "View previous page 3/3 of the certificate" {
		t.Fatalf("first=%+v", resp.Pages[0])
	}
	if resp.Pages[2].Next != "View next page 1/3 of the certificate" {
		t.Fatalf("last=%+v", resp.Pages[2])
	}
}

func TestPages_Single(t *testing.T) {
	s, _ := newTestServer(t, "10.1/x", []string{"only.png"})
	var resp pagesResponse
	decode(t, get(t, s, "/api/pages"), &resp)
	if resp.Viewer || len(resp.Pages) != 1 || resp.Pages[0].Prev != "" {
		t.Fatalf("resp=%+v", resp)
	}
}

func TestIndexIsTidied(t *testing.T) {
	s, _ := newTestServer(t, "10.1/x", []string{"a.png"})
	rr := get(t, s, "/")
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `id="abstract-section" style="display: none"`) {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}
}

func TestIndexMissing(t *testing.T) {
	s := New(Config{Dir: t.TempDir(), Pages: []string{"a.png"}, Service: fakeService{}})
	if rr := get(t, s, "/"); rr.Code != http.StatusNotFound {
		t.Fatalf("status=%d", rr.Code)
	}
}

func TestStaticFiles(t *testing.T) {
	s, _ := newTestServer(t, "10.1/x", []string{"a.png"})
	rr := get(t, s, "/a.png")
	if rr.Code != http.StatusOK || rr.Body.String() != "img" {
		t.Fatalf("status=%d body=%q", rr.Code, rr.Body.String())
	}
	if rr := get(t, s, "/health"); rr.Code != http.StatusOK {
		t.Fatalf("health status=%d", rr.Code)
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	s, _ := newTestServer(t, "10.1/x", []string{"a.png"})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, "127.0.0.1:0") }()
	cancel()
	select {
	case err := <-done:
		if err != nil && !errors.Is(err, context.Canceled) {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Run did not return")
	}
}
