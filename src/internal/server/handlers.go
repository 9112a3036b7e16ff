package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"certview/src/internal/panel"
	"certview/src/internal/viewer"
	"certview/src/internal/visibility"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	f, err := os.Open(filepath.Join(s.cfg.Dir, "index.html"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			http.NotFound(w, r)
			return
		}
		s.cfg.Logger.Error("open index", "err", err)
		writeError(w, http.StatusInternalServerError, "could not read index.html")
		return
	}
	defer f.Close()

	var buf bytes.Buffer
	hidden, err := visibility.TidyHTML(f, &buf)
	if err != nil {
		s.cfg.Logger.Error("tidy index", "err", err)
		writeError(w, http.StatusInternalServerError, "could not render index.html")
		return
	}
	if len(hidden) > 0 {
		s.cfg.Logger.Debug("collapsed empty sections", "sections", hidden)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

type citationResponse struct {
	State       string `json:"state"`
	Identifier  string `json:"identifier,omitempty"`
	Style       string `json:"style,omitempty"`
	Text        string `json:"text,omitempty"`
	Error       string `json:"error,omitempty"`
	FormatError string `json:"format_error,omitempty"`
}

// handleCitation runs one page load of the citation panel per request.
func (s *Server) handleCitation(w http.ResponseWriter, r *http.Request) {
	rec := &panel.Recorder{}
	p := panel.New(s.cfg.Source, s.cfg.Service,
		panel.WithDisplay(rec),
		panel.WithLogger(s.cfg.Logger))
	defer p.Close()

	_ = p.Load(r.Context())
	if style := r.URL.Query().Get("style"); style != "" {
		_ = p.SelectStyle(style)
	}

	resp := citationResponse{
		State:       p.State().String(),
		Identifier:  p.Identifier(),
		Text:        p.Rendered(),
		Error:       rec.PreviewError,
		FormatError: rec.FormatError,
	}
	if p.State() == panel.Ready {
		resp.Style = p.Style().String()
	}
	writeJSON(w, http.StatusOK, resp)
}

type pageEntry struct {
	Src  string `json:"src"`
	Prev string `json:"prev,omitempty"`
	Next string `json:"next,omitempty"`
}

type pagesResponse struct {
	Viewer     bool        `json:"viewer"`
	GraceMS    int64       `json:"grace_ms,omitempty"`
	IntervalMS int64       `json:"interval_ms,omitempty"`
	Pages      []pageEntry `json:"pages"`
}

type labelDisplay struct{ entries []pageEntry }

func (d *labelDisplay) ShowPage(src string, _ int) {
	d.entries = append(d.entries, pageEntry{Src: src})
}

func (d *labelDisplay) SetLabels(prev, next string) {
	last := &d.entries[len(d.entries)-1]
	last.Prev, last.Next = prev, next
}

// handlePages walks a throwaway viewer once around the page set to collect
// the navigation labels of every position.
func (s *Server) handlePages(w http.ResponseWriter, r *http.Request) {
	disp := &labelDisplay{}
	v, err := viewer.New(s.cfg.Pages, viewer.WithDisplay(disp), viewer.WithLogger(s.cfg.Logger))
	switch {
	case errors.Is(err, viewer.ErrSinglePage):
		writeJSON(w, http.StatusOK, pagesResponse{Pages: []pageEntry{{Src: s.cfg.Pages[0]}}})
		return
	case err != nil:
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	defer v.Stop()
	for i := 1; i < v.Len(); i++ {
		v.Navigate(viewer.Next)
	}
	writeJSON(w, http.StatusOK, pagesResponse{
		Viewer:     true,
		GraceMS:    viewer.GraceDelay.Milliseconds(),
		IntervalMS: viewer.TickInterval.Milliseconds(),
		Pages:      disp.entries,
	})
}
