package csl

import (
	"fmt"
	"strings"

	"certview/src/internal/citation"
)

var formatters = map[citation.Style]func(Item) string{
	citation.APA:       APA,
	citation.Vancouver: Vancouver,
	citation.Harvard1:  Harvard,
	citation.BibTeX:    BibTeX,
	citation.BibLaTeX:  BibLaTeX,
	citation.RIS:       RIS,
}

// Format renders it in style. Output is trimmed and deterministic.
func Format(it Item, style citation.Style) (string, error) {
	f, ok := formatters[style]
	if !ok {
		return "", fmt.Errorf("%w: unsupported style %q", citation.ErrFormatFailed, style)
	}
	out := strings.TrimSpace(f(it))
	if out == "" {
		return "", fmt.Errorf("%w: empty %s output", citation.ErrFormatFailed, style)
	}
	return out, nil
}

// terminate appends a period unless s already ends a sentence.
func terminate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	switch s[len(s)-1] {
	case '.', '?', '!':
		return s
	}
	return s + "."
}

func volIssue(vol, iss string) string {
	vol = strings.TrimSpace(vol)
	iss = strings.TrimSpace(iss)
	if vol == "" {
		return ""
	}
	if iss == "" {
		return vol
	}
	return fmt.Sprintf("%s(%s)", vol, iss)
}

func compact(vals ...string) []string {
	var out []string
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			out = append(out, strings.TrimSpace(v))
		}
	}
	return out
}

// appendSeg adds a non-empty sentence to segs.
func appendSeg(segs []string, s string) []string {
	if s = terminate(s); s != "" {
		return append(segs, s)
	}
	return segs
}
