package httpx

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
)

func TestSetUA(t *testing.T) {
	req, _ := http.NewRequest(http.MethodGet, "https://example.com", nil)
	if hv := req.Header.Get("User-Agent"); hv != "" {
		t.Fatalf("precondition: UA not empty: %q", hv)
	}
	SetUA(req)
	if hv := req.Header.Get("User-Agent"); hv != UserAgent {
		t.Fatalf("SetUA: want %q, got %q", UserAgent, hv)
	}
	// idempotent
	SetUA(req)
	if hv := req.Header.Get("User-Agent"); hv != UserAgent {
		t.Fatalf("SetUA idempotent: want %q, got %q", UserAgent, hv)
	}
	SetUA(nil)
}

func TestCheckStatus(t *testing.T) {
	ok := &http.Response{StatusCode: 204, Body: io.NopCloser(strings.NewReader(""))}
	if err := CheckStatus(ok); err != nil {
		t.Fatalf("2xx: %v", err)
	}
	bad := &http.Response{StatusCode: 404, Body: io.NopCloser(strings.NewReader(" not found \n"))}
	err := CheckStatus(bad)
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("want *StatusError, got %T", err)
	}
	if se.Code != 404 || se.Body != "not found" {
		t.Fatalf("status error: %+v", se)
	}
	if got := se.Error(); got != "http 404: not found" {
		t.Fatalf("message: %q", got)
	}
	if got := (&StatusError{Code: 500}).Error(); got != "http 500" {
		t.Fatalf("empty body message: %q", got)
	}
}
