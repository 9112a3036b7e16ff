package pages

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestCompare(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"page-2.png", "page-10.png", -1},
		{"page-10.png", "page-2.png", 1},
		{"Page-1.png", "page-1.png", -1},
		{"page-9.png", "PAGE-10.png", -1},
		{"a", "ab", -1},
		{"page-02.png", "page-2.png", -1},
		{"page-2.png", "page-2.png", 0},
		{"cert_1_b.png", "cert_1_a.png", 1},
	}
	for _, tc := range cases {
		got := Compare(tc.a, tc.b)
		if (got < 0) != (tc.want < 0) || (got > 0) != (tc.want > 0) {
			t.Fatalf("Compare(%q,%q)=%d want sign %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"page-10.png", "page-2.PNG", "page-1.jpg", "index.html", ".hidden.png", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.png"), 0o755); err != nil {
		t.Fatal(err)
	}
	got, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	want := []string{"page-1.jpg", "page-2.PNG", "page-10.png"}
	if !slices.Equal(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestDiscover_Empty(t *testing.T) {
	if _, err := Discover(t.TempDir()); !errors.Is(err, ErrNoImages) {
		t.Fatalf("want ErrNoImages, got %v", err)
	}
	if _, err := Discover(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatalf("expected error for missing dir")
	}
}

func TestResolve_Explicit(t *testing.T) {
	got, err := Resolve("/nowhere", []string{" b.png ", "", "a.png"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !slices.Equal(got, []string{"b.png", "a.png"}) {
		t.Fatalf("got %v", got)
	}
	if _, err := Resolve("/nowhere", []string{" "}); !errors.Is(err, ErrNoImages) {
		t.Fatalf("want ErrNoImages, got %v", err)
	}
}
