// Package pages builds the ordered page-image set of a certificate directory.
package pages

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/maruel/natural"
)

// ErrNoImages is returned when a directory holds no page images.
var ErrNoImages = errors.New("pages: no page images found")

var imageExt = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true, ".svg": true,
}

// IsImage reports whether name has a supported image extension.
func IsImage(name string) bool {
	return imageExt[strings.ToLower(filepath.Ext(name))]
}

// Discover lists the page images directly inside dir in natural order, so
// "page-2.png" sorts before "page-10.png". The returned names are relative
// to dir.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") || !IsImage(e.Name()) {
			continue
		}
		out = append(out, e.Name())
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoImages, dir)
	}
	slices.SortFunc(out, Compare)
	return out, nil
}

// Resolve returns the trimmed explicit list when it is non-empty, else
// Discover(dir).
func Resolve(dir string, explicit []string) ([]string, error) {
	if len(explicit) == 0 {
		return Discover(dir)
	}
	out := make([]string, 0, len(explicit))
	for _, p := range explicit {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return nil, ErrNoImages
	}
	return out, nil
}

// Compare orders strings with embedded numbers by numeric value,
// case-insensitively. Names that only differ by case or leading zeros fall
// back to byte order so sorting stays deterministic.
func Compare(a, b string) int {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	switch {
	case natural.Less(la, lb):
		return -1
	case natural.Less(lb, la):
		return 1
	}
	return strings.Compare(a, b)
}
