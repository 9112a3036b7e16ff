// Package stringsx holds small string helpers shared by the formatters.
package stringsx

import "strings"

// FirstNonEmpty returns the first trimmed value that is not blank.
func FirstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

// EnsureSuffix appends suffix unless s is empty or already ends with it.
func EnsureSuffix(s, suffix string) string {
	if s == "" || strings.HasSuffix(s, suffix) {
		return s
	}
	return s + suffix
}
