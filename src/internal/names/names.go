package names

import (
	"strings"
)

// Initials converts a given name string into spaced initials: "Jane Q" -> "J. Q.".
// Hyphenated names keep the hyphen: "Jean-Paul" -> "J.-P.".
func Initials(given string) string {
	return strings.Join(initials(given, "."), " ")
}

// Compact returns initials without punctuation or spaces: "Jane Q" -> "JQ".
func Compact(given string) string {
	return strings.ReplaceAll(strings.Join(initials(given, ""), ""), "-", "")
}

// Dotted returns unspaced initials with periods: "Jane Q" -> "J.Q.".
func Dotted(given string) string {
	return strings.Join(initials(given, "."), "")
}

func initials(given, mark string) []string {
	given = strings.TrimSpace(given)
	if given == "" {
		return nil
	}
	var out []string
	for _, w := range strings.Fields(given) {
		var parts []string
		for _, p := range strings.Split(w, "-") {
			r := []rune(strings.Trim(p, "."))
			if len(r) == 0 {
				continue
			}
			parts = append(parts, strings.ToUpper(string(r[0]))+mark)
		}
		if len(parts) > 0 {
			out = append(out, strings.Join(parts, "-"))
		}
	}
	return out
}
