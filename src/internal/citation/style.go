package citation

import "strings"

// Style is a bibliography output format.
type Style string

const (
	APA       Style = "apa"
	Vancouver Style = "vancouver"
	Harvard1  Style = "harvard1"
	BibTeX    Style = "bibtex"
	BibLaTeX  Style = "biblatex"
	RIS       Style = "ris"
)

// DefaultStyle is selected when a record first becomes ready.
const DefaultStyle = APA

var styles = []Style{APA, Vancouver, Harvard1, BibTeX, BibLaTeX, RIS}

var labels = map[Style]string{
	APA:       "APA",
	Vancouver: "Vancouver",
	Harvard1:  "Harvard",
	BibTeX:    "BibTeX",
	BibLaTeX:  "BibLaTeX",
	RIS:       "RIS",
}

// Styles returns the supported styles in selector order.
func Styles() []Style {
	out := make([]Style, len(styles))
	copy(out, styles)
	return out
}

// Valid reports whether s is one of the supported styles.
func (s Style) Valid() bool {
	_, ok := labels[s]
	return ok
}

// Label is the human-readable name shown in selectors.
func (s Style) Label() string {
	if l, ok := labels[s]; ok {
		return l
	}
	return string(s)
}

func (s Style) String() string { return string(s) }

// Next returns the style after s in selector order, wrapping around.
func (s Style) Next() Style {
	for i, v := range styles {
		if v == s {
			return styles[(i+1)%len(styles)]
		}
	}
	return DefaultStyle
}

// ParseStyle maps a selector value to a Style. Unrecognised values fall back
// to APA and ok is false so callers can log the substitution.
func ParseStyle(name string) (s Style, ok bool) {
	s = Style(strings.ToLower(strings.TrimSpace(name)))
	if s.Valid() {
		return s, true
	}
	return DefaultStyle, false
}
