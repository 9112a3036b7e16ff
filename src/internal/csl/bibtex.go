package csl

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type bibField struct{ key, value string }

// BibTeX renders a classic BibTeX record.
func BibTeX(it Item) string {
	typ := "misc"
	var fields []bibField
	add := func(k, v string) { fields = appendBib(fields, k, v) }
	if a := bibAuthors(it.Authors); a != "" {
		fields = append(fields, bibField{key: "author", value: a})
	}
	add("title", it.Title)
	switch it.kind() {
	case kindJournal:
		typ = "article"
		add("journal", it.ContainerTitle)
		add("volume", it.Volume)
		add("number", it.Issue)
		add("pages", bibPages(it.Page))
	case kindBook:
		typ = "book"
		add("publisher", it.Publisher)
		add("address", it.PublisherPlace)
	case kindChapter:
		typ = "incollection"
		add("booktitle", it.ContainerTitle)
		add("pages", bibPages(it.Page))
		add("publisher", it.Publisher)
	case kindConference:
		typ = "inproceedings"
		add("booktitle", it.ContainerTitle)
		add("pages", bibPages(it.Page))
		add("publisher", it.Publisher)
	case kindReport:
		typ = "techreport"
		add("institution", it.Publisher)
		add("address", it.PublisherPlace)
	case kindThesis:
		typ = "phdthesis"
		add("school", it.Publisher)
	default:
		add("publisher", it.Publisher)
	}
	add("year", it.Issued.YearString())
	if it.Issued.Month > 0 {
		add("month", monthAbbrev[it.Issued.Month-1])
	}
	add("doi", it.DOI)
	add("url", it.URL)
	return renderBib(typ, bibKey(it), fields)
}

// BibLaTeX renders a BibLaTeX record using its richer entry types and ISO dates.
func BibLaTeX(it Item) string {
	typ := "misc"
	var fields []bibField
	add := func(k, v string) { fields = appendBib(fields, k, v) }
	if a := bibAuthors(it.Authors); a != "" {
		fields = append(fields, bibField{key: "author", value: a})
	}
	add("title", it.Title)
	switch it.kind() {
	case kindJournal:
		typ = "article"
		add("journaltitle", it.ContainerTitle)
		add("volume", it.Volume)
		add("number", it.Issue)
		add("pages", bibPages(it.Page))
	case kindBook:
		typ = "book"
		add("publisher", it.Publisher)
		add("location", it.PublisherPlace)
	case kindChapter:
		typ = "incollection"
		add("booktitle", it.ContainerTitle)
		add("pages", bibPages(it.Page))
		add("publisher", it.Publisher)
	case kindConference:
		typ = "inproceedings"
		add("booktitle", it.ContainerTitle)
		add("pages", bibPages(it.Page))
		add("publisher", it.Publisher)
	case kindReport:
		typ = "report"
		add("institution", it.Publisher)
		add("location", it.PublisherPlace)
	case kindThesis:
		typ = "thesis"
		add("institution", it.Publisher)
	case kindDataset:
		typ = "dataset"
		add("publisher", it.Publisher)
	case kindSoftware:
		typ = "software"
		add("publisher", it.Publisher)
	default:
		add("publisher", it.Publisher)
	}
	add("date", it.Issued.ISO())
	add("doi", it.DOI)
	add("url", it.URL)
	return renderBib(typ, bibKey(it), fields)
}

var monthAbbrev = [...]string{"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec"}

func appendBib(fields []bibField, k, v string) []bibField {
	v = escapeBib(v)
	if v == "" {
		return fields
	}
	return append(fields, bibField{key: k, value: v})
}

func renderBib(typ, key string, fields []bibField) string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "@%s{%s", typ, key)
	for _, f := range fields {
		fmt.Fprintf(&b, ",\n  %s = {%s}", f.key, f.value)
	}
	b.WriteString("\n}")
	return b.String()
}

func escapeBib(s string) string {
	// Minimal escaping; preserve LaTeX-friendly characters as-is
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "{", "\\{")
	s = strings.ReplaceAll(s, "}", "\\}")
	return strings.TrimSpace(s)
}

// bibAuthors joins names with "and"; institutional names are braced so
// BibTeX does not split them into given and family parts. The result is
// already escaped.
func bibAuthors(authors []Name) string {
	parts := make([]string, 0, len(authors))
	for _, a := range authors {
		switch {
		case a.Literal != "":
			parts = append(parts, "{"+escapeBib(a.Literal)+"}")
		case a.Given != "":
			parts = append(parts, escapeBib(a.Family)+", "+escapeBib(a.Given))
		case a.Family != "":
			parts = append(parts, escapeBib(a.Family))
		}
	}
	return strings.Join(parts, " and ")
}

func bibPages(p string) string {
	start, end := pageRange(p)
	if end == "" {
		return start
	}
	return start + "--" + end
}

// bibKey builds "Family_Year" from the first author, folded to ASCII letters
// and digits. Without authors the first title word stands in.
func bibKey(it Item) string {
	base := ""
	if len(it.Authors) > 0 {
		base = it.Authors[0].Family
		if base == "" {
			base = it.Authors[0].Literal
		}
	}
	if base == "" {
		if f := strings.Fields(it.Title); len(f) > 0 {
			base = f[0]
		}
	}
	base = asciiWord(base)
	if base == "" {
		base = "entry"
	}
	if y := it.Issued.YearString(); y != "" {
		return base + "_" + y
	}
	return base
}

// foldDiacritics returns a fresh transformer; a transform.Chain keeps state
// and must not be shared between goroutines.
func foldDiacritics() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

func asciiWord(s string) string {
	folded, _, err := transform.String(foldDiacritics(), s)
	if err != nil {
		folded = s
	}
	var b strings.Builder
	for _, r := range folded {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
