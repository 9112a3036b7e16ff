// Package csl models the CSL-JSON items served by DOI content negotiation and
// renders them into the supported bibliography styles.
package csl

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"certview/src/internal/sanitize"
)

// ErrMalformed is returned by Decode for payloads that are not a usable CSL item.
var ErrMalformed = errors.New("csl: malformed item")

// Item is the style-independent subset of a CSL item that the formatters use.
type Item struct {
	Type           string `json:"type"`
	Title          string `json:"title"`
	Authors        []Name `json:"author,omitempty"`
	ContainerTitle string `json:"container-title,omitempty"`
	Publisher      string `json:"publisher,omitempty"`
	PublisherPlace string `json:"publisher-place,omitempty"`
	Issued         Date   `json:"issued"`
	Volume         string `json:"volume,omitempty"`
	Issue          string `json:"issue,omitempty"`
	Page           string `json:"page,omitempty"`
	DOI            string `json:"DOI,omitempty"`
	URL            string `json:"URL,omitempty"`
}

// Name is a CSL name. Literal holds institutional names.
type Name struct {
	Family  string `json:"family,omitempty"`
	Given   string `json:"given,omitempty"`
	Literal string `json:"literal,omitempty"`
}

// Date holds the first CSL date-parts entry; zero fields are unknown.
type Date struct {
	Year  int `json:"year,omitempty"`
	Month int `json:"month,omitempty"`
	Day   int `json:"day,omitempty"`
}

// raw is a partial model of the citationstyles JSON. Several fields arrive as
// a string, a number or an array depending on the registration agency.
type raw struct {
	Type           string    `json:"type"`
	Title          any       `json:"title"`
	Author         []rawName `json:"author"`
	ContainerTitle any       `json:"container-title"`
	Publisher      any       `json:"publisher"`
	PublisherPlace any       `json:"publisher-place"`
	Issued         rawDate   `json:"issued"`
	Volume         any       `json:"volume"`
	Issue          any       `json:"issue"`
	Page           any       `json:"page"`
	DOI            string    `json:"DOI"`
	URL            string    `json:"URL"`
}

type rawName struct {
	Given   string `json:"given"`
	Family  string `json:"family"`
	Literal string `json:"literal"`
	Name    string `json:"name"`
}

type rawDate struct {
	DateParts [][]any `json:"date-parts"`
	Raw       string  `json:"raw"`
}

// Decode parses a CSL-JSON document. Some resolvers return a one-element
// array instead of a single object; both are accepted.
func Decode(data []byte) (Item, error) {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var list []raw
		if err := json.Unmarshal([]byte(trimmed), &list); err != nil {
			return Item{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		if len(list) == 0 {
			return Item{}, fmt.Errorf("%w: empty list", ErrMalformed)
		}
		return fromRaw(list[0])
	}
	var r raw
	if err := json.Unmarshal([]byte(trimmed), &r); err != nil {
		return Item{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return fromRaw(r)
}

func fromRaw(r raw) (Item, error) {
	it := Item{
		Type:           sanitize.CleanLine(strings.ToLower(r.Type), 64),
		Title:          sanitize.CleanLine(toString(r.Title), 1024),
		ContainerTitle: sanitize.CleanLine(toString(r.ContainerTitle), 512),
		Publisher:      sanitize.CleanLine(toString(r.Publisher), 512),
		PublisherPlace: sanitize.CleanLine(toString(r.PublisherPlace), 256),
		Issued:         toDate(r.Issued),
		Volume:         sanitize.CleanLine(toString(r.Volume), 64),
		Issue:          sanitize.CleanLine(toString(r.Issue), 64),
		Page:           sanitize.CleanLine(toString(r.Page), 64),
		DOI:            sanitize.CleanLine(r.DOI, 256),
		URL:            sanitize.CleanURL(r.URL),
	}
	for _, a := range r.Author {
		n := Name{
			Family:  sanitize.CleanLine(a.Family, 256),
			Given:   sanitize.CleanLine(a.Given, 256),
			Literal: sanitize.CleanLine(a.Literal, 512),
		}
		if n.Literal == "" && n.Family == "" {
			// DataCite sometimes sends organisations as a bare name
			n.Literal = sanitize.CleanLine(a.Name, 512)
		}
		if n.Family == "" && n.Literal == "" {
			continue
		}
		it.Authors = append(it.Authors, n)
	}
	if it.Title == "" {
		return Item{}, fmt.Errorf("%w: missing title", ErrMalformed)
	}
	return it, nil
}

// toString coerces a string, number or first element of an array to a string.
func toString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case []any:
		if len(t) > 0 {
			return toString(t[0])
		}
	}
	return ""
}

func toInt(v any) int {
	switch t := v.(type) {
	case float64:
		return int(t)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err == nil {
			return n
		}
	}
	return 0
}

// toDate extracts year, month and day from CSL issued, falling back to a
// leading four-digit year in the raw form.
func toDate(d rawDate) Date {
	if len(d.DateParts) > 0 && len(d.DateParts[0]) > 0 {
		dp := d.DateParts[0]
		out := Date{Year: toInt(dp[0])}
		if len(dp) >= 2 {
			out.Month = toInt(dp[1])
		}
		if len(dp) >= 3 {
			out.Day = toInt(dp[2])
		}
		if out.Month < 1 || out.Month > 12 {
			out.Month, out.Day = 0, 0
		}
		if out.Day < 1 || out.Day > 31 {
			out.Day = 0
		}
		return out
	}
	if r := strings.TrimSpace(d.Raw); len(r) >= 4 {
		if y, err := strconv.Atoi(r[:4]); err == nil {
			return Date{Year: y}
		}
	}
	return Date{}
}

// ISO renders the date as YYYY, YYYY-MM or YYYY-MM-DD, or "" when unknown.
func (d Date) ISO() string {
	switch {
	case d.Year <= 0:
		return ""
	case d.Month == 0:
		return fmt.Sprintf("%04d", d.Year)
	case d.Day == 0:
		return fmt.Sprintf("%04d-%02d", d.Year, d.Month)
	default:
		return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
	}
}

// YearString returns the year or "" when unknown.
func (d Date) YearString() string {
	if d.Year <= 0 {
		return ""
	}
	return strconv.Itoa(d.Year)
}

// kind groups CSL types by how the styles lay them out.
type kind int

const (
	kindOther kind = iota
	kindJournal
	kindBook
	kindChapter
	kindConference
	kindReport
	kindDataset
	kindSoftware
	kindThesis
)

func (it Item) kind() kind {
	switch it.Type {
	case "article-journal", "article", "article-magazine", "article-newspaper", "journal-article":
		return kindJournal
	case "book", "monograph":
		return kindBook
	case "chapter", "entry-encyclopedia", "entry-dictionary", "book-chapter":
		return kindChapter
	case "paper-conference", "proceedings-article":
		return kindConference
	case "report":
		return kindReport
	case "dataset":
		return kindDataset
	case "software":
		return kindSoftware
	case "thesis":
		return kindThesis
	}
	return kindOther
}

// link returns the preferred locator: a doi.org link when a DOI is known.
func (it Item) link() string {
	if it.DOI != "" {
		return "https://doi.org/" + it.DOI
	}
	return it.URL
}

// pageRange splits "10-20" or "10–20" into its ends.
func pageRange(p string) (start, end string) {
	p = strings.TrimSpace(p)
	for _, sep := range []string{"–", "—", "-"} {
		if i := strings.Index(p, sep); i >= 0 {
			return strings.TrimSpace(p[:i]), strings.TrimSpace(p[i+len(sep):])
		}
	}
	return p, ""
}
