// Package visibility collapses empty summary and abstract sections of a
// certificate page and gives its cards a uniform minimum height.
package visibility

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// CardMinHeight is applied to every element with class "card" when a checked
// section has content.
const CardMinHeight = "320px"

// Pair names a section element and the content element inside it.
type Pair struct {
	Section string
	Content string
}

// DefaultPairs are the certificate page sections checked by Tidy.
var DefaultPairs = []Pair{
	{Section: "summary-section", Content: "summary-content"},
	{Section: "abstract-section", Content: "abstract-content"},
}

// AdjustVisibility hides section when content has no text. Otherwise every
// card in doc gets CardMinHeight. It reports whether section was hidden.
func AdjustVisibility(doc, content, section *html.Node) bool {
	if strings.TrimSpace(TextContent(content)) == "" {
		SetStyle(section, "display", "none")
		return true
	}
	walk(doc, func(n *html.Node) {
		if n.Type == html.ElementNode && hasClass(n, "card") {
			SetStyle(n, "min-height", CardMinHeight)
		}
	})
	return false
}

// Tidy applies AdjustVisibility to every DefaultPairs entry present in doc and
// returns the ids of the sections it hid. Missing elements are skipped.
func Tidy(doc *html.Node) []string {
	var hidden []string
	for _, p := range DefaultPairs {
		section := ElementByID(doc, p.Section)
		content := ElementByID(doc, p.Content)
		if section == nil || content == nil {
			continue
		}
		if AdjustVisibility(doc, content, section) {
			hidden = append(hidden, p.Section)
		}
	}
	return hidden
}

// TidyHTML parses a page from r, tidies it and renders it to w.
func TidyHTML(r io.Reader, w io.Writer) ([]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	hidden := Tidy(doc)
	if err := html.Render(w, doc); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	return hidden, nil
}

// ElementByID returns the first element with the given id, or nil.
func ElementByID(doc *html.Node, id string) *html.Node {
	var found *html.Node
	walk(doc, func(n *html.Node) {
		if found == nil && n.Type == html.ElementNode && attr(n, "id") == id {
			found = n
		}
	})
	return found
}

// TextContent concatenates every text node under n.
func TextContent(n *html.Node) string {
	var b strings.Builder
	walk(n, func(c *html.Node) {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	})
	return b.String()
}

// SetStyle sets one declaration in n's inline style, keeping the others.
func SetStyle(n *html.Node, property, value string) {
	var decls []string
	replaced := false
	for _, d := range strings.Split(attr(n, "style"), ";") {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		name, _, _ := strings.Cut(d, ":")
		if strings.EqualFold(strings.TrimSpace(name), property) {
			if replaced {
				continue
			}
			d = property + ": " + value
			replaced = true
		}
		decls = append(decls, d)
	}
	if !replaced {
		decls = append(decls, property+": "+value)
	}
	setAttr(n, "style", strings.Join(decls, "; "))
}

func walk(n *html.Node, fn func(*html.Node)) {
	if n == nil {
		return
	}
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}
