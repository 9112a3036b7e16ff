// Package report renders a resolved citation in every supported style as a
// Markdown document.
package report

import (
	"io"

	"github.com/nao1215/markdown"

	"certview/src/internal/citation"
)

// Entry is one style's rendering. Err is set when the engine could not
// format the record in that style.
type Entry struct {
	Style citation.Style
	Text  string
	Err   error
}

// Document is everything the Markdown export shows.
type Document struct {
	Identifier string
	Title      string
	Link       string
	Entries    []Entry
}

// Render formats rec in every style, in selector order. A failing style is
// recorded in its entry and does not stop the others.
func Render(svc citation.Service, rec citation.Record) []Entry {
	styles := citation.Styles()
	out := make([]Entry, 0, len(styles))
	for _, s := range styles {
		text, err := svc.Format(rec, s)
		out = append(out, Entry{Style: s, Text: text, Err: err})
	}
	return out
}

// codeStyles are shown as fenced blocks; the others as paragraphs.
var codeStyles = map[citation.Style]markdown.SyntaxHighlight{
	citation.BibTeX:   markdown.SyntaxHighlight("bibtex"),
	citation.BibLaTeX: markdown.SyntaxHighlight("bibtex"),
	citation.RIS:      markdown.SyntaxHighlight("text"),
}

// WriteMarkdown writes doc to w.
func WriteMarkdown(w io.Writer, doc Document) error {
	md := markdown.NewMarkdown(w)

	title := doc.Title
	if title == "" {
		title = doc.Identifier
	}
	md.H1("Citation: " + title)
	md.PlainText("")

	rows := [][]string{{"Identifier", "`" + doc.Identifier + "`"}}
	if doc.Link != "" {
		rows = append(rows, []string{"Link", doc.Link})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")

	for _, e := range doc.Entries {
		md.H2(e.Style.Label())
		md.PlainText("")
		switch {
		case e.Err != nil:
			md.Warningf("Could not format citation in %s format: %v", e.Style, e.Err)
		case codeStyles[e.Style] != "":
			md.CodeBlocks(codeStyles[e.Style], e.Text)
		default:
			md.PlainText(e.Text)
		}
		md.PlainText("")
	}

	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Generated by certview*")
	return md.Build()
}
