package visibility

import (
	"bytes"
	"strings"
	"testing"

	"golang.org/x/net/html"
)

const page = `<!DOCTYPE html><html><body>
<div class="card main" id="c1"><div id="summary-section"><p id="summary-content">  </p></div></div>
<div class="card" style="color: red" id="c2"><div id="abstract-section"><p id="abstract-content">We reproduce <b>all</b> figures.</p></div></div>
<div class="cards" id="c3"></div>
</body></html>`

func parse(t *testing.T, s string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func TestTidy(t *testing.T) {
	doc := parse(t, page)
	hidden := Tidy(doc)
	if len(hidden) != 1 || hidden[0] != "summary-section" {
		t.Fatalf("hidden=%v", hidden)
	}
	if got := attr(ElementByID(doc, "summary-section"), "style"); got != "display: none" {
		t.Fatalf("summary style=%q", got)
	}
	if got := attr(ElementByID(doc, "abstract-section"), "style"); got != "" {
		t.Fatalf("abstract style=%q", got)
	}
	if got := attr(ElementByID(doc, "c1"), "style"); got != "min-height: 320px" {
		t.Fatalf("c1 style=%q", got)
	}
	if got := attr(ElementByID(doc, "c2"), "style"); got != "color: red; min-height: 320px" {
		t.Fatalf("c2 style=%q", got)
	}
	if got := attr(ElementByID(doc, "c3"), "style"); got != "" {
		t.Fatalf("c3 is not a card, style=%q", got)
	}
}

func TestTidy_MissingElementsSkipped(t *testing.T) {
	doc := parse(t, `<div class="card" id="c"></div><div id="summary-section"></div>`)
	if hidden := Tidy(doc); len(hidden) != 0 {
		t.Fatalf("hidden=%v", hidden)
	}
	if got := attr(ElementByID(doc, "c"), "style"); got != "" {
		t.Fatalf("style=%q", got)
	}
}

func TestAdjustVisibility_AllEmptyLeavesCards(t *testing.T) {
	doc := parse(t, `<div class="card" id="c"><section id="s"><div id="x">
	</div></section></div>`)
	if !AdjustVisibility(doc, ElementByID(doc, "x"), ElementByID(doc, "s")) {
		t.Fatalf("expected hidden")
	}
	if got := attr(ElementByID(doc, "c"), "style"); got != "" {
		t.Fatalf("card style=%q", got)
	}
}

func TestSetStyle_ReplacesExisting(t *testing.T) {
	doc := parse(t, `<div id="d" style="display:block;margin: 0;DISPLAY: flex"></div>`)
	n := ElementByID(doc, "d")
	SetStyle(n, "display", "none")
	if got := attr(n, "style"); got != "display: none; margin: 0" {
		t.Fatalf("style=%q", got)
	}
}

func TestTidyHTML(t *testing.T) {
	var out bytes.Buffer
	hidden, err := TidyHTML(strings.NewReader(page), &out)
	if err != nil {
		t.Fatalf("TidyHTML: %v", err)
	}
	if len(hidden) != 1 {
		t.Fatalf("hidden=%v", hidden)
	}
	s := out.String()
	if !strings.Contains(s, `id="summary-section" style="display: none"`) {
		t.Fatalf("summary not hidden in output:\n%s", s)
	}
	if !strings.Contains(s, "We reproduce <b>all</b> figures.") {
		t.Fatalf("content lost:\n%s", s)
	}
}
