package csl

import (
	"errors"
	"testing"
)

const sampleCSL = `{
	"type": "article-journal",
	"title": "A Sample Article",
	"author": [{"family":"Doe","given":"Jane Q"},{"family":"Smith","given":"John"}],
	"container-title": "Journal of Things",
	"issued": {"date-parts": [[2023,7,14]]},
	"DOI": "10.1234/sample",
	"volume": "10",
	"issue": "2",
	"page": "10-20",
	"publisher": "ACME"
}`

func TestDecode_Object(t *testing.T) {
	it, err := Decode([]byte(sampleCSL))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if it.Title != "A Sample Article" || it.ContainerTitle != "Journal of Things" {
		t.Fatalf("bad mapping: %+v", it)
	}
	if it.Volume != "10" || it.Issue != "2" || it.Page != "10-20" {
		t.Fatalf("vol/issue/pages: %+v", it)
	}
	if it.Issued != (Date{Year: 2023, Month: 7, Day: 14}) || it.Issued.ISO() != "2023-07-14" {
		t.Fatalf("issued: %+v", it.Issued)
	}
	if len(it.Authors) != 2 || it.Authors[0].Family != "Doe" || it.Authors[0].Given != "Jane Q" {
		t.Fatalf("authors: %+v", it.Authors)
	}
	if it.kind() != kindJournal {
		t.Fatalf("kind: %v", it.kind())
	}
}

func TestDecode_LooseShapes(t *testing.T) {
	body := `[{
		"type": "report",
		"title": ["CODECHECK certificate 2020-001", "ignored"],
		"author": [{"literal":"CODECHECK"},{"name":"Some Lab"},{"given":"nobody"}],
		"issued": {"date-parts": [["2020","13"]]},
		"volume": 3,
		"publisher": "Zenodo",
		"URL": "ftp://not-allowed"
	}]`
	it, err := Decode([]byte(body))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if it.Title != "CODECHECK certificate 2020-001" {
		t.Fatalf("title: %q", it.Title)
	}
	if len(it.Authors) != 2 || it.Authors[0].Literal != "CODECHECK" || it.Authors[1].Literal != "Some Lab" {
		t.Fatalf("authors: %+v", it.Authors)
	}
	if it.Issued != (Date{Year: 2020}) {
		t.Fatalf("invalid month should be dropped: %+v", it.Issued)
	}
	if it.Volume != "3" {
		t.Fatalf("numeric volume: %q", it.Volume)
	}
	if it.URL != "" {
		t.Fatalf("non-http url kept: %q", it.URL)
	}
}

func TestDecode_RawDate(t *testing.T) {
	it, err := Decode([]byte(`{"title":"T","issued":{"raw":"2019-05"}}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if it.Issued.Year != 2019 || it.Issued.ISO() != "2019" {
		t.Fatalf("raw year: %+v", it.Issued)
	}
}

func TestDecode_Malformed(t *testing.T) {
	for _, body := range []string{`not json`, `{"author":[]}`, `[]`, `[1]`} {
		if _, err := Decode([]byte(body)); !errors.Is(err, ErrMalformed) {
			t.Fatalf("Decode(%q): want ErrMalformed, got %v", body, err)
		}
	}
}

func TestDateISO(t *testing.T) {
	cases := map[Date]string{
		{}:                        "",
		{Year: 2020}:              "2020",
		{Year: 2020, Month: 4}:    "2020-04",
		{Year: 2020, Month: 4, Day: 9}: "2020-04-09",
	}
	for d, want := range cases {
		if got := d.ISO(); got != want {
			t.Fatalf("ISO(%+v) = %q, want %q", d, got, want)
		}
	}
}

func TestPageRange(t *testing.T) {
	cases := []struct{ in, start, end string }{
		{"10-20", "10", "20"},
		{"10–20", "10", "20"},
		{"e1234", "e1234", ""},
		{"", "", ""},
	}
	for _, tc := range cases {
		s, e := pageRange(tc.in)
		if s != tc.start || e != tc.end {
			t.Fatalf("pageRange(%q) = (%q,%q)", tc.in, s, e)
		}
	}
}
