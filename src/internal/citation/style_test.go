package citation

import "testing"

func TestParseStyle(t *testing.T) {
	cases := []struct {
		in   string
		want Style
		ok   bool
	}{
		{"apa", APA, true},
		{" BibTeX ", BibTeX, true},
		{"harvard1", Harvard1, true},
		{"ris", RIS, true},
		{"chicago", APA, false},
		{"", APA, false},
	}
	for _, tc := range cases {
		got, ok := ParseStyle(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("ParseStyle(%q) = (%q,%v), want (%q,%v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestStylesOrderAndNext(t *testing.T) {
	all := Styles()
	if len(all) != 6 || all[0] != APA || all[5] != RIS {
		t.Fatalf("Styles: %v", all)
	}
	all[0] = "mutated"
	if Styles()[0] != APA {
		t.Fatalf("Styles must return a copy")
	}
	s := APA
	for i := 0; i < 6; i++ {
		s = s.Next()
	}
	if s != APA {
		t.Fatalf("Next should cycle back to APA, got %q", s)
	}
	if Style("bogus").Next() != DefaultStyle {
		t.Fatalf("Next of unknown style should be default")
	}
}

func TestLabelAndValid(t *testing.T) {
	if Harvard1.Label() != "Harvard" || !Harvard1.Valid() {
		t.Fatalf("harvard1 label/valid")
	}
	if Style("x").Valid() || Style("x").Label() != "x" {
		t.Fatalf("unknown style label/valid")
	}
}
