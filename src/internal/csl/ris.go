package csl

import (
	"fmt"
	"strings"
)

var risTypes = map[kind]string{
	kindJournal:    "JOUR",
	kindBook:       "BOOK",
	kindChapter:    "CHAP",
	kindConference: "CPAPER",
	kindReport:     "RPRT",
	kindDataset:    "DATA",
	kindSoftware:   "COMP",
	kindThesis:     "THES",
	kindOther:      "GEN",
}

// RIS renders a RIS record, one tag per line, closed by ER.
func RIS(it Item) string {
	var lines []string
	tag := func(t, v string) {
		if v = strings.TrimSpace(v); v != "" {
			lines = append(lines, fmt.Sprintf("%s  - %s", t, v))
		}
	}
	tag("TY", risTypes[it.kind()])
	for _, a := range it.Authors {
		switch {
		case a.Literal != "":
			tag("AU", a.Literal)
		case a.Given != "":
			tag("AU", a.Family+", "+a.Given)
		default:
			tag("AU", a.Family)
		}
	}
	tag("TI", it.Title)
	tag("T2", it.ContainerTitle)
	tag("PY", it.Issued.YearString())
	tag("DA", risDate(it.Issued))
	tag("VL", it.Volume)
	tag("IS", it.Issue)
	sp, ep := pageRange(it.Page)
	tag("SP", sp)
	tag("EP", ep)
	tag("PB", it.Publisher)
	tag("CY", it.PublisherPlace)
	tag("DO", it.DOI)
	tag("UR", it.link())
	lines = append(lines, "ER  - ")
	return strings.Join(lines, "\n")
}

// risDate uses the RIS YYYY/MM/DD/ layout; unknown parts are left empty.
func risDate(d Date) string {
	if d.Year <= 0 {
		return ""
	}
	out := fmt.Sprintf("%04d/", d.Year)
	if d.Month > 0 {
		out += fmt.Sprintf("%02d/", d.Month)
		if d.Day > 0 {
			out += fmt.Sprintf("%02d/", d.Day)
		} else {
			out += "/"
		}
	} else {
		out += "//"
	}
	return out
}
