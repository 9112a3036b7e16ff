package csl

import (
	"strings"

	"certview/src/internal/names"
)

// Harvard renders a Harvard (author-date) reference.
func Harvard(it Item) string {
	year := it.Issued.YearString()
	if year == "" {
		year = "no date"
	}
	year = "(" + year + ")"
	title := it.Title
	journal := it.kind() == kindJournal || it.kind() == kindChapter || it.kind() == kindConference
	if journal {
		title = "‘" + title + "’"
	}
	var head string
	if authors := harvardAuthors(it.Authors); authors != "" {
		head = authors + " " + year + " " + title
	} else {
		head = title + " " + year
	}
	var segs []string
	if journal {
		var parts []string
		parts = append(parts, head)
		if it.kind() == kindChapter && it.ContainerTitle != "" {
			parts = append(parts, "in "+it.ContainerTitle)
		} else {
			parts = append(parts, compact(it.ContainerTitle)...)
		}
		parts = append(parts, compact(volIssue(it.Volume, it.Issue))...)
		if it.Page != "" {
			parts = append(parts, "pp. "+it.Page)
		}
		segs = appendSeg(segs, strings.Join(parts, ", "))
		if it.kind() != kindJournal {
			segs = appendSeg(segs, it.Publisher)
		}
	} else {
		segs = appendSeg(segs, head)
		pub := it.Publisher
		if it.PublisherPlace != "" && pub != "" {
			pub = it.PublisherPlace + ": " + pub
		}
		segs = appendSeg(segs, pub)
	}
	if l := it.link(); l != "" {
		segs = append(segs, "Available at: "+l+".")
	}
	return strings.Join(segs, " ")
}

func harvardAuthors(authors []Name) string {
	parts := make([]string, 0, len(authors))
	for _, a := range authors {
		switch {
		case a.Literal != "":
			parts = append(parts, a.Literal)
		case a.Family != "":
			if gi := names.Dotted(a.Given); gi != "" {
				parts = append(parts, a.Family+", "+gi)
			} else {
				parts = append(parts, a.Family)
			}
		}
	}
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	default:
		return strings.Join(parts[:len(parts)-1], ", ") + " and " + parts[len(parts)-1]
	}
}
