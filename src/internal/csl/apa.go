package csl

import (
	"fmt"
	"strings"

	"certview/src/internal/names"
	"certview/src/internal/stringsx"
)

// APA renders an APA 7 reference.
func APA(it Item) string {
	year := it.Issued.YearString()
	if year == "" {
		year = "n.d."
	}
	title := it.Title + apaTypeTag(it.kind())
	var segs []string
	if authors := apaAuthors(it.Authors); authors != "" {
		segs = append(segs, stringsx.EnsureSuffix(authors, "."), "("+year+").")
		segs = appendSeg(segs, title)
	} else {
		segs = appendSeg(segs, title)
		segs = append(segs, "("+year+").")
	}
	segs = appendSeg(segs, apaDetails(it))
	if l := it.link(); l != "" {
		segs = append(segs, l)
	}
	return strings.Join(segs, " ")
}

func apaTypeTag(k kind) string {
	switch k {
	case kindDataset:
		return " [Data set]"
	case kindSoftware:
		return " [Computer software]"
	}
	return ""
}

func apaDetails(it Item) string {
	switch it.kind() {
	case kindJournal:
		return strings.Join(compact(it.ContainerTitle, volIssue(it.Volume, it.Issue), it.Page), ", ")
	case kindChapter:
		in := ""
		if it.ContainerTitle != "" {
			in = "In " + it.ContainerTitle
			if it.Page != "" {
				in += " (pp. " + it.Page + ")"
			}
		}
		return strings.Join(compact(terminate(in), it.Publisher), " ")
	case kindConference:
		return strings.Join(compact(terminate(it.ContainerTitle), it.Publisher), " ")
	}
	return it.Publisher
}

func apaAuthors(authors []Name) string {
	parts := make([]string, 0, len(authors))
	for _, a := range authors {
		if s := apaAuthor(a); s != "" {
			parts = append(parts, s)
		}
	}
	// APA 7 lists up to 20 authors; beyond that the first 19, an ellipsis and the last.
	if len(parts) > 20 {
		return strings.Join(parts[:19], ", ") + ", . . . " + parts[len(parts)-1]
	}
	return joinOxfordAmp(parts)
}

func apaAuthor(a Name) string {
	if a.Literal != "" {
		return a.Literal
	}
	fam := strings.TrimSpace(a.Family)
	if fam == "" {
		return ""
	}
	if gi := names.Initials(a.Given); gi != "" {
		return fmt.Sprintf("%s, %s", fam, gi)
	}
	return fam
}

func joinOxfordAmp(parts []string) string {
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	case 2:
		return parts[0] + ", & " + parts[1]
	default:
		return strings.Join(parts[:len(parts)-1], ", ") + ", & " + parts[len(parts)-1]
	}
}
