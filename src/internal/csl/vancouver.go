package csl

import (
	"strings"

	"certview/src/internal/names"
)

const vancouverMaxAuthors = 6

// Vancouver renders an ICMJE/NLM style reference.
func Vancouver(it Item) string {
	var segs []string
	segs = appendSeg(segs, vancouverAuthors(it.Authors))
	segs = appendSeg(segs, it.Title)
	year := it.Issued.YearString()
	if it.kind() == kindJournal {
		segs = appendSeg(segs, it.ContainerTitle)
		src := year
		if vi := volIssue(it.Volume, it.Issue); vi != "" {
			src += ";" + vi
		}
		if it.Page != "" {
			src += ":" + it.Page
		}
		segs = appendSeg(segs, src)
	} else {
		pub := it.Publisher
		if it.PublisherPlace != "" && pub != "" {
			pub = it.PublisherPlace + ": " + pub
		}
		segs = appendSeg(segs, strings.Join(compact(pub, year), "; "))
	}
	switch {
	case it.DOI != "":
		segs = append(segs, "doi:"+it.DOI)
	case it.URL != "":
		segs = append(segs, "Available from: "+it.URL)
	}
	return strings.Join(segs, " ")
}

func vancouverAuthors(authors []Name) string {
	parts := make([]string, 0, len(authors))
	for _, a := range authors {
		switch {
		case a.Literal != "":
			parts = append(parts, a.Literal)
		case a.Family != "":
			parts = append(parts, strings.Join(compact(a.Family, names.Compact(a.Given)), " "))
		}
	}
	if len(parts) > vancouverMaxAuthors {
		return strings.Join(parts[:vancouverMaxAuthors], ", ") + ", et al"
	}
	return strings.Join(parts, ", ")
}
