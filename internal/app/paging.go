package app

import (
	"net/url"
	"strconv"

	"course_completion_report/internal/domain/report"
)

// Paging bar labels.
const (
	labelPrevious = "Previous"
	labelNext     = "Next"
)

// BuildPaging returns the paging bar for a window of perPage users starting
// at start out of total. It is empty when everything fits on one page. Each
// link is base with only its start parameter replaced; a nil base yields
// links without URLs. The page holding start is marked current, even when
// start is not on a page boundary.
func BuildPaging(total, perPage, start int, base *url.URL) []report.PageLink {
	if perPage <= 0 || total <= perPage {
		return nil
	}

	link := func(label string, s int) report.PageLink {
		return report.PageLink{Label: label, Start: s, URL: pageURL(base, s)}
	}

	var links []report.PageLink
	if start > 0 {
		prev := start - perPage
		if prev < 0 {
			prev = 0
		}
		links = append(links, link(labelPrevious, prev))
	}

	page := 0
	for s := 0; s < total; s += perPage {
		page++
		if start >= s && start < s+perPage {
			links = append(links, report.PageLink{Label: strconv.Itoa(page), Start: s, Current: true})
			continue
		}
		links = append(links, link(strconv.Itoa(page), s))
	}

	if next := start + perPage; next < total {
		links = append(links, link(labelNext, next))
	}
	return links
}

func pageURL(base *url.URL, start int) string {
	if base == nil {
		return ""
	}
	u := *base
	q := u.Query()
	q.Set("start", strconv.Itoa(start))
	u.RawQuery = q.Encode()
	return u.String()
}

// Initials returns the letters offered by the initials filter bar.
func Initials() []string {
	letters := make([]string, 0, 26)
	for c := 'A'; c <= 'Z'; c++ {
		letters = append(letters, string(c))
	}
	return letters
}
