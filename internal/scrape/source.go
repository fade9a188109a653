package scrape

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/rmansour/kashef/internal/model"
)

// Ref is a listing-page reference to an article before the full fetch.
type Ref struct {
	URL   string
	Title string
}

// Source is a site adapter: it knows how to walk one news site's listing
// pages and pull full article content out of its markup.
type Source interface {
	// Name identifies the source in dataset rows
	Name() string

	// ListPage returns article references from listing page number page (1-based)
	ListPage(ctx context.Context, f *Fetcher, page int) ([]Ref, error)

	// FetchArticle retrieves and parses a full article
	FetchArticle(ctx context.Context, f *Fetcher, url string) (*model.Article, error)
}

// NewSource creates a source adapter by name.
func NewSource(name, searchTerm string) (Source, error) {
	switch strings.ToLower(name) {
	case "youm7":
		return &Youm7{}, nil
	case "almasry", "almasry_alyoum", "almasryalyoum":
		return &Almasry{}, nil
	case "dailynews", "dailynews_egypt", "dailynewsegypt":
		return &DailyNews{SearchTerm: searchTerm}, nil
	default:
		return nil, fmt.Errorf("unknown source: %s (supported: youm7, almasry, dailynews)", name)
	}
}

var urlDatePattern = regexp.MustCompile(`/(\d{4})/(\d{1,2})/(\d{1,2})/`)

// dateFromURL extracts YYYY-MM-DD from URL path segments like
// /2025/12/08/article-name. Returns "" when no date is present.
func dateFromURL(url string) string {
	m := urlDatePattern.FindStringSubmatch(url)
	if m == nil {
		return ""
	}
	return fmt.Sprintf("%s-%s-%s", m[1], pad2(m[2]), pad2(m[3]))
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

// absoluteURL prefixes site-relative hrefs with the site base.
func absoluteURL(base, href string) string {
	if strings.HasPrefix(href, "http") {
		return href
	}
	return base + href
}

// dedupeRefs drops duplicate URLs, keeping first occurrence order.
func dedupeRefs(refs []Ref) []Ref {
	seen := make(map[string]bool, len(refs))
	var unique []Ref
	for _, ref := range refs {
		if !seen[ref.URL] {
			seen[ref.URL] = true
			unique = append(unique, ref)
		}
	}
	return unique
}
