package scrape

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/rmansour/kashef/internal/model"
)

const almasryBase = "https://www.almasryalyoum.com"

// Almasry scrapes the Al-Masry Al-Youm economy section.
// Listing URL structure: almasryalyoum.com/section/index/4?page={page}
type Almasry struct{}

func (s *Almasry) Name() string { return "almasry_alyoum" }

func (s *Almasry) ListPage(ctx context.Context, f *Fetcher, page int) ([]Ref, error) {
	url := fmt.Sprintf("%s/section/index/4?page=%d", almasryBase, page)

	content, err := f.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("almasry page %d: %w", page, err)
	}

	doc, err := parseHTML(content)
	if err != nil {
		return nil, fmt.Errorf("parse almasry page %d: %w", page, err)
	}

	var refs []Ref
	for _, link := range findAll(doc, func(n *html.Node) bool {
		return isTag(n, "a") && strings.Contains(attr(n, "href"), "/news/details/")
	}) {
		articleURL := absoluteURL(almasryBase, attr(link, "href"))
		title := nodeText(link)

		if title != "" && articleURL != "" {
			refs = append(refs, Ref{URL: articleURL, Title: title})
		}
	}

	return dedupeRefs(refs), nil
}

func (s *Almasry) FetchArticle(ctx context.Context, f *Fetcher, url string) (*model.Article, error) {
	content, err := f.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("almasry article: %w", err)
	}

	doc, err := parseHTML(content)
	if err != nil {
		return nil, fmt.Errorf("parse almasry article: %w", err)
	}

	title := "No Title"
	if t := findFirst(doc, func(n *html.Node) bool {
		return isTag(n, "h1") || (isTag(n, "h2") && hasClass(n, "title"))
	}); t != nil {
		title = nodeText(t)
	}

	text := ""
	if div := findFirst(doc, func(n *html.Node) bool {
		return isTag(n, "div") && classContains(n, "content")
	}); div != nil {
		text = strings.Join(paragraphTexts(div), "\n")
	}

	date := dateFromURL(url)
	if date == "" {
		date = "Unknown"
	}

	return &model.Article{
		Title:         title,
		URL:           url,
		Source:        s.Name(),
		DatePublished: date,
		Text:          text,
		WordCount:     len(strings.Fields(text)),
	}, nil
}
