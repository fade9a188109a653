package scrape

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/rmansour/kashef/internal/model"
)

const youm7Base = "https://www.youm7.com"

// Youm7 scrapes the Youm7 economy & exchange section.
// Listing URL structure: youm7.com/Section/اقتصاد-وبورصة/297/{page}
type Youm7 struct{}

func (s *Youm7) Name() string { return "youm7" }

func (s *Youm7) ListPage(ctx context.Context, f *Fetcher, page int) ([]Ref, error) {
	url := fmt.Sprintf("%s/Section/%s/297/%d", youm7Base, "اقتصاد-وبورصة", page)

	content, err := f.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("youm7 page %d: %w", page, err)
	}

	doc, err := parseHTML(content)
	if err != nil {
		return nil, fmt.Errorf("parse youm7 page %d: %w", page, err)
	}

	var refs []Ref
	// Story teasers live in divs whose class contains "bigOneSec"
	for _, div := range findAll(doc, func(n *html.Node) bool {
		return isTag(n, "div") && classContains(n, "bigOneSec")
	}) {
		link := findFirst(div, func(n *html.Node) bool {
			return isTag(n, "a") && attr(n, "href") != ""
		})
		if link == nil {
			continue
		}

		articleURL := absoluteURL(youm7Base, attr(link, "href"))

		title := ""
		if h2 := findFirst(link, func(n *html.Node) bool { return isTag(n, "h2") }); h2 != nil {
			title = nodeText(h2)
		}
		if title == "" {
			title = nodeText(link)
		}

		if title != "" && articleURL != "" {
			refs = append(refs, Ref{URL: articleURL, Title: title})
		}
	}

	return dedupeRefs(refs), nil
}

func (s *Youm7) FetchArticle(ctx context.Context, f *Fetcher, url string) (*model.Article, error) {
	content, err := f.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("youm7 article: %w", err)
	}

	doc, err := parseHTML(content)
	if err != nil {
		return nil, fmt.Errorf("parse youm7 article: %w", err)
	}

	title := "No Title"
	if h1 := findFirst(doc, func(n *html.Node) bool { return isTag(n, "h1") }); h1 != nil {
		title = nodeText(h1)
	}

	// Body paragraphs sit in divs whose class contains "articl"
	var parts []string
	for _, div := range findAll(doc, func(n *html.Node) bool {
		return isTag(n, "div") && classContains(n, "articl")
	}) {
		parts = append(parts, paragraphTexts(div)...)
	}
	text := strings.Join(parts, "\n")

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
