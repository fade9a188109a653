package scrape

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/rmansour/kashef/internal/model"
)

const dailyNewsBase = "https://www.dailynewsegypt.com"

// DailyNews scrapes Daily News Egypt search results for a term (the English
// source; the other two are Arabic).
type DailyNews struct {
	SearchTerm string
}

func (s *DailyNews) Name() string { return "dailynews_egypt" }

func (s *DailyNews) ListPage(ctx context.Context, f *Fetcher, page int) ([]Ref, error) {
	term := url.QueryEscape(s.SearchTerm)
	pageURL := fmt.Sprintf("%s/?s=%s", dailyNewsBase, term)
	if page > 1 {
		pageURL = fmt.Sprintf("%s/page/%d/?s=%s", dailyNewsBase, page, term)
	}

	content, err := f.Fetch(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("dailynews page %d: %w", page, err)
	}

	doc, err := parseHTML(content)
	if err != nil {
		return nil, fmt.Errorf("parse dailynews page %d: %w", page, err)
	}

	var refs []Ref
	for _, titleNode := range findAll(doc, func(n *html.Node) bool {
		return hasClass(n, "entry-title")
	}) {
		link := findFirst(titleNode, func(n *html.Node) bool {
			return isTag(n, "a") && attr(n, "href") != ""
		})
		if link == nil {
			continue
		}

		refs = append(refs, Ref{
			URL:   attr(link, "href"),
			Title: nodeText(link),
		})
	}

	return dedupeRefs(refs), nil
}

func (s *DailyNews) FetchArticle(ctx context.Context, f *Fetcher, rawURL string) (*model.Article, error) {
	content, err := f.Fetch(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("dailynews article: %w", err)
	}

	doc, err := parseHTML(content)
	if err != nil {
		return nil, fmt.Errorf("parse dailynews article: %w", err)
	}

	title := ""
	if t := findFirst(doc, func(n *html.Node) bool {
		return isTag(n, "h1") && hasClass(n, "entry-title")
	}); t != nil {
		title = nodeText(t)
	} else if h1 := findFirst(doc, func(n *html.Node) bool { return isTag(n, "h1") }); h1 != nil {
		title = nodeText(h1)
	}

	text := ""
	if div := findFirst(doc, func(n *html.Node) bool {
		return isTag(n, "div") && hasClass(n, "entry-content")
	}); div != nil {
		text = strings.Join(paragraphTexts(div), "\n")
	}

	author := ""
	if a := findFirst(doc, func(n *html.Node) bool {
		return (isTag(n, "a") || isTag(n, "span")) && hasClass(n, "author")
	}); a != nil {
		author = nodeText(a)
	}

	var categories []string
	for _, cat := range findAll(doc, func(n *html.Node) bool {
		return isTag(n, "a") && attr(n, "rel") == "category tag"
	}) {
		if c := nodeText(cat); c != "" {
			categories = append(categories, c)
		}
	}

	return &model.Article{
		Title:         title,
		URL:           rawURL,
		Source:        s.Name(),
		Author:        author,
		Categories:    categories,
		DatePublished: s.extractDate(doc, rawURL),
		Text:          text,
		WordCount:     len(strings.Fields(text)),
	}, nil
}

// extractDate tries the publication meta tag first, then the updated-date
// time tag, then the URL path.
func (s *DailyNews) extractDate(doc *html.Node, rawURL string) string {
	if meta := findFirst(doc, func(n *html.Node) bool {
		return isTag(n, "meta") && attr(n, "property") == "article:published_time"
	}); meta != nil {
		if c := attr(meta, "content"); len(c) >= 10 {
			return c[:10]
		}
	}

	if t := findFirst(doc, func(n *html.Node) bool {
		return isTag(n, "time") && hasClass(n, "updated-date")
	}); t != nil {
		if dt := attr(t, "datetime"); len(dt) >= 10 {
			return dt[:10]
		}
	}

	if date := dateFromURL(rawURL); date != "" {
		return date
	}

	return "Unknown"
}
