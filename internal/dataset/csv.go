// Package dataset persists scraped articles as a flat CSV file. The file is
// append-only and consumed downstream by the forecast command and by the
// Vega-Lite dashboards that chart it, so the column set and order are part
// of the contract.
package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rmansour/kashef/internal/model"
)

var columns = []string{
	"id", "title", "url", "source", "author", "categories",
	"date_published", "word_count", "sentiment_label", "sentiment_score",
	"text", "scraped_at",
}

// Store reads and appends the article dataset.
type Store struct {
	path string
}

// NewStore creates a store backed by the CSV file at path. The file need not
// exist yet.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the dataset file path.
func (s *Store) Path() string { return s.path }

// ExistingURLs returns the set of article URLs already in the dataset, used
// to skip re-scraping. A missing file yields an empty set.
func (s *Store) ExistingURLs() (map[string]bool, error) {
	urls := make(map[string]bool)

	rows, err := s.readAll()
	if os.IsNotExist(err) {
		return urls, nil
	}
	if err != nil {
		return nil, err
	}

	idx, err := columnIndex(rows)
	if err != nil {
		return nil, err
	}

	for _, row := range rows[1:] {
		if u := field(row, idx, "url"); u != "" {
			urls[u] = true
		}
	}

	return urls, nil
}

// Append adds articles to the dataset, writing the header when the file is
// new.
func (s *Store) Append(articles []model.Article) error {
	if len(articles) == 0 {
		return nil
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}

	_, statErr := os.Stat(s.path)
	isNew := os.IsNotExist(statErr)

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open dataset: %w", err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)

	if isNew {
		if err := w.Write(columns); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for _, a := range articles {
		row := []string{
			a.ID,
			a.Title,
			a.URL,
			a.Source,
			a.Author,
			strings.Join(a.Categories, ", "),
			a.DatePublished,
			strconv.Itoa(a.WordCount),
			a.SentimentLabel,
			strconv.FormatFloat(a.SentimentScore, 'f', -1, 64),
			a.Text,
			a.ScrapedAt.Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush dataset: %w", err)
	}

	return nil
}

// Load reads the full dataset. Rows with malformed numeric fields are kept
// with zero values rather than aborting the load.
func (s *Store) Load() ([]model.Article, error) {
	rows, err := s.readAll()
	if err != nil {
		return nil, err
	}

	idx, err := columnIndex(rows)
	if err != nil {
		return nil, err
	}

	articles := make([]model.Article, 0, len(rows)-1)
	for _, row := range rows[1:] {
		a := model.Article{
			ID:             field(row, idx, "id"),
			Title:          field(row, idx, "title"),
			URL:            field(row, idx, "url"),
			Source:         field(row, idx, "source"),
			Author:         field(row, idx, "author"),
			DatePublished:  field(row, idx, "date_published"),
			SentimentLabel: field(row, idx, "sentiment_label"),
			Text:           field(row, idx, "text"),
		}

		if cats := field(row, idx, "categories"); cats != "" {
			a.Categories = strings.Split(cats, ", ")
		}
		a.WordCount, _ = strconv.Atoi(field(row, idx, "word_count"))
		a.SentimentScore, _ = strconv.ParseFloat(field(row, idx, "sentiment_score"), 64)
		if t, err := time.Parse(time.RFC3339, field(row, idx, "scraped_at")); err == nil {
			a.ScrapedAt = t
		}

		articles = append(articles, a)
	}

	return articles, nil
}

func (s *Store) readAll() ([][]string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // tolerate rows written by earlier versions

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("dataset %s is empty", s.path)
	}

	return rows, nil
}

// columnIndex maps header names to positions, so old files with a different
// column order still load.
func columnIndex(rows [][]string) (map[string]int, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("missing header")
	}

	idx := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		idx[strings.TrimSpace(name)] = i
	}

	if _, ok := idx["url"]; !ok {
		return nil, fmt.Errorf("dataset header has no url column")
	}

	return idx, nil
}

func field(row []string, idx map[string]int, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}
