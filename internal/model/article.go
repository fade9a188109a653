package model

import "time"

// Article represents a single scraped news item with its sentiment annotation.
// Field order mirrors the columns of the CSV dataset.
type Article struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	URL            string    `json:"url"`
	Source         string    `json:"source"`                   // "youm7", "almasry_alyoum", "dailynews_egypt"
	Author         string    `json:"author,omitempty"`
	Categories     []string  `json:"categories,omitempty"`
	DatePublished  string    `json:"date_published"`           // YYYY-MM-DD, or "Unknown"
	WordCount      int       `json:"word_count"`
	SentimentLabel string    `json:"sentiment_label"`          // provider vocabulary: positive/negative/neutral
	SentimentScore float64   `json:"sentiment_score"`          // confidence in [0,1]
	Text           string    `json:"text"`
	ScrapedAt      time.Time `json:"scraped_at"`
}
