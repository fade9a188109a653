package scrape

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rmansour/kashef/internal/cache"
	"github.com/rmansour/kashef/internal/dataset"
	"github.com/rmansour/kashef/internal/model"
	"github.com/rmansour/kashef/internal/sentiment"
	"github.com/rmansour/kashef/internal/util"
	"github.com/rmansour/kashef/internal/worker"
)

// Pipeline orchestrates a scrape run: list articles across sources, skip
// known URLs, then fetch + keyword-filter + classify concurrently and append
// the keepers to the dataset.
type Pipeline struct {
	fetcher    *Fetcher
	sources    []Source
	classifier sentiment.Classifier
	store      *dataset.Store
	config     *model.Config
}

// Stats summarizes a scrape run.
type Stats struct {
	Found        int     // article refs seen on listing pages
	New          int     // refs not already in the dataset
	Added        int     // articles appended
	Filtered     int     // fetched but not economic
	Failed       int     // fetch or classification failures
	AvgSentiment float64 // mean confidence of added articles
}

// NewPipeline creates a pipeline from configuration.
func NewPipeline(cfg *model.Config, classifier sentiment.Classifier, store *dataset.Store) (*Pipeline, error) {
	fetcher := NewFetcher(
		cfg.HTTP.Timeout,
		cfg.HTTP.UserAgent,
		cfg.HTTP.MaxBodyBytes,
		cfg.HTTP.HTTPProxy,
		cfg.HTTP.HTTPSProxy,
	)

	if cfg.Cache.Enabled {
		c := cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
		fetcher.WithCache(c, cfg.Cache.DiskTTL)
	}

	fetcher.WithRobots(util.NewRobotsChecker(cfg.HTTP.UserAgent, cfg.HTTP.Timeout))
	fetcher.WithLimiter(worker.NewLimiter(cfg.Scrape.RatePerDomain, cfg.Scrape.RateBurst))

	sources := make([]Source, 0, len(cfg.Scrape.Sources))
	for _, name := range cfg.Scrape.Sources {
		src, err := NewSource(name, cfg.Scrape.SearchTerm)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no sources configured")
	}

	return &Pipeline{
		fetcher:    fetcher,
		sources:    sources,
		classifier: classifier,
		store:      store,
		config:     cfg,
	}, nil
}

// Run executes the scrape and returns run statistics.
func (p *Pipeline) Run(ctx context.Context) (*Stats, error) {
	existing, err := p.store.ExistingURLs()
	if err != nil {
		return nil, fmt.Errorf("load existing dataset: %w", err)
	}
	p.logf("Loaded %d existing articles", len(existing))

	stats := &Stats{}

	type sourcedRef struct {
		ref Ref
		src Source
	}

	var refs []sourcedRef
	for _, src := range p.sources {
		p.logf("Listing %s...", src.Name())
		for page := 1; page <= p.config.Scrape.Pages; page++ {
			pageRefs, err := src.ListPage(ctx, p.fetcher, page)
			if err != nil {
				if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
					return nil, err
				}
				p.logf("  page %d failed: %v", page, err)
				break
			}
			if len(pageRefs) == 0 {
				break
			}
			for _, ref := range pageRefs {
				refs = append(refs, sourcedRef{ref: ref, src: src})
			}
			p.logf("  page %d: %d articles", page, len(pageRefs))
		}
	}

	stats.Found = len(refs)

	var fresh []sourcedRef
	seen := make(map[string]bool)
	for _, sr := range refs {
		if existing[sr.ref.URL] || seen[sr.ref.URL] {
			continue
		}
		seen[sr.ref.URL] = true
		fresh = append(fresh, sr)
	}
	stats.New = len(fresh)
	p.logf("%d total refs, %d new", stats.Found, stats.New)

	if len(fresh) == 0 {
		return stats, nil
	}

	var (
		mu       sync.Mutex
		articles []model.Article
	)

	pool := worker.NewPool(ctx, p.config.Concurrency.Workers)
	pool.Start()

	for _, sr := range fresh {
		sr := sr
		pool.Submit(func(ctx context.Context) {
			article, err := sr.src.FetchArticle(ctx, p.fetcher, sr.ref.URL)
			if err != nil {
				p.logf("  failed %s: %v", sr.ref.URL, err)
				mu.Lock()
				stats.Failed++
				mu.Unlock()
				return
			}
			if article.Text == "" {
				mu.Lock()
				stats.Failed++
				mu.Unlock()
				return
			}

			if !IsEconomic(article.Title, article.Text) {
				mu.Lock()
				stats.Filtered++
				mu.Unlock()
				return
			}

			result, err := p.classifier.Classify(ctx, article.Text)
			if err != nil {
				p.logf("  classify failed %s: %v", sr.ref.URL, err)
				mu.Lock()
				stats.Failed++
				mu.Unlock()
				return
			}

			article.ID = uuid.NewString()
			article.SentimentLabel = string(result.Label)
			article.SentimentScore = result.Score
			article.ScrapedAt = time.Now().UTC()

			p.logf("  + %s [%s %.2f]", evaluatePreview(article.Title), result.Label, result.Score)

			mu.Lock()
			articles = append(articles, *article)
			mu.Unlock()
		})
	}

	pool.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := p.store.Append(articles); err != nil {
		return nil, fmt.Errorf("append dataset: %w", err)
	}

	stats.Added = len(articles)
	if stats.Added > 0 {
		sum := 0.0
		for _, a := range articles {
			sum += a.SentimentScore
		}
		stats.AvgSentiment = sum / float64(stats.Added)
	}

	return stats, nil
}

func (p *Pipeline) logf(format string, args ...interface{}) {
	if p.config.Output.Verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

// evaluatePreview trims long Arabic titles for progress lines.
func evaluatePreview(title string) string {
	runes := []rune(title)
	if len(runes) <= 60 {
		return title
	}
	return string(runes[:60]) + "..."
}
