package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rmansour/kashef/internal/dataset"
	"github.com/rmansour/kashef/internal/model"
	"github.com/rmansour/kashef/internal/scrape"
	"github.com/spf13/cobra"
)

var (
	scrapeSources []string
	scrapePages   int
	searchTerm    string
	datasetPath   string
	concurrency   int
	scrapeTimeout time.Duration
	userAgent     string
	noCache       bool
	httpProxy     string
	httpsProxy    string
)

// scrapeCmd runs the news scraping pipeline.
var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape economic news, classify sentiment, append to the dataset",
	Long: `Scrape walks the configured news sources' listing pages, skips URLs
already present in the dataset, fetches new articles concurrently, keeps only
economy-related ones (Arabic/English keyword lists), classifies each with the
sentiment model, and appends the results to the CSV dataset.

Example:
  kashef scrape
  kashef scrape --sources youm7,almasry --pages 5
  kashef scrape --dataset data/arabic_news.csv --concurrency 4`,
	Args: cobra.NoArgs,
	RunE: runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)

	defaults := model.DefaultConfig()

	scrapeCmd.Flags().StringSliceVar(&scrapeSources, "sources", defaults.Scrape.Sources, "news sources (youm7, almasry, dailynews)")
	scrapeCmd.Flags().IntVar(&scrapePages, "pages", defaults.Scrape.Pages, "listing pages per source")
	scrapeCmd.Flags().StringVar(&searchTerm, "search-term", defaults.Scrape.SearchTerm, "search term for the dailynews source")
	scrapeCmd.Flags().StringVar(&datasetPath, "dataset", defaults.Scrape.DatasetPath, "dataset CSV path")
	scrapeCmd.Flags().IntVar(&concurrency, "concurrency", defaults.Concurrency.Workers, "number of concurrent workers")
	scrapeCmd.Flags().DurationVar(&scrapeTimeout, "timeout", 15*time.Minute, "total scrape timeout")
	scrapeCmd.Flags().StringVar(&userAgent, "ua", defaults.HTTP.UserAgent, "HTTP User-Agent")
	scrapeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable page cache (force fresh fetches)")
	scrapeCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	scrapeCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")

	addClassifierFlags(scrapeCmd)
}

func runScrape(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), scrapeTimeout)
	defer cancel()

	cfg := model.DefaultConfig()
	cfg.Scrape.Sources = scrapeSources
	cfg.Scrape.Pages = scrapePages
	cfg.Scrape.SearchTerm = searchTerm
	cfg.Scrape.DatasetPath = datasetPath
	cfg.Concurrency.Workers = concurrency
	cfg.HTTP.UserAgent = userAgent
	cfg.HTTP.HTTPProxy = httpProxy
	cfg.HTTP.HTTPSProxy = httpsProxy
	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose

	classifier, err := buildClassifier(cfg)
	if err != nil {
		return err
	}

	store := dataset.NewStore(cfg.Scrape.DatasetPath)

	pipeline, err := scrape.NewPipeline(cfg, classifier, store)
	if err != nil {
		return fmt.Errorf("create pipeline: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Scraping %v (%d pages each) into %s\n", cfg.Scrape.Sources, cfg.Scrape.Pages, store.Path())

	stats, err := pipeline.Run(ctx)
	if err != nil {
		return fmt.Errorf("scrape failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Refs found:     %d\n", stats.Found)
	fmt.Fprintf(os.Stderr, "  New:            %d\n", stats.New)
	fmt.Fprintf(os.Stderr, "  Added:          %d\n", stats.Added)
	fmt.Fprintf(os.Stderr, "  Filtered:       %d (not economic)\n", stats.Filtered)
	fmt.Fprintf(os.Stderr, "  Failed:         %d\n", stats.Failed)
	if stats.Added > 0 {
		fmt.Fprintf(os.Stderr, "  Avg confidence: %.3f\n", stats.AvgSentiment)
	}

	return nil
}
