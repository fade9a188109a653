package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rmansour/kashef/internal/dataset"
	"github.com/rmansour/kashef/internal/forecast"
	"github.com/rmansour/kashef/internal/model"
	"github.com/spf13/cobra"
)

var (
	forecastDataset string
	forecastOut     string
	forecastCountry string
	forecastFrom    int
	forecastTimeout time.Duration
)

// forecastCmd combines IMF inflation data with the sentiment dataset.
var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Combine IMF inflation data with the sentiment dataset into a forecast",
	Long: `Forecast fetches the annual inflation series from the IMF datamapper
API, computes the smoothed daily net sentiment from the scraped dataset, and
applies fixed lag weights to produce a next-year inflation estimate. The
combined actual+forecast series is written as CSV for charting.

When the IMF API is unreachable, a built-in fallback series is used so the
command still produces output offline.

Example:
  kashef forecast
  kashef forecast --dataset data/arabic_news.csv --out data/egypt_inflation_forecast.csv`,
	Args: cobra.NoArgs,
	RunE: runForecast,
}

func init() {
	rootCmd.AddCommand(forecastCmd)

	defaults := model.DefaultConfig()

	forecastCmd.Flags().StringVar(&forecastDataset, "dataset", defaults.Scrape.DatasetPath, "sentiment dataset CSV path")
	forecastCmd.Flags().StringVar(&forecastOut, "out", defaults.Forecast.OutPath, "output CSV path")
	forecastCmd.Flags().StringVar(&forecastCountry, "country", defaults.Forecast.Country, "ISO3 country code for the IMF series")
	forecastCmd.Flags().IntVar(&forecastFrom, "from-year", defaults.Forecast.FromYear, "first year of inflation history to keep")
	forecastCmd.Flags().DurationVar(&forecastTimeout, "timeout", 2*time.Minute, "overall timeout")
}

func runForecast(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), forecastTimeout)
	defer cancel()

	cfg := model.DefaultConfig()

	// Inflation history: IMF API with offline fallback
	client := forecast.NewIMFClient(cfg.HTTP.Timeout)
	inflation, err := client.FetchInflation(ctx, cfg.Forecast.Indicator, forecastCountry, forecastFrom)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: IMF API failed (%v), using fallback series\n", err)
		inflation = forecast.FallbackSeries()
	} else if verbose {
		fmt.Fprintf(os.Stderr, "Loaded %d years of IMF data\n", len(inflation))
	}

	// Sentiment history: an absent dataset just means no sentiment signal
	var articles []model.Article
	store := dataset.NewStore(forecastDataset)
	if loaded, err := store.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load sentiment dataset (%v), forecasting on inflation momentum only\n", err)
	} else {
		articles = loaded
		if verbose {
			fmt.Fprintf(os.Stderr, "Loaded %d dataset rows\n", len(articles))
		}
	}

	breakdown, err := forecast.Run(articles, inflation)
	if err != nil {
		return fmt.Errorf("forecast failed: %w", err)
	}

	fmt.Printf("Forecast breakdown:\n")
	fmt.Printf("  Sentiment effect:   %.2f pp\n", breakdown.SentimentEffect)
	fmt.Printf("  Inflation momentum: %.2f pp\n", breakdown.InflationMomentum)
	fmt.Printf("  Intercept:          %.2f pp\n", breakdown.Intercept)
	fmt.Printf("  %d forecast:      %.2f%%\n", breakdown.ForecastYear, breakdown.Value)

	if err := forecast.WriteCSV(forecastOut, inflation, breakdown); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Wrote %s\n", forecastOut)

	return nil
}
