// Package forecast combines the IMF annual inflation series with the
// sentiment dataset to produce a next-year inflation estimate. The lag
// weights are fixed regression coefficients (exponential decay on sentiment,
// short momentum on inflation) estimated offline; this package only applies
// them.
package forecast

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/rmansour/kashef/internal/model"
)

var (
	sentimentWeights = []float64{1.00, 0.70, 0.49, 0.34, 0.24, 0.17, 0.12, 0.08, 0.06}
	inflationWeights = []float64{0.60, 0.25, 0.10, 0.05}
)

const (
	scaleFactor = 0.03
	intercept   = 0.5

	rollingWindow = 7
)

// Breakdown is the transparent decomposition of a forecast.
type Breakdown struct {
	SentimentEffect   float64
	InflationMomentum float64
	Intercept         float64
	Value             float64
	ForecastYear      int
}

// DailyNet is the per-day net sentiment: #positive − #negative articles.
type DailyNet struct {
	Date time.Time
	Net  float64
}

// NetSentiment computes daily net sentiment from the dataset. Neutral rows
// and rows without a parseable publication date are dropped; output is
// sorted by date.
func NetSentiment(articles []model.Article) []DailyNet {
	byDay := make(map[time.Time]float64)

	for _, a := range articles {
		var delta float64
		switch a.SentimentLabel {
		case "positive":
			delta = 1
		case "negative":
			delta = -1
		default:
			continue
		}

		day, err := time.Parse("2006-01-02", a.DatePublished)
		if err != nil {
			continue
		}

		byDay[day] += delta
	}

	daily := make([]DailyNet, 0, len(byDay))
	for day, net := range byDay {
		daily = append(daily, DailyNet{Date: day, Net: net})
	}
	sort.Slice(daily, func(i, j int) bool { return daily[i].Date.Before(daily[j].Date) })

	return daily
}

// RollingMean computes the trailing mean over a window, with a minimum
// period of one (the first values average whatever history exists).
func RollingMean(values []float64, window int) []float64 {
	if window <= 0 {
		window = 1
	}

	means := make([]float64, len(values))
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}

		n := i + 1
		if n > window {
			n = window
		}
		means[i] = sum / float64(n)
	}

	return means
}

// Compute applies the lag weights to the smoothed sentiment series and the
// annual inflation series. Missing history is padded by repeating the most
// recent observation.
func Compute(smoothedSentiment []float64, inflation []Point) (*Breakdown, error) {
	if len(inflation) == 0 {
		return nil, fmt.Errorf("no inflation history")
	}

	// Most recent first: weight[0] applies to the latest value.
	sentimentHistory := latestFirst(smoothedSentiment, len(sentimentWeights))

	inflationValues := make([]float64, len(inflation))
	for i, p := range inflation {
		inflationValues[i] = p.Value
	}
	inflationHistory := latestFirst(inflationValues, len(inflationWeights))

	sentimentEffect := 0.0
	for i, w := range sentimentWeights {
		sentimentEffect += w * sentimentHistory[i]
	}
	sentimentEffect *= scaleFactor

	momentum := 0.0
	for i, w := range inflationWeights {
		momentum += w * inflationHistory[i]
	}

	return &Breakdown{
		SentimentEffect:   sentimentEffect,
		InflationMomentum: momentum,
		Intercept:         intercept,
		Value:             intercept + sentimentEffect + momentum,
		ForecastYear:      inflation[len(inflation)-1].Year + 1,
	}, nil
}

// Run loads sentiment from the dataset, smooths it, and combines it with the
// inflation series into a forecast. With no usable sentiment rows the
// sentiment effect contributes only through the padded zero series.
func Run(articles []model.Article, inflation []Point) (*Breakdown, error) {
	daily := NetSentiment(articles)

	nets := make([]float64, len(daily))
	for i, d := range daily {
		nets[i] = d.Net
	}
	smoothed := RollingMean(nets, rollingWindow)

	return Compute(smoothed, inflation)
}

// WriteCSV writes the combined actual+forecast series:
// date,inflation,type rows sorted by date, forecast last.
func WriteCSV(path string, actuals []Point, b *Breakdown) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)

	if err := w.Write([]string{"date", "inflation", "type"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	sorted := make([]Point, len(actuals))
	copy(sorted, actuals)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Year < sorted[j].Year })

	for _, p := range sorted {
		row := []string{
			fmt.Sprintf("%d-01-01", p.Year),
			strconv.FormatFloat(p.Value, 'f', -1, 64),
			"actual",
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	forecastRow := []string{
		fmt.Sprintf("%d-01-01", b.ForecastYear),
		strconv.FormatFloat(b.Value, 'f', -1, 64),
		"forecast",
	}
	if err := w.Write(forecastRow); err != nil {
		return fmt.Errorf("write forecast row: %w", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}

	return nil
}

// latestFirst returns the last n values of series reversed (most recent
// first), padding with the most recent available value. An empty series
// yields all zeros.
func latestFirst(series []float64, n int) []float64 {
	out := make([]float64, n)

	if len(series) == 0 {
		return out
	}

	latest := series[len(series)-1]
	for i := 0; i < n; i++ {
		j := len(series) - 1 - i
		if j < 0 {
			out[i] = latest
			continue
		}
		out[i] = series[j]
	}

	return out
}
