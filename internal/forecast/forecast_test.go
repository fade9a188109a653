package forecast

import (
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/rmansour/kashef/internal/model"
)

const eps = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func article(date, label string) model.Article {
	return model.Article{DatePublished: date, SentimentLabel: label}
}

func TestNetSentiment(t *testing.T) {
	articles := []model.Article{
		article("2025-08-02", "positive"),
		article("2025-08-01", "negative"),
		article("2025-08-01", "negative"),
		article("2025-08-01", "positive"),
		article("2025-08-01", "neutral"),
		article("Unknown", "positive"),
	}

	daily := NetSentiment(articles)

	if len(daily) != 2 {
		t.Fatalf("expected 2 days, got %d: %v", len(daily), daily)
	}
	if !daily[0].Date.Before(daily[1].Date) {
		t.Error("daily series should be sorted ascending")
	}
	if daily[0].Net != -1 {
		t.Errorf("2025-08-01 net = %v, want -1 (1 positive, 2 negative, neutral dropped)", daily[0].Net)
	}
	if daily[1].Net != 1 {
		t.Errorf("2025-08-02 net = %v, want 1", daily[1].Net)
	}
}

func TestNetSentiment_Empty(t *testing.T) {
	if daily := NetSentiment(nil); len(daily) != 0 {
		t.Errorf("expected empty series, got %v", daily)
	}
}

func TestRollingMean(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		window int
		want   []float64
	}{
		{
			name:   "trailing window of two",
			values: []float64{1, 2, 3, 4},
			window: 2,
			want:   []float64{1, 1.5, 2.5, 3.5},
		},
		{
			name:   "window larger than series",
			values: []float64{2, 4},
			window: 7,
			want:   []float64{2, 3},
		},
		{
			name:   "window of one is identity",
			values: []float64{5, -3, 0},
			window: 1,
			want:   []float64{5, -3, 0},
		},
		{
			name:   "zero window treated as one",
			values: []float64{7},
			window: 0,
			want:   []float64{7},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RollingMean(tt.values, tt.window)
			if len(got) != len(tt.want) {
				t.Fatalf("length = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if !almostEqual(got[i], tt.want[i]) {
					t.Errorf("means[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLatestFirst(t *testing.T) {
	tests := []struct {
		name   string
		series []float64
		n      int
		want   []float64
	}{
		{
			name:   "reverses and truncates",
			series: []float64{1, 2, 3, 4, 5},
			n:      3,
			want:   []float64{5, 4, 3},
		},
		{
			name:   "short series padded with latest value",
			series: []float64{24.0, 28.3},
			n:      4,
			want:   []float64{28.3, 24.0, 28.3, 28.3},
		},
		{
			name:   "empty series is all zeros",
			series: nil,
			n:      3,
			want:   []float64{0, 0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := latestFirst(tt.series, tt.n); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("latestFirst(%v, %d) = %v, want %v", tt.series, tt.n, got, tt.want)
			}
		})
	}
}

func TestCompute(t *testing.T) {
	inflation := []Point{
		{Year: 2023, Value: 24.0},
		{Year: 2024, Value: 28.3},
		{Year: 2025, Value: 14.0},
	}

	// Constant smoothed sentiment of 5: effect = 5 * Σweights * 0.03 = 0.48.
	// Momentum = 0.60*14 + 0.25*28.3 + 0.10*24 + 0.05*14 = 18.575.
	b, err := Compute([]float64{5.0}, inflation)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	if !almostEqual(b.SentimentEffect, 0.48) {
		t.Errorf("SentimentEffect = %v, want 0.48", b.SentimentEffect)
	}
	if !almostEqual(b.InflationMomentum, 18.575) {
		t.Errorf("InflationMomentum = %v, want 18.575", b.InflationMomentum)
	}
	if !almostEqual(b.Intercept, 0.5) {
		t.Errorf("Intercept = %v, want 0.5", b.Intercept)
	}
	if !almostEqual(b.Value, 19.555) {
		t.Errorf("Value = %v, want 19.555", b.Value)
	}
	if b.ForecastYear != 2026 {
		t.Errorf("ForecastYear = %d, want 2026", b.ForecastYear)
	}
}

func TestCompute_NoInflation(t *testing.T) {
	if _, err := Compute([]float64{1}, nil); err == nil {
		t.Fatal("expected error with no inflation history")
	}
}

func TestCompute_NoSentiment(t *testing.T) {
	inflation := []Point{{Year: 2025, Value: 10.0}}

	b, err := Compute(nil, inflation)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if b.SentimentEffect != 0 {
		t.Errorf("empty sentiment should contribute nothing, got %v", b.SentimentEffect)
	}
	if !almostEqual(b.Value, 0.5+10.0) {
		t.Errorf("Value = %v, want 10.5", b.Value)
	}
}

func TestRun(t *testing.T) {
	articles := []model.Article{
		article("2025-08-01", "positive"),
		article("2025-08-02", "positive"),
	}
	inflation := []Point{{Year: 2025, Value: 14.0}}

	b, err := Run(articles, inflation)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if b.SentimentEffect <= 0 {
		t.Errorf("positive-only sentiment should push the effect up, got %v", b.SentimentEffect)
	}
	if b.ForecastYear != 2026 {
		t.Errorf("ForecastYear = %d, want 2026", b.ForecastYear)
	}
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "forecast.csv")

	actuals := []Point{
		{Year: 2025, Value: 14.0},
		{Year: 2024, Value: 28.3},
	}
	b := &Breakdown{Value: 19.555, ForecastYear: 2026}

	if err := WriteCSV(path, actuals, b); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	want := []string{
		"date,inflation,type",
		"2024-01-01,28.3,actual",
		"2025-01-01,14,actual",
		"2026-01-01,19.555,forecast",
	}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("output mismatch:\ngot  %v\nwant %v", lines, want)
	}
}

func TestFallbackSeries(t *testing.T) {
	series := FallbackSeries()

	if len(series) == 0 {
		t.Fatal("fallback series is empty")
	}
	for i := 1; i < len(series); i++ {
		if series[i].Year <= series[i-1].Year {
			t.Errorf("fallback series not sorted at index %d", i)
		}
	}
	if series[0].Year != 2020 {
		t.Errorf("fallback series should start at 2020, got %d", series[0].Year)
	}
}
