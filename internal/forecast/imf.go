package forecast

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"time"

	retry "github.com/sethvargo/go-retry"
)

// Point is one annual inflation observation (percent change, year over year).
type Point struct {
	Year  int
	Value float64
}

// IMFClient fetches annual inflation series from the IMF datamapper API.
type IMFClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewIMFClient creates a datamapper client.
func NewIMFClient(timeout time.Duration) *IMFClient {
	return &IMFClient{
		baseURL:    "https://www.imf.org/external/datamapper/api/v1",
		httpClient: &http.Client{Timeout: timeout},
	}
}

// WithBaseURL overrides the API base URL (used in tests).
func (c *IMFClient) WithBaseURL(url string) *IMFClient {
	c.baseURL = url
	return c
}

// imfResponse mirrors the datamapper payload:
// {"values": {"PCPIPCH": {"EGY": {"2020": 5.7, ...}}}}
type imfResponse struct {
	Values map[string]map[string]map[string]float64 `json:"values"`
}

// FetchInflation retrieves the indicator series for a country, keeping years
// >= fromYear, sorted ascending. Transient failures are retried with
// backoff.
func (c *IMFClient) FetchInflation(ctx context.Context, indicator, country string, fromYear int) ([]Point, error) {
	url := fmt.Sprintf("%s/%s/%s", c.baseURL, indicator, country)

	var body []byte
	backoff := retry.NewExponential(1 * time.Second)
	err := retry.Do(ctx, retry.WithMaxRetries(3, backoff), func(ctx context.Context) error {
		var reqErr error
		body, reqErr = c.get(ctx, url)
		return reqErr
	})
	if err != nil {
		return nil, fmt.Errorf("IMF API: %w", err)
	}

	var resp imfResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal IMF response: %w", err)
	}

	series, ok := resp.Values[indicator][country]
	if !ok {
		return nil, fmt.Errorf("IMF response has no %s series for %s", indicator, country)
	}

	points := make([]Point, 0, len(series))
	for yearStr, value := range series {
		year, err := strconv.Atoi(yearStr)
		if err != nil || year < fromYear {
			continue
		}
		points = append(points, Point{Year: year, Value: value})
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Year < points[j].Year })

	if len(points) == 0 {
		return nil, fmt.Errorf("IMF series for %s has no data from %d", country, fromYear)
	}

	return points, nil
}

func (c *IMFClient) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, retry.RetryableError(fmt.Errorf("fetch: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, retry.RetryableError(fmt.Errorf("read body: %w", err))
	}

	if resp.StatusCode >= 500 {
		return nil, retry.RetryableError(fmt.Errorf("status %d", resp.StatusCode))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	return body, nil
}

// FallbackSeries is used when the IMF API is unreachable, so the forecast
// still produces output offline. Annual Egyptian CPI inflation, percent.
func FallbackSeries() []Point {
	return []Point{
		{Year: 2020, Value: 5.7},
		{Year: 2021, Value: 5.2},
		{Year: 2022, Value: 8.5},
		{Year: 2023, Value: 24.0},
		{Year: 2024, Value: 28.3},
		{Year: 2025, Value: 14.0},
	}
}
