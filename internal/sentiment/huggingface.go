package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	retry "github.com/sethvargo/go-retry"

	"github.com/rmansour/kashef/internal/util"
)

// HuggingFaceProvider implements Classifier against the Hugging Face
// Inference API. This is the default provider: the pretrained CAMeL-BERT
// Arabic sentiment model is served there without any local model files.
type HuggingFaceProvider struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	config     Config
}

// Hugging Face API structures
type hfRequest struct {
	Inputs  string    `json:"inputs"`
	Options hfOptions `json:"options"`
}

type hfOptions struct {
	WaitForModel bool `json:"wait_for_model"`
	UseCache     bool `json:"use_cache"`
}

type hfCandidate struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type hfError struct {
	Error         string  `json:"error"`
	EstimatedTime float64 `json:"estimated_time,omitempty"`
}

// NewHuggingFaceProvider creates a Hugging Face Inference API provider.
// An API key is optional but avoids the anonymous rate limits.
func NewHuggingFaceProvider(config Config) (*HuggingFaceProvider, error) {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = "https://api-inference.huggingface.co"
	}

	timeout := time.Duration(config.Timeout) * time.Second
	if timeout == 0 {
		// Cold models can take a while to load on the inference backend
		timeout = 60 * time.Second
	}

	return &HuggingFaceProvider{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  config.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(config.HTTPProxy, config.HTTPSProxy),
			},
		},
		config: config,
	}, nil
}

// Name returns the provider name
func (p *HuggingFaceProvider) Name() string {
	return "huggingface"
}

// IsAvailable checks if the provider is properly configured and the model
// endpoint answers.
func (p *HuggingFaceProvider) IsAvailable(ctx context.Context) bool {
	_, err := p.Classify(ctx, "تجربة")
	return err == nil
}

// Classify sends the text to the hosted model and returns the top-ranked
// sentiment. HTTP 503 means the model is still loading; those responses are
// retried with backoff before giving up.
func (p *HuggingFaceProvider) Classify(ctx context.Context, text string) (*Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("empty text")
	}

	model := p.config.Model
	if model == "" {
		model = DefaultArabicModel
	}

	text = Truncate(text, p.config.MaxTextRunes)

	body, err := json.Marshal(hfRequest{
		Inputs:  text,
		Options: hfOptions{WaitForModel: true, UseCache: true},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	var candidates []hfCandidate
	backoff := retry.NewExponential(2 * time.Second)
	err = retry.Do(ctx, retry.WithMaxRetries(3, backoff), func(ctx context.Context) error {
		var reqErr error
		candidates, reqErr = p.makeRequest(ctx, model, body)
		return reqErr
	})
	if err != nil {
		return nil, fmt.Errorf("huggingface API error: %w", err)
	}

	if len(candidates) == 0 {
		return nil, fmt.Errorf("no candidates returned by model %s", model)
	}

	// The API returns candidates ranked best-first, but sort anyway so the
	// top entry never depends on backend behavior.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	ranked := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		ranked = append(ranked, Candidate{
			Label: normalizeLabel(c.Label),
			Score: c.Score,
		})
	}

	return &Result{
		Label:      ranked[0].Label,
		Score:      ranked[0].Score,
		Candidates: ranked,
		Model:      model,
	}, nil
}

func (p *HuggingFaceProvider) makeRequest(ctx context.Context, model string, body []byte) ([]hfCandidate, error) {
	url := fmt.Sprintf("%s/models/%s", p.baseURL, model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	httpResp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		var apiErr hfError
		msg := string(respBody)
		if err := json.Unmarshal(respBody, &apiErr); err == nil && apiErr.Error != "" {
			msg = apiErr.Error
		}

		// 503 = model loading, 429 = rate limited: worth retrying
		if httpResp.StatusCode == http.StatusServiceUnavailable || httpResp.StatusCode == http.StatusTooManyRequests {
			return nil, retry.RetryableError(fmt.Errorf("API error (%d): %s", httpResp.StatusCode, msg))
		}
		return nil, fmt.Errorf("API error (%d): %s", httpResp.StatusCode, msg)
	}

	return parseHFCandidates(respBody)
}

// parseHFCandidates handles both response shapes of the text-classification
// task: a flat list of candidates, or one list per input wrapped in an outer
// array (the shape returned for single-string inputs on most backends).
func parseHFCandidates(body []byte) ([]hfCandidate, error) {
	var nested [][]hfCandidate
	if err := json.Unmarshal(body, &nested); err == nil {
		if len(nested) == 0 {
			return nil, fmt.Errorf("empty response")
		}
		return nested[0], nil
	}

	var flat []hfCandidate
	if err := json.Unmarshal(body, &flat); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	return flat, nil
}
