package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements Classifier on top of an OpenAI-compatible chat
// API. Useful when no hosted classification endpoint is available: the chat
// model is prompted to act as a three-way sentiment classifier and answer
// with strict JSON.
type OpenAIProvider struct {
	client *openai.Client
	config Config
}

const openaiSystemPrompt = `You are a sentiment classifier for Arabic and English text.
Reply with a single JSON object and nothing else:
{"label": "positive" | "negative" | "neutral", "score": <confidence between 0.0 and 1.0>}`

type openaiVerdict struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// NewOpenAIProvider creates an OpenAI-compatible provider.
func NewOpenAIProvider(config Config) (*OpenAIProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// IsAvailable checks if the provider is properly configured
func (p *OpenAIProvider) IsAvailable(ctx context.Context) bool {
	_, err := p.client.ListModels(ctx)
	return err == nil
}

// Classify asks the chat model for a sentiment verdict on the text.
func (p *OpenAIProvider) Classify(ctx context.Context, text string) (*Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("empty text")
	}

	model := p.config.Model
	if model == "" || model == DefaultArabicModel {
		model = openai.GPT4oMini
	}

	text = Truncate(text, p.config.MaxTextRunes)

	timeout := time.Duration(p.config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	chatReq := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: openaiSystemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: text,
			},
		},
		MaxTokens:   64,
		Temperature: 0, // classification must be deterministic across runs
	}

	resp, err := p.client.CreateChatCompletion(ctxWithTimeout, chatReq)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	verdict, err := parseVerdict(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	label := normalizeLabel(verdict.Label)
	return &Result{
		Label:      label,
		Score:      clampScore(verdict.Score),
		Candidates: []Candidate{{Label: label, Score: clampScore(verdict.Score)}},
		Model:      model,
	}, nil
}

// parseVerdict extracts the JSON verdict from the model reply, tolerating
// surrounding prose or code fences.
func parseVerdict(content string) (*openaiVerdict, error) {
	content = strings.TrimSpace(content)

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in model reply: %q", content)
	}

	var verdict openaiVerdict
	if err := json.Unmarshal([]byte(content[start:end+1]), &verdict); err != nil {
		return nil, fmt.Errorf("unmarshal verdict: %w", err)
	}
	if verdict.Label == "" {
		return nil, fmt.Errorf("verdict missing label: %q", content)
	}

	return &verdict, nil
}

func clampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}
