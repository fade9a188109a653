package sentiment

import (
	"context"
	"strings"
)

// Label is a sentiment category. The vocabulary belongs to the external model;
// these constants cover the usual three-way split, but providers pass unknown
// labels through untouched.
type Label string

const (
	LabelPositive Label = "positive"
	LabelNegative Label = "negative"
	LabelNeutral  Label = "neutral"
)

// KnownLabels is the label vocabulary of the default Arabic model.
var KnownLabels = []Label{LabelPositive, LabelNegative, LabelNeutral}

// IsKnownLabel reports whether l belongs to the default vocabulary.
func IsKnownLabel(l Label) bool {
	for _, k := range KnownLabels {
		if l == k {
			return true
		}
	}
	return false
}

// Candidate is one (label, confidence) pair from the model's ranked output.
type Candidate struct {
	Label Label   `json:"label"`
	Score float64 `json:"score"`
}

// Result is the top-ranked classification for one text.
type Result struct {
	Label Label   `json:"label"`
	Score float64 `json:"score"` // confidence in [0,1]

	// Candidates is the full ranked list when the provider returns one,
	// best first. Candidates[0] always equals (Label, Score).
	Candidates []Candidate `json:"candidates,omitempty"`

	// Model is the model that produced the result.
	Model string `json:"model,omitempty"`
}

// Classifier is the external sentiment-classification capability. The model
// itself (training, architecture, tokenization) is an opaque collaborator;
// implementations only move text in and a ranked label list out.
type Classifier interface {
	// Name returns the provider name
	Name() string

	// Classify returns the top-ranked sentiment for the given text
	Classify(ctx context.Context, text string) (*Result, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// Config holds classifier provider configuration
type Config struct {
	// Provider name: "huggingface", "openai", "ollama"
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for Hugging Face / OpenAI
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama, self-hosted inference)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTextRunes truncates input before submission
	MaxTextRunes int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:     "huggingface",
		Model:        DefaultArabicModel,
		Timeout:      60,
		MaxTextRunes: 1500,
	}
}

// DefaultArabicModel is the pretrained Arabic sentiment model used when no
// other model is configured.
const DefaultArabicModel = "CAMeL-Lab/bert-base-arabic-camelbert-msa-sentiment"

// Truncate caps text at max runes. Arabic characters are multi-byte, so the
// cut happens on rune boundaries, never mid-character.
func Truncate(text string, max int) string {
	if max <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}

// normalizeLabel lower-cases a provider label so "POSITIVE" and "positive"
// compare equal across providers.
func normalizeLabel(raw string) Label {
	return Label(strings.ToLower(strings.TrimSpace(raw)))
}
