package sentiment

import (
	"fmt"
	"strings"

	"github.com/rmansour/kashef/internal/model"
)

// NewClassifier creates a classification provider based on configuration.
func NewClassifier(config Config) (Classifier, error) {
	provider := strings.ToLower(config.Provider)

	switch provider {
	case "huggingface", "hf", "":
		return NewHuggingFaceProvider(config)

	case "openai":
		return NewOpenAIProvider(config)

	case "ollama":
		return NewOllamaProvider(config)

	default:
		return nil, fmt.Errorf("unknown classifier provider: %s (supported: huggingface, openai, ollama)", config.Provider)
	}
}

// ConfigFromModel converts model.ClassifierConfig to sentiment.Config.
func ConfigFromModel(mc model.ClassifierConfig, httpProxy, httpsProxy string) Config {
	return Config{
		Provider:     mc.Provider,
		Model:        mc.Model,
		APIKey:       mc.APIKey,
		BaseURL:      mc.BaseURL,
		Timeout:      mc.Timeout,
		MaxTextRunes: mc.MaxTextRunes,
		HTTPProxy:    httpProxy,
		HTTPSProxy:   httpsProxy,
	}
}
