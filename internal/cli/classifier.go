package cli

import (
	"fmt"
	"os"

	"github.com/rmansour/kashef/internal/model"
	"github.com/rmansour/kashef/internal/sentiment"
	"github.com/spf13/cobra"
)

// Classifier flags shared by demo, classify and scrape.
var (
	providerName    string
	modelName       string
	providerTimeout int
)

func addClassifierFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&providerName, "provider", "", "classifier provider (huggingface, openai, ollama)")
	cmd.Flags().StringVar(&modelName, "model", "", "model name (provider-specific)")
	cmd.Flags().IntVar(&providerTimeout, "classify-timeout", 0, "per-request classification timeout in seconds")
}

// buildClassifier resolves provider configuration from flags, environment
// variables and defaults, then constructs the provider. API keys come from
// the environment only, never from flags or the config file.
func buildClassifier(cfg *model.Config) (sentiment.Classifier, error) {
	cc := cfg.Classifier

	if providerName != "" {
		cc.Provider = providerName
	}
	if modelName != "" {
		cc.Model = modelName
	}
	if providerTimeout > 0 {
		cc.Timeout = providerTimeout
	}

	switch cc.Provider {
	case "huggingface", "hf", "":
		// Anonymous access works but is heavily rate limited
		cc.APIKey = os.Getenv("HF_API_TOKEN")
	case "openai":
		cc.APIKey = os.Getenv("OPENAI_API_KEY")
		if cc.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "ollama":
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cc.BaseURL = baseURL
		}
	}

	classifier, err := sentiment.NewClassifier(sentiment.ConfigFromModel(cc, cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy))
	if err != nil {
		return nil, fmt.Errorf("create classifier: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Classifier: %s (%s)\n", classifier.Name(), cc.Model)
	}

	return classifier, nil
}
