package model

import (
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Classifier.Provider != "huggingface" {
		t.Errorf("default provider = %q", cfg.Classifier.Provider)
	}
	if cfg.Classifier.Model == "" {
		t.Error("default model is empty")
	}
	if cfg.Classifier.MaxTextRunes != 1500 {
		t.Errorf("MaxTextRunes = %d, want 1500", cfg.Classifier.MaxTextRunes)
	}
	if len(cfg.Scrape.Sources) == 0 {
		t.Error("no default sources")
	}
	if cfg.Scrape.RatePerDomain <= 0 {
		t.Error("rate limit not set")
	}
	if cfg.Concurrency.Workers < 1 {
		t.Errorf("Workers = %d, want at least 1", cfg.Concurrency.Workers)
	}
	if cfg.Forecast.Country != "EGY" || cfg.Forecast.Indicator != "PCPIPCH" {
		t.Errorf("forecast defaults = %s/%s", cfg.Forecast.Country, cfg.Forecast.Indicator)
	}
}

func TestConfig_YAMLRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Classifier.APIKey = "secret"

	data, err := yaml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	// API keys never land in config files
	if strings.Contains(string(data), "secret") {
		t.Error("API key serialized into YAML")
	}

	var loaded Config
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if loaded.Classifier.Provider != cfg.Classifier.Provider {
		t.Errorf("provider round trip: %q", loaded.Classifier.Provider)
	}
	if loaded.HTTP.Timeout != cfg.HTTP.Timeout {
		t.Errorf("timeout round trip: %v", loaded.HTTP.Timeout)
	}
	if len(loaded.Scrape.Sources) != len(cfg.Scrape.Sources) {
		t.Errorf("sources round trip: %v", loaded.Scrape.Sources)
	}
}
