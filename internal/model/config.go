package model

import (
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// Config holds the complete kashef configuration
type Config struct {
	HTTP        HTTPConfig        `yaml:"http"`
	Cache       CacheConfig       `yaml:"cache"`
	Classifier  ClassifierConfig  `yaml:"classifier"`
	Scrape      ScrapeConfig      `yaml:"scrape"`
	Forecast    ForecastConfig    `yaml:"forecast"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Output      OutputConfig      `yaml:"output"`
}

// HTTPConfig controls outbound HTTP behavior
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	UserAgent    string        `yaml:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
	HTTPProxy    string        `yaml:"http_proxy,omitempty"`
	HTTPSProxy   string        `yaml:"https_proxy,omitempty"`
}

// CacheConfig controls the fetched-page cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// ClassifierConfig selects and configures the sentiment provider
type ClassifierConfig struct {
	// Provider name: "huggingface", "openai", "ollama"
	Provider string `yaml:"provider"`

	// Model name (provider-specific)
	Model string `yaml:"model"`

	// APIKey for Hugging Face / OpenAI
	APIKey string `yaml:"-"`

	// BaseURL for custom endpoints (e.g., Ollama, self-hosted inference)
	BaseURL string `yaml:"base_url,omitempty"`

	// Timeout for classification requests, in seconds
	Timeout int `yaml:"timeout"`

	// MaxTextRunes truncates input text before submission
	MaxTextRunes int `yaml:"max_text_runes"`
}

// ScrapeConfig controls the news scraping pipeline
type ScrapeConfig struct {
	Sources       []string `yaml:"sources"`
	Pages         int      `yaml:"pages"`
	SearchTerm    string   `yaml:"search_term"`
	DatasetPath   string   `yaml:"dataset_path"`
	RatePerDomain float64  `yaml:"rate_per_domain"` // requests per second
	RateBurst     int      `yaml:"rate_burst"`
}

// ForecastConfig controls the inflation forecast calculation
type ForecastConfig struct {
	Country   string `yaml:"country"`   // ISO3 code for the IMF datamapper API
	Indicator string `yaml:"indicator"` // e.g. PCPIPCH (annual CPI inflation, %)
	FromYear  int    `yaml:"from_year"`
	OutPath   string `yaml:"out_path"`
}

// ConcurrencyConfig controls worker counts
type ConcurrencyConfig struct {
	Workers int `yaml:"workers"`
}

// OutputConfig controls terminal output
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "Kashef/0.2 (+https://github.com/rmansour/kashef)",
			MaxBodyBytes: 2_000_000,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       defaultCacheDir(),
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   6 * time.Hour,
		},
		Classifier: ClassifierConfig{
			Provider:     "huggingface",
			Model:        "CAMeL-Lab/bert-base-arabic-camelbert-msa-sentiment",
			Timeout:      60,
			MaxTextRunes: 1500,
		},
		Scrape: ScrapeConfig{
			Sources:       []string{"youm7", "almasry", "dailynews"},
			Pages:         3,
			SearchTerm:    "inflation",
			DatasetPath:   "data/arabic_news.csv",
			RatePerDomain: 0.5,
			RateBurst:     2,
		},
		Forecast: ForecastConfig{
			Country:   "EGY",
			Indicator: "PCPIPCH",
			FromYear:  2020,
			OutPath:   "data/egypt_inflation_forecast.csv",
		},
		Concurrency: ConcurrencyConfig{
			Workers: runtime.NumCPU(),
		},
	}
}

func defaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".kashef-cache"
	}
	return filepath.Join(home, ".kashef", "cache")
}
