package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server settings
	Port string `json:"port"`
	Host string `json:"host"`

	// Hugging Face settings
	HFAPIToken        string        `json:"-"` // Don't expose in JSON
	SummarizerURL     string        `json:"summarizer_url"`
	SummarizerTimeout time.Duration `json:"summarizer_timeout"`

	// Scraper settings
	SearchURL        string        `json:"search_url"`
	SearchQueryParam string        `json:"search_query_param"`
	TitleSelector    string        `json:"title_selector"`
	ContentSelector  string        `json:"content_selector"`
	UserAgent        string        `json:"user_agent"`
	ScraperTimeout   time.Duration `json:"scraper_timeout"`

	// Digest settings
	ArticleDelay    time.Duration `json:"article_delay"`
	MaxArticles     int           `json:"max_articles"`
	DefaultArticles int           `json:"default_articles"`

	// API settings
	APIAuthToken string `json:"-"` // Don't expose in JSON
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	config := &Config{
		Port:              getEnvOrDefault("PORT", "8080"),
		Host:              getEnvOrDefault("HOST", "0.0.0.0"),
		HFAPIToken:        getEnvOrDefault("HF_API_TOKEN", ""),
		SummarizerURL:     getEnvOrDefault("HF_SUMMARIZER_URL", "https://api-inference.huggingface.co/models/facebook/bart-large-cnn"),
		SummarizerTimeout: getEnvOrDefaultDuration("SUMMARIZER_TIMEOUT", 60*time.Second),
		SearchURL:         getEnvOrDefault("SEARCH_URL", "https://www.expresscomputer.in/"),
		SearchQueryParam:  getEnvOrDefault("SEARCH_QUERY_PARAM", "s"),
		TitleSelector:     getEnvOrDefault("TITLE_SELECTOR", "h2.title"),
		ContentSelector:   getEnvOrDefault("CONTENT_SELECTOR", "div.entry-content.clearfix.single-post-content"),
		UserAgent:         getEnvOrDefault("SCRAPER_USER_AGENT", "Mozilla/5.0"),
		ScraperTimeout:    getEnvOrDefaultDuration("SCRAPER_TIMEOUT", 10*time.Second),
		ArticleDelay:      getEnvOrDefaultDuration("ARTICLE_DELAY", 2*time.Second),
		MaxArticles:       getEnvOrDefaultInt("MAX_ARTICLES", 5),
		DefaultArticles:   getEnvOrDefaultInt("DEFAULT_ARTICLES", 3),
		APIAuthToken:      getEnvOrDefault("API_AUTH_TOKEN", ""),
	}

	return config, config.validate()
}

// validate checks that configuration values are usable.
// HF_API_TOKEN is deliberately not required: requests without it fail at the
// summarization endpoint and are reported per article.
func (c *Config) validate() error {
	if c.SearchURL == "" {
		return &ConfigError{Field: "SEARCH_URL", Message: "search URL is required"}
	}
	if c.SearchQueryParam == "" {
		return &ConfigError{Field: "SEARCH_QUERY_PARAM", Message: "query parameter name is required"}
	}
	if c.TitleSelector == "" {
		return &ConfigError{Field: "TITLE_SELECTOR", Message: "title selector is required"}
	}
	if c.ContentSelector == "" {
		return &ConfigError{Field: "CONTENT_SELECTOR", Message: "content selector is required"}
	}
	if c.ScraperTimeout <= 0 {
		return &ConfigError{Field: "SCRAPER_TIMEOUT", Message: "must be positive"}
	}
	if c.SummarizerTimeout <= 0 {
		return &ConfigError{Field: "SUMMARIZER_TIMEOUT", Message: "must be positive"}
	}
	if c.ArticleDelay < 0 {
		return &ConfigError{Field: "ARTICLE_DELAY", Message: "must not be negative"}
	}
	if c.MaxArticles < 1 {
		return &ConfigError{Field: "MAX_ARTICLES", Message: "must be at least 1"}
	}
	if c.DefaultArticles < 1 || c.DefaultArticles > c.MaxArticles {
		return &ConfigError{Field: "DEFAULT_ARTICLES", Message: "must be between 1 and MAX_ARTICLES"}
	}
	return nil
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvOrDefaultInt returns environment variable value as int or default if not set
func getEnvOrDefaultInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvOrDefaultDuration parses values like "2s" or "500ms"
func getEnvOrDefaultDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
