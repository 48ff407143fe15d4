package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	// Log configuration
	Log LogConfig `mapstructure:"log"`

	// Server configuration
	Server ServerConfig `mapstructure:"server"`

	// DocumentSearch configures the full-text document search backend
	DocumentSearch DocumentSearchConfig `mapstructure:"document_search"`

	// Warehouse configures the historical metadata warehouse backend
	Warehouse WarehouseConfig `mapstructure:"warehouse"`

	// Relevance configures embedding-based filtering
	Relevance RelevanceConfig `mapstructure:"relevance"`

	// Fetch configures parallel content enrichment
	Fetch FetchConfig `mapstructure:"fetch"`

	// Embedding configuration
	Embedding EmbeddingConfig `mapstructure:"embedding"`

	// Translation configuration
	Translation TranslationConfig `mapstructure:"translation"`

	// Media registry configuration
	Media MediaConfig `mapstructure:"media"`

	// CircuitBreaker configuration for the embedding provider
	CircuitBreaker CircuitBreakerConfig `mapstructure:"circuit_breaker"`

	// Cache configuration for orchestrated reports
	Cache CacheConfig `mapstructure:"cache"`

	// Alert configuration for outage notification
	Alert AlertConfig `mapstructure:"alert"`

	// Telemetry configuration
	Telemetry TelemetryConfig `mapstructure:"telemetry"`

	// Checkpoint configuration for resumable orchestration runs
	Checkpoint CheckpointConfig `mapstructure:"checkpoint"`
}

// AlertConfig holds configuration for alerting
type AlertConfig struct {
	Enabled  bool     `mapstructure:"enabled"`
	SMTPHost string   `mapstructure:"smtp_host"`
	SMTPPort int      `mapstructure:"smtp_port"`
	Username string   `mapstructure:"username"`
	Password string   `mapstructure:"password"`
	From     string   `mapstructure:"from"`
	To       []string `mapstructure:"to"`
}

// TelemetryConfig holds telemetry configuration
type TelemetryConfig struct {
	ParquetPath string `mapstructure:"parquet_path"`
	DbURL       string `mapstructure:"db_url"`
}

// CheckpointConfig holds configuration for resumable orchestration runs
type CheckpointConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Dir     string `mapstructure:"dir"`
	// MaxAttempts caps how many times a stale run is resumed before it
	// is started over from scratch.
	MaxAttempts int `mapstructure:"max_attempts"`
	MaxAgeHours int `mapstructure:"max_age_hours"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // gin mode: debug, release, test
}

// DocumentSearchConfig holds settings for the full-text search backend
type DocumentSearchConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	MaxRecords     int    `mapstructure:"max_records"`
	// Timespan is the backend's rolling-window unit (e.g. "3m"), not an
	// absolute date range.
	Timespan string `mapstructure:"timespan"`
}

// WarehouseConfig holds settings for the metadata warehouse backend
type WarehouseConfig struct {
	Driver string `mapstructure:"driver"` // postgres
	DSN    string `mapstructure:"dsn"`
	Table  string `mapstructure:"table"`
	// WindowDays is the half-width of the date window centered on the
	// event date.
	WindowDays int `mapstructure:"window_days"`
	MaxResults int `mapstructure:"max_results"`
	// TrustedDomains is AND-ed into every query; the warehouse lacks
	// full-text verification so it trades recall for precision.
	TrustedDomains []string `mapstructure:"trusted_domains"`
	// ExcludedSources drops video/social platforms that are not articles.
	ExcludedSources []string `mapstructure:"excluded_sources"`
}

// RelevanceConfig holds settings for similarity filtering
type RelevanceConfig struct {
	// Threshold is the minimum cosine similarity an article title must
	// score against the topic. Deliberately tunable; the steady-state
	// value is still being calibrated in production.
	Threshold float64 `mapstructure:"threshold"`
	// PerCountryCap is the number of top-ranked articles kept per country.
	PerCountryCap int `mapstructure:"per_country_cap"`
}

// FetchConfig holds settings for parallel content fetching
type FetchConfig struct {
	Workers        int `mapstructure:"workers"`
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
	// RequestsPerSecond paces page fetches; zero disables pacing.
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
}

// EmbeddingConfig holds embedding provider configuration
type EmbeddingConfig struct {
	Provider string `mapstructure:"provider"` // openai
	Model    string `mapstructure:"model"`
	APIKey   string `mapstructure:"api_key"`
	BaseURL  string `mapstructure:"base_url"`
}

// TranslationConfig holds title translation configuration
type TranslationConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	Model          string `mapstructure:"model"`
	APIKey         string `mapstructure:"api_key"`
	BaseURL        string `mapstructure:"base_url"`
	TargetLanguage string `mapstructure:"target_language"`
}

// MediaConfig holds media registry configuration
type MediaConfig struct {
	// RegistryPath points at a YAML file of per-country outlet records.
	// Empty means the embedded default set.
	RegistryPath string `mapstructure:"registry_path"`
}

// CircuitBreakerConfig holds configuration for circuit breaking
type CircuitBreakerConfig struct {
	Enabled          bool    `mapstructure:"enabled"`
	MaxRequests      uint32  `mapstructure:"max_requests"`
	Interval         int     `mapstructure:"interval"` // in seconds
	Timeout          int     `mapstructure:"timeout"`  // in seconds
	ReadyToTripRatio float64 `mapstructure:"ready_to_trip_ratio"`
}

// CacheConfig holds report cache configuration
type CacheConfig struct {
	Enabled    bool `mapstructure:"enabled"`
	TTLSeconds int  `mapstructure:"ttl_seconds"`
}

// Load loads configuration from file and environment variables
func Load() (*Config, error) {
	setDefaults()

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	overrideWithEnv(config)

	return config, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Log defaults
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")

	// Server defaults
	viper.SetDefault("server.host", "localhost")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "debug")

	// Document search defaults
	viper.SetDefault("document_search.base_url", "https://api.gdeltproject.org/api/v2/doc/doc")
	viper.SetDefault("document_search.timeout_seconds", 10)
	viper.SetDefault("document_search.max_records", 250)
	viper.SetDefault("document_search.timespan", "3m")

	// Warehouse defaults
	viper.SetDefault("warehouse.driver", "postgres")
	viper.SetDefault("warehouse.table", "gkg_partitioned")
	viper.SetDefault("warehouse.window_days", 4)
	viper.SetDefault("warehouse.max_results", 30)
	viper.SetDefault("warehouse.trusted_domains", []string{
		"reuters.com", "apnews.com", "bbc.co.uk", "bbc.com", "cnn.com",
		"nytimes.com", "washingtonpost.com", "theguardian.com",
		"aljazeera.com", "france24.com", "dw.com", "scmp.com",
		"japantimes.co.jp", "koreaherald.com",
	})
	viper.SetDefault("warehouse.excluded_sources", []string{
		"youtube.com", "twitter.com", "facebook.com", "instagram.com",
	})

	// Relevance defaults
	viper.SetDefault("relevance.threshold", 0.15)
	viper.SetDefault("relevance.per_country_cap", 5)

	// Fetch defaults
	viper.SetDefault("fetch.workers", 10)
	viper.SetDefault("fetch.timeout_seconds", 15)
	viper.SetDefault("fetch.requests_per_second", 0)

	// Embedding defaults
	viper.SetDefault("embedding.provider", "openai")
	viper.SetDefault("embedding.model", "text-embedding-3-small")

	// Translation defaults
	viper.SetDefault("translation.enabled", false)
	viper.SetDefault("translation.model", "gpt-4o-mini")
	viper.SetDefault("translation.target_language", "English")

	// Circuit breaker defaults
	viper.SetDefault("circuit_breaker.enabled", true)
	viper.SetDefault("circuit_breaker.max_requests", 3)
	viper.SetDefault("circuit_breaker.interval", 60)
	viper.SetDefault("circuit_breaker.timeout", 30)
	viper.SetDefault("circuit_breaker.ready_to_trip_ratio", 0.6)

	// Cache defaults
	viper.SetDefault("cache.enabled", true)
	viper.SetDefault("cache.ttl_seconds", 1800)

	// Alert defaults
	viper.SetDefault("alert.enabled", false)
	viper.SetDefault("alert.smtp_port", 587)

	// Checkpoint defaults
	viper.SetDefault("checkpoint.enabled", false)
	viper.SetDefault("checkpoint.max_attempts", 3)
	viper.SetDefault("checkpoint.max_age_hours", 24)

	// Telemetry defaults
	home, err := os.UserHomeDir()
	if err == nil {
		viper.SetDefault("telemetry.parquet_path", fmt.Sprintf("%s/.globescope/telemetry", home))
	}
}

// overrideWithEnv overrides config with environment variables
func overrideWithEnv(config *Config) {
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		if config.Embedding.APIKey == "" {
			config.Embedding.APIKey = apiKey
		}
		if config.Translation.APIKey == "" {
			config.Translation.APIKey = apiKey
		}
	}

	if dsn := os.Getenv("WAREHOUSE_DSN"); dsn != "" {
		config.Warehouse.DSN = dsn
	}
	if driver := os.Getenv("WAREHOUSE_DRIVER"); driver != "" {
		config.Warehouse.Driver = driver
	}

	if baseURL := os.Getenv("DOC_SEARCH_BASE_URL"); baseURL != "" {
		config.DocumentSearch.BaseURL = baseURL
	}

	if host := os.Getenv("SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		viper.Set("server.port", port)
	}

	if domains := os.Getenv("TRUSTED_DOMAINS"); domains != "" {
		config.Warehouse.TrustedDomains = splitAndTrim(domains)
	}
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
