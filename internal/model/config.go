package model

import "time"

// Config is the full claimsift configuration, loadable from
// ~/.claimsift/config.yaml via viper with CLAIMSIFT_* env overrides.
type Config struct {
	Redis    RedisConfig    `json:"redis" yaml:"redis" mapstructure:"redis"`
	Database DatabaseConfig `json:"database" yaml:"database" mapstructure:"database"`
	Oracle   OracleConfig   `json:"oracle" yaml:"oracle" mapstructure:"oracle"`
	Worker   WorkerConfig   `json:"worker" yaml:"worker" mapstructure:"worker"`
	Cache    CacheConfig    `json:"cache" yaml:"cache" mapstructure:"cache"`
}

// RedisConfig configures the queue broker and event channel connection
type RedisConfig struct {
	// URL is a redis:// connection URL; takes precedence over Addr
	URL      string `json:"url" yaml:"url" mapstructure:"url"`
	Addr     string `json:"addr" yaml:"addr" mapstructure:"addr"`
	Password string `json:"password" yaml:"password" mapstructure:"password"`
	DB       int    `json:"db" yaml:"db" mapstructure:"db"`
}

// DatabaseConfig configures the Postgres claim/verdict store. An empty URL
// selects the in-memory store (local runs and tests).
type DatabaseConfig struct {
	URL             string        `json:"url" yaml:"url" mapstructure:"url"`
	MaxOpenConns    int           `json:"max_open_conns" yaml:"max_open_conns" mapstructure:"max_open_conns"`
	MaxIdleConns    int           `json:"max_idle_conns" yaml:"max_idle_conns" mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `json:"conn_max_lifetime" yaml:"conn_max_lifetime" mapstructure:"conn_max_lifetime"`
}

// OracleConfig configures the fact-check oracle client. An empty APIKey
// enables degraded mode: claims are marked VERIFIED without a verdict.
type OracleConfig struct {
	APIKey    string  `json:"api_key" yaml:"api_key" mapstructure:"api_key"`
	BaseURL   string  `json:"base_url" yaml:"base_url" mapstructure:"base_url"`
	Model     string  `json:"model" yaml:"model" mapstructure:"model"`
	MaxTokens int     `json:"max_tokens" yaml:"max_tokens" mapstructure:"max_tokens"`
	Timeout   int     `json:"timeout" yaml:"timeout" mapstructure:"timeout"` // seconds
	RateLimit float64 `json:"rate_limit" yaml:"rate_limit" mapstructure:"rate_limit"`
	RateBurst int     `json:"rate_burst" yaml:"rate_burst" mapstructure:"rate_burst"`
}

// WorkerConfig configures the verification worker pool and retry policy
type WorkerConfig struct {
	Concurrency int           `json:"concurrency" yaml:"concurrency" mapstructure:"concurrency"`
	MaxAttempts int           `json:"max_attempts" yaml:"max_attempts" mapstructure:"max_attempts"`
	BackoffBase time.Duration `json:"backoff_base" yaml:"backoff_base" mapstructure:"backoff_base"`
	PollTimeout time.Duration `json:"poll_timeout" yaml:"poll_timeout" mapstructure:"poll_timeout"`
	StaleAfter  time.Duration `json:"stale_after" yaml:"stale_after" mapstructure:"stale_after"`
}

// CacheConfig configures the verdict cache used to avoid paying the oracle
// twice for identical claim text.
type CacheConfig struct {
	Enabled         bool          `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	TTL             time.Duration `json:"ttl" yaml:"ttl" mapstructure:"ttl"`
	CleanupInterval time.Duration `json:"cleanup_interval" yaml:"cleanup_interval" mapstructure:"cleanup_interval"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Database: DatabaseConfig{
			MaxOpenConns:    25,
			MaxIdleConns:    25,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Oracle: OracleConfig{
			BaseURL:   "https://api.perplexity.ai",
			Model:     "sonar",
			MaxTokens: 1000,
			Timeout:   30,
			RateLimit: 2,
			RateBurst: 4,
		},
		Worker: WorkerConfig{
			Concurrency: 4,
			MaxAttempts: 3,
			BackoffBase: time.Second,
			PollTimeout: 5 * time.Second,
			StaleAfter:  10 * time.Minute,
		},
		Cache: CacheConfig{
			Enabled:         true,
			TTL:             time.Hour,
			CleanupInterval: 10 * time.Minute,
		},
	}
}
