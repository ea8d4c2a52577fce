package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"log"`
	Providers struct {
		Timeout time.Duration `yaml:"timeout"`
		Finnhub struct {
			APIKey  string `yaml:"api_key"`
			BaseURL string `yaml:"base_url"`
		} `yaml:"finnhub"`
		CoinGecko struct {
			BaseURL string `yaml:"base_url"`
		} `yaml:"coingecko"`
		Yahoo struct {
			BaseURL string `yaml:"base_url"`
		} `yaml:"yahoo"`
		AlphaVantage struct {
			APIKey  string `yaml:"api_key"`
			BaseURL string `yaml:"base_url"`
		} `yaml:"alphavantage"`
		NewsAPI struct {
			APIKey  string `yaml:"api_key"`
			BaseURL string `yaml:"base_url"`
		} `yaml:"newsapi"`
	} `yaml:"providers"`
	History struct {
		DefaultDays int           `yaml:"default_days"`
		CacheTTL    time.Duration `yaml:"cache_ttl"`
	} `yaml:"history"`
	Cache struct {
		MaxEntries      int           `yaml:"max_entries"`
		CleanupInterval time.Duration `yaml:"cleanup_interval"`
		Redis           struct {
			Enabled  bool   `yaml:"enabled"`
			Host     string `yaml:"host"`
			Port     int    `yaml:"port"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix"`
		} `yaml:"redis"`
	} `yaml:"cache"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
// Provider keys are optional: a missing key makes that provider's calls fail
// upstream, which the aggregator absorbs into empty results.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("FINNHUB_API_KEY"); v != "" {
		c.Providers.Finnhub.APIKey = v
	}
	if v := os.Getenv("ALPHA_VANTAGE_API_KEY"); v != "" {
		c.Providers.AlphaVantage.APIKey = v
	}
	if v := os.Getenv("NEWS_API_KEY"); v != "" {
		c.Providers.NewsAPI.APIKey = v
	}
	if v := os.Getenv("REDIS_HOST"); v != "" {
		c.Cache.Redis.Host = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
	if c.Log.Output == "" {
		c.Log.Output = "stdout"
	}
	if c.Providers.Timeout == 0 {
		c.Providers.Timeout = 15 * time.Second
	}
	if c.Providers.Finnhub.BaseURL == "" {
		c.Providers.Finnhub.BaseURL = "https://finnhub.io/api/v1"
	}
	if c.Providers.CoinGecko.BaseURL == "" {
		c.Providers.CoinGecko.BaseURL = "https://api.coingecko.com/api/v3"
	}
	if c.Providers.Yahoo.BaseURL == "" {
		c.Providers.Yahoo.BaseURL = "https://query1.finance.yahoo.com"
	}
	if c.Providers.AlphaVantage.BaseURL == "" {
		c.Providers.AlphaVantage.BaseURL = "https://www.alphavantage.co"
	}
	if c.Providers.NewsAPI.BaseURL == "" {
		c.Providers.NewsAPI.BaseURL = "https://newsapi.org/v2"
	}
	if c.History.DefaultDays == 0 {
		c.History.DefaultDays = 90
	}
	if c.History.CacheTTL == 0 {
		c.History.CacheTTL = 5 * time.Minute
	}
	if c.Cache.MaxEntries == 0 {
		c.Cache.MaxEntries = 1000
	}
	if c.Cache.CleanupInterval == 0 {
		c.Cache.CleanupInterval = 5 * time.Minute
	}
	if c.Cache.Redis.Port == 0 {
		c.Cache.Redis.Port = 6379
	}
	if c.Cache.Redis.Prefix == "" {
		c.Cache.Redis.Prefix = "marketpulse"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.History.DefaultDays < 1 {
		return fmt.Errorf("history.default_days must be positive")
	}
	if c.History.CacheTTL < 0 {
		return fmt.Errorf("history.cache_ttl must not be negative")
	}
	if c.Cache.Redis.Enabled && c.Cache.Redis.Host == "" {
		return fmt.Errorf("cache.redis.host is required when redis is enabled")
	}
	return nil
}
