package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "environment: test\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, "https://finnhub.io/api/v1", cfg.Providers.Finnhub.BaseURL)
	require.Equal(t, "https://query1.finance.yahoo.com", cfg.Providers.Yahoo.BaseURL)
	require.Equal(t, 90, cfg.History.DefaultDays)
	require.Equal(t, 5*time.Minute, cfg.History.CacheTTL)
	require.Equal(t, 1000, cfg.Cache.MaxEntries)
}

func TestLoadRejectsMissingEnvironment(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 8080\n")

	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "environment")
}

func TestLoadRejectsRedisWithoutHost(t *testing.T) {
	path := writeConfig(t, "environment: test\ncache:\n  redis:\n    enabled: true\n    host: \"\"\n")

	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "redis.host")
}

func TestLoadWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, "environment: test\n")

	t.Setenv("FINNHUB_API_KEY", "fh-key")
	t.Setenv("ALPHA_VANTAGE_API_KEY", "av-key")
	t.Setenv("NEWS_API_KEY", "news-key")
	t.Setenv("PORT", "9090")

	cfg, err := LoadWithEnv(path)
	require.NoError(t, err)
	require.Equal(t, "fh-key", cfg.Providers.Finnhub.APIKey)
	require.Equal(t, "av-key", cfg.Providers.AlphaVantage.APIKey)
	require.Equal(t, "news-key", cfg.Providers.NewsAPI.APIKey)
	require.Equal(t, 9090, cfg.Server.Port)
}

func TestLoadMissingKeysAllowed(t *testing.T) {
	path := writeConfig(t, "environment: production\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Empty(t, cfg.Providers.Finnhub.APIKey)
	require.Empty(t, cfg.Providers.NewsAPI.APIKey)
}
