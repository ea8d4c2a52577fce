package di

import (
	"fmt"

	"MarketPulse/internal/domain/repository"
	"MarketPulse/internal/handler/api"
	"MarketPulse/internal/service/alphavantage"
	"MarketPulse/internal/service/coingecko"
	"MarketPulse/internal/service/finnhub"
	"MarketPulse/internal/service/newsapi"
	"MarketPulse/internal/service/ratelimit"
	"MarketPulse/internal/service/symbols"
	"MarketPulse/internal/service/yahoo"
	"MarketPulse/internal/usecase"
	"MarketPulse/pkg/cache"
	"MarketPulse/pkg/config"
	xhttp "MarketPulse/pkg/http"
	applogger "MarketPulse/pkg/logger"
	"MarketPulse/pkg/metrics"
	"MarketPulse/pkg/server"
)

// ProvideLogger creates the structured application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideHTTPClient creates the outbound HTTP client shared by all providers.
func ProvideHTTPClient(cfg *config.Config) *xhttp.Client {
	return xhttp.NewClient(xhttp.WithTimeout(cfg.Providers.Timeout))
}

// ProvideMetrics creates the Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideSymbolLookup creates the shared crypto symbol table.
func ProvideSymbolLookup() symbols.Lookup {
	return symbols.DefaultCryptoIDs()
}

// ProvideCache creates the cache backend. Redis-backed layering is optional;
// the default is the bounded in-memory cache.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	memOpts := []cache.MemoryOption{
		cache.WithMemoryMaxSize(cfg.Cache.MaxEntries),
		cache.WithMemoryCleanup(cfg.Cache.CleanupInterval),
	}

	if !cfg.Cache.Redis.Enabled {
		return cache.NewMemoryCache(memOpts...), nil
	}

	redisCache, err := cache.NewRedisCache(
		cache.WithRedisHost(cfg.Cache.Redis.Host),
		cache.WithRedisPort(cfg.Cache.Redis.Port),
		cache.WithRedisPassword(cfg.Cache.Redis.Password),
		cache.WithRedisDB(cfg.Cache.Redis.DB),
		cache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return cache.NewLayeredCache(redisCache, memOpts...), nil
}

// ProvideFinnhubClient creates the stock quote client.
func ProvideFinnhubClient(cfg *config.Config, httpClient *xhttp.Client) *finnhub.Client {
	return finnhub.New(httpClient, cfg.Providers.Finnhub.BaseURL, cfg.Providers.Finnhub.APIKey)
}

// ProvideCoinGeckoClient creates the crypto quote and history client.
func ProvideCoinGeckoClient(cfg *config.Config, httpClient *xhttp.Client, ids symbols.Lookup) *coingecko.Client {
	return coingecko.New(httpClient, cfg.Providers.CoinGecko.BaseURL, ids)
}

// ProvideYahooClient creates the primary stock history client.
func ProvideYahooClient(cfg *config.Config, httpClient *xhttp.Client) *yahoo.Client {
	return yahoo.New(httpClient, cfg.Providers.Yahoo.BaseURL)
}

// ProvideAlphaVantageClient creates the fallback history and indicator client.
func ProvideAlphaVantageClient(cfg *config.Config, httpClient *xhttp.Client) *alphavantage.Client {
	return alphavantage.New(httpClient, cfg.Providers.AlphaVantage.BaseURL, cfg.Providers.AlphaVantage.APIKey)
}

// ProvideNewsAPIClient creates the news client.
func ProvideNewsAPIClient(cfg *config.Config, httpClient *xhttp.Client) *newsapi.Client {
	return newsapi.New(httpClient, cfg.Providers.NewsAPI.BaseURL, cfg.Providers.NewsAPI.APIKey)
}

// ProvideRateLimiter creates the per-client request limiter. Bursts of 20 with
// a steady 5 req/s refill.
func ProvideRateLimiter() *ratelimit.Limiter {
	return ratelimit.New(20, 5)
}

// ProvideMarketAggregator composes the providers into the aggregation usecase.
func ProvideMarketAggregator(
	cfg *config.Config,
	finnhubClient *finnhub.Client,
	coingeckoClient *coingecko.Client,
	yahooClient *yahoo.Client,
	alphaClient *alphavantage.Client,
	newsClient *newsapi.Client,
	cacheSvc cache.Service,
	rec repository.Metrics,
	logger *applogger.Logger,
) *usecase.MarketAggregator {
	return usecase.NewMarketAggregator(usecase.MarketAggregatorDeps{
		StockQuotes:          finnhubClient,
		CryptoQuotes:         coingeckoClient,
		StockHistory:         yahooClient,
		StockHistoryFallback: alphaClient,
		CryptoHistory:        coingeckoClient,
		Indicators:           alphaClient,
		News:                 newsClient,
		Cache:                cacheSvc,
		Metrics:              rec,
		Logger:               logger,
	}, usecase.MarketAggregatorConfig{
		HistoryTTL:  cfg.History.CacheTTL,
		DefaultDays: cfg.History.DefaultDays,
	})
}

// ProvideMarketHandler creates the Echo HTTP handler.
func ProvideMarketHandler(logger *applogger.Logger, agg *usecase.MarketAggregator, limiter *ratelimit.Limiter) xhttp.Handler {
	return api.NewMarketEchoHandler(logger, agg, limiter)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	logger *applogger.Logger,
	handler xhttp.Handler,
	cacheSvc cache.Service,
	limiter *ratelimit.Limiter,
) *server.App {
	return server.New(cfg, logger, handler, cacheSvc, limiter)
}
