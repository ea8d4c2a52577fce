package usecase

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"MarketPulse/internal/domain/models"
	domrepo "MarketPulse/internal/domain/repository"
	"MarketPulse/pkg/cache"
	applogger "MarketPulse/pkg/logger"
	"MarketPulse/pkg/util"
)

const (
	providerFinnhub      = "finnhub"
	providerCoinGecko    = "coingecko"
	providerYahoo        = "yahoo"
	providerAlphaVantage = "alphavantage"
	providerNewsAPI      = "newsapi"

	stockHistoryKeyPrefix = "stock"
)

// MarketAggregatorDeps holds every upstream the aggregator composes.
type MarketAggregatorDeps struct {
	StockQuotes          domrepo.QuoteProvider
	CryptoQuotes         domrepo.QuoteProvider
	StockHistory         domrepo.HistoryProvider
	StockHistoryFallback domrepo.HistoryProvider
	CryptoHistory        domrepo.HistoryProvider
	Indicators           domrepo.IndicatorProvider
	News                 domrepo.NewsProvider
	Cache                cache.Service
	Metrics              domrepo.Metrics
	Logger               *applogger.Logger
}

// MarketAggregatorConfig tunes caching and request defaults.
type MarketAggregatorConfig struct {
	HistoryTTL  time.Duration
	DefaultDays int
}

// MarketAggregator composes the upstream providers into the fail-soft market
// data API. Upstream failures are logged and converted into zero or empty
// sentinels so callers always get a well-formed payload.
type MarketAggregator struct {
	deps  MarketAggregatorDeps
	cfg   MarketAggregatorConfig
	group singleflight.Group
}

func NewMarketAggregator(deps MarketAggregatorDeps, cfg MarketAggregatorConfig) *MarketAggregator {
	if cfg.HistoryTTL <= 0 {
		cfg.HistoryTTL = 5 * time.Minute
	}
	if cfg.DefaultDays <= 0 {
		cfg.DefaultDays = 90
	}
	return &MarketAggregator{deps: deps, cfg: cfg}
}

// GetQuote fetches the current quote for a symbol. A failed upstream lookup
// degrades to the zero quote with only the symbol and timestamp set.
func (a *MarketAggregator) GetQuote(ctx context.Context, assetType models.AssetType, symbol string) models.MarketQuote {
	symbol = strings.ToUpper(symbol)

	var (
		provider string
		quote    models.MarketQuote
		err      error
	)
	start := time.Now()
	switch assetType {
	case models.AssetTypeCrypto:
		provider = providerCoinGecko
		quote, err = a.deps.CryptoQuotes.Quote(ctx, symbol)
	default:
		provider = providerFinnhub
		quote, err = a.deps.StockQuotes.Quote(ctx, symbol)
	}
	a.observe(provider, "quote", start, err)

	if err != nil {
		a.deps.Logger.Warn("quote lookup failed, serving zero quote",
			applogger.String("provider", provider),
			applogger.String("symbol", symbol),
			applogger.Error(err))
		return models.MarketQuote{Symbol: symbol, LastUpdated: time.Now().UTC()}
	}

	a.deps.Metrics.RecordLastPrice(string(assetType), symbol, quote.Price)
	return quote
}

// GetHistoricalSeries resolves the daily price series for a symbol. Crypto
// history is fetched directly; stock history goes through the cache and the
// primary-then-fallback provider chain. An error here means every provider in
// the chain failed and the caller should synthesize.
func (a *MarketAggregator) GetHistoricalSeries(ctx context.Context, assetType models.AssetType, symbol string, days int) (models.HistoricalSeries, error) {
	symbol = strings.ToUpper(symbol)
	if days <= 0 {
		days = a.cfg.DefaultDays
	}

	if assetType == models.AssetTypeCrypto {
		start := time.Now()
		series, err := a.deps.CryptoHistory.DailyHistory(ctx, symbol, days)
		a.observe(providerCoinGecko, "history", start, err)
		return series, err
	}
	return a.stockHistory(ctx, symbol, days)
}

// GetMarketData bundles the quote with its historical series. When the stock
// history chain fails and a real quote is on hand, a placeholder series is
// synthesized from it. Crypto history has a single source and no placeholder;
// a failed quote never seeds fabricated prices either. Both degrade to the
// empty series.
func (a *MarketAggregator) GetMarketData(ctx context.Context, assetType models.AssetType, symbol string, days int) models.MarketData {
	symbol = strings.ToUpper(symbol)
	if days <= 0 {
		days = a.cfg.DefaultDays
	}

	quote := a.GetQuote(ctx, assetType, symbol)
	series, err := a.GetHistoricalSeries(ctx, assetType, symbol, days)
	if err != nil || len(series) == 0 {
		if err != nil {
			a.deps.Logger.Warn("history lookup failed",
				applogger.String("symbol", symbol),
				applogger.Int("days", days),
				applogger.Error(err))
		}
		series = models.HistoricalSeries{}
		if assetType == models.AssetTypeStock && quote.Price > 0 {
			series = a.synthesize(symbol, days, quote)
			a.deps.Metrics.RecordSynthesis(symbol)
		}
	}

	return models.MarketData{MarketQuote: quote, HistoricalData: series}
}

// GetTechnicalIndicators fetches the simplified indicator set. Failures
// degrade to the neutral zero set the provider hands back alongside its error.
func (a *MarketAggregator) GetTechnicalIndicators(ctx context.Context, symbol string) models.TechnicalIndicators {
	symbol = strings.ToUpper(symbol)

	start := time.Now()
	indicators, err := a.deps.Indicators.Indicators(ctx, symbol)
	a.observe(providerAlphaVantage, "indicators", start, err)
	if err != nil {
		a.deps.Logger.Warn("indicator lookup failed, serving neutral set",
			applogger.String("symbol", symbol),
			applogger.Error(err))
	}
	return indicators
}

// GetNews fetches recent articles for the symbols. A failed lookup degrades to
// an empty list.
func (a *MarketAggregator) GetNews(ctx context.Context, symbols []string) []models.NewsItem {
	start := time.Now()
	items, err := a.deps.News.News(ctx, symbols)
	a.observe(providerNewsAPI, "news", start, err)
	if err != nil {
		a.deps.Logger.Warn("news lookup failed, serving empty list",
			applogger.Strings("symbols", symbols),
			applogger.Error(err))
		return []models.NewsItem{}
	}
	if items == nil {
		items = []models.NewsItem{}
	}
	return items
}

// stockHistory serves stock series from the cache when fresh, otherwise runs
// the primary-then-fallback chain once per symbol regardless of concurrent
// callers.
func (a *MarketAggregator) stockHistory(ctx context.Context, symbol string, days int) (models.HistoricalSeries, error) {
	key := cache.GenerateKeyWithParams(stockHistoryKeyPrefix, symbol, days)

	if cached, err := cache.GetTyped[models.HistoricalSeries](ctx, a.deps.Cache, key); err == nil {
		a.deps.Metrics.RecordCache("hit")
		return cached, nil
	}
	a.deps.Metrics.RecordCache("miss")

	result, err, _ := a.group.Do(key, func() (interface{}, error) {
		series, err := a.fetchStockHistory(ctx, symbol, days)
		if err != nil {
			return nil, err
		}
		if cacheErr := a.deps.Cache.Set(ctx, key, series, a.cfg.HistoryTTL); cacheErr != nil {
			a.deps.Logger.Warn("history cache write failed",
				applogger.String("key", key),
				applogger.Error(cacheErr))
		}
		return series, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(models.HistoricalSeries), nil
}

func (a *MarketAggregator) fetchStockHistory(ctx context.Context, symbol string, days int) (models.HistoricalSeries, error) {
	start := time.Now()
	series, err := a.deps.StockHistory.DailyHistory(ctx, symbol, days)
	a.observe(providerYahoo, "history", start, err)
	if err == nil && len(series) > 0 {
		return series, nil
	}
	if err != nil {
		a.deps.Logger.Warn("primary history provider failed, trying fallback",
			applogger.String("symbol", symbol),
			applogger.Error(err))
	}
	a.deps.Metrics.RecordFallback(symbol)

	start = time.Now()
	series, fbErr := a.deps.StockHistoryFallback.DailyHistory(ctx, symbol, days)
	a.observe(providerAlphaVantage, "history", start, fbErr)
	if fbErr != nil {
		return nil, fmt.Errorf("history chain for %s: %w", symbol, fbErr)
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("history chain for %s: fallback returned empty series", symbol)
	}
	return series, nil
}

// synthesize builds a placeholder series when no provider can serve real
// stock history. The caller guarantees quote.Price > 0. Prices jitter within
// 2% of the quoted price; dates cover the trailing day window, oldest first.
func (a *MarketAggregator) synthesize(symbol string, days int, quote models.MarketQuote) models.HistoricalSeries {
	base := quote.Price

	dates := util.TrailingDays(time.Now().UTC(), days)
	series := make(models.HistoricalSeries, 0, len(dates))
	for _, day := range dates {
		series = append(series, models.HistoricalPoint{
			Date:   day,
			Price:  base + (rand.Float64()*2-1)*base*0.02,
			Volume: quote.Volume,
		})
	}
	return series
}

func (a *MarketAggregator) observe(provider, kind string, start time.Time, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	a.deps.Metrics.RecordUpstreamRequest(provider, kind, outcome)
	a.deps.Metrics.RecordUpstreamLatency(provider, kind, time.Since(start).Seconds())
}
