package repository

import (
	"context"

	"MarketPulse/internal/domain/models"
)

// QuoteProvider fetches the current quote for a symbol. Implementations
// return an error rather than a sentinel value; the aggregator decides how to
// degrade.
type QuoteProvider interface {
	Quote(ctx context.Context, symbol string) (models.MarketQuote, error)
}

// HistoryProvider fetches a trailing daily price series for a symbol.
type HistoryProvider interface {
	DailyHistory(ctx context.Context, symbol string, days int) (models.HistoricalSeries, error)
}

// IndicatorProvider fetches the technical indicator set for a symbol.
type IndicatorProvider interface {
	Indicators(ctx context.Context, symbol string) (models.TechnicalIndicators, error)
}

// NewsProvider fetches recent articles matching the given symbols, newest
// first, already filtered to ASCII-titled articles.
type NewsProvider interface {
	News(ctx context.Context, symbols []string) ([]models.NewsItem, error)
}

// Metrics records aggregation events. Implemented by pkg/metrics.
type Metrics interface {
	RecordUpstreamRequest(provider, kind, outcome string)
	RecordUpstreamLatency(provider, kind string, seconds float64)
	RecordFallback(symbol string)
	RecordSynthesis(symbol string)
	RecordCache(result string)
	RecordLastPrice(assetType, symbol string, price float64)
}
