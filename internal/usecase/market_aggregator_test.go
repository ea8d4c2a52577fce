package usecase

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"MarketPulse/internal/domain/models"
	"MarketPulse/pkg/cache"
	applogger "MarketPulse/pkg/logger"

	"github.com/stretchr/testify/require"
)

type stubQuotes struct {
	quote models.MarketQuote
	err   error
	calls int32
}

func (s *stubQuotes) Quote(_ context.Context, symbol string) (models.MarketQuote, error) {
	atomic.AddInt32(&s.calls, 1)
	if s.err != nil {
		return models.MarketQuote{}, s.err
	}
	q := s.quote
	if q.Symbol == "" {
		q.Symbol = symbol
	}
	return q, nil
}

type stubHistory struct {
	series models.HistoricalSeries
	err    error
	delay  time.Duration
	calls  int32
}

func (s *stubHistory) DailyHistory(_ context.Context, _ string, _ int) (models.HistoricalSeries, error) {
	atomic.AddInt32(&s.calls, 1)
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	return s.series, s.err
}

type stubIndicators struct {
	indicators models.TechnicalIndicators
	err        error
}

func (s *stubIndicators) Indicators(context.Context, string) (models.TechnicalIndicators, error) {
	return s.indicators, s.err
}

type stubNews struct {
	items []models.NewsItem
	err   error
}

func (s *stubNews) News(context.Context, []string) ([]models.NewsItem, error) {
	return s.items, s.err
}

type nopMetrics struct{}

func (nopMetrics) RecordUpstreamRequest(string, string, string)  {}
func (nopMetrics) RecordUpstreamLatency(string, string, float64) {}
func (nopMetrics) RecordFallback(string)                         {}
func (nopMetrics) RecordSynthesis(string)                        {}
func (nopMetrics) RecordCache(string)                            {}
func (nopMetrics) RecordLastPrice(string, string, float64)       {}

func testLogger(t *testing.T) *applogger.Logger {
	t.Helper()
	l, err := applogger.New(&applogger.Config{Level: "error", Format: "json", Output: "stderr"})
	require.NoError(t, err)
	return l
}

func newTestAggregator(t *testing.T, deps MarketAggregatorDeps, cfg MarketAggregatorConfig) *MarketAggregator {
	t.Helper()
	if deps.Cache == nil {
		mc := cache.NewMemoryCache(cache.WithMemoryMaxSize(100))
		t.Cleanup(func() { _ = mc.Close() })
		deps.Cache = mc
	}
	if deps.Metrics == nil {
		deps.Metrics = nopMetrics{}
	}
	if deps.Logger == nil {
		deps.Logger = testLogger(t)
	}
	if deps.Indicators == nil {
		deps.Indicators = &stubIndicators{}
	}
	if deps.News == nil {
		deps.News = &stubNews{}
	}
	return NewMarketAggregator(deps, cfg)
}

func TestGetQuoteFailSoft(t *testing.T) {
	agg := newTestAggregator(t, MarketAggregatorDeps{
		StockQuotes: &stubQuotes{err: errors.New("upstream down")},
	}, MarketAggregatorConfig{})

	q := agg.GetQuote(context.Background(), models.AssetTypeStock, "aapl")
	require.Equal(t, "AAPL", q.Symbol)
	require.Zero(t, q.Price)
	require.False(t, q.LastUpdated.IsZero())
}

func TestGetMarketDataSynthesizesWhenChainFails(t *testing.T) {
	agg := newTestAggregator(t, MarketAggregatorDeps{
		StockQuotes:          &stubQuotes{quote: models.MarketQuote{Price: 150, Volume: 5000}},
		StockHistory:         &stubHistory{err: errors.New("primary down")},
		StockHistoryFallback: &stubHistory{err: errors.New("fallback down")},
	}, MarketAggregatorConfig{})

	data := agg.GetMarketData(context.Background(), models.AssetTypeStock, "AAPL", 30)
	require.Len(t, data.HistoricalData, 30)
	for i, p := range data.HistoricalData {
		require.InDelta(t, 150, p.Price, 150*0.02+1e-9)
		require.Equal(t, 5000.0, p.Volume)
		if i > 0 {
			require.Less(t, data.HistoricalData[i-1].Date, p.Date)
		}
	}
}

func TestGetMarketDataNoSynthesisWithoutQuote(t *testing.T) {
	agg := newTestAggregator(t, MarketAggregatorDeps{
		StockQuotes:          &stubQuotes{err: errors.New("quote down")},
		StockHistory:         &stubHistory{err: errors.New("primary down")},
		StockHistoryFallback: &stubHistory{err: errors.New("fallback down")},
	}, MarketAggregatorConfig{})

	data := agg.GetMarketData(context.Background(), models.AssetTypeStock, "AAPL", 30)
	require.Zero(t, data.Price)
	require.NotNil(t, data.HistoricalData)
	require.Empty(t, data.HistoricalData)
}

func TestGetMarketDataCryptoHistoryFailureYieldsEmptySeries(t *testing.T) {
	agg := newTestAggregator(t, MarketAggregatorDeps{
		CryptoQuotes:  &stubQuotes{quote: models.MarketQuote{Price: 65000}},
		CryptoHistory: &stubHistory{err: errors.New("upstream down")},
	}, MarketAggregatorConfig{})

	data := agg.GetMarketData(context.Background(), models.AssetTypeCrypto, "BTC", 30)
	require.Equal(t, 65000.0, data.Price)
	require.NotNil(t, data.HistoricalData)
	require.Empty(t, data.HistoricalData)
}

func TestStockHistoryCachedWithinTTL(t *testing.T) {
	primary := &stubHistory{series: models.HistoricalSeries{
		{Date: "2024-03-01", Price: 410, Volume: 100},
		{Date: "2024-03-04", Price: 415, Volume: 120},
	}}
	agg := newTestAggregator(t, MarketAggregatorDeps{
		StockQuotes:          &stubQuotes{quote: models.MarketQuote{Price: 415}},
		StockHistory:         primary,
		StockHistoryFallback: &stubHistory{err: errors.New("unused")},
	}, MarketAggregatorConfig{HistoryTTL: time.Minute})

	first, err := agg.GetHistoricalSeries(context.Background(), models.AssetTypeStock, "MSFT", 90)
	require.NoError(t, err)
	second, err := agg.GetHistoricalSeries(context.Background(), models.AssetTypeStock, "MSFT", 90)
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Equal(t, int32(1), atomic.LoadInt32(&primary.calls))
}

func TestStockHistoryRefetchedAfterExpiry(t *testing.T) {
	primary := &stubHistory{series: models.HistoricalSeries{{Date: "2024-03-01", Price: 410}}}
	agg := newTestAggregator(t, MarketAggregatorDeps{
		StockQuotes:          &stubQuotes{},
		StockHistory:         primary,
		StockHistoryFallback: &stubHistory{err: errors.New("unused")},
	}, MarketAggregatorConfig{HistoryTTL: 20 * time.Millisecond})

	_, err := agg.GetHistoricalSeries(context.Background(), models.AssetTypeStock, "MSFT", 90)
	require.NoError(t, err)
	time.Sleep(50 * time.Millisecond)
	_, err = agg.GetHistoricalSeries(context.Background(), models.AssetTypeStock, "MSFT", 90)
	require.NoError(t, err)

	require.Equal(t, int32(2), atomic.LoadInt32(&primary.calls))
}

func TestStockHistoryFallbackChain(t *testing.T) {
	primary := &stubHistory{err: errors.New("primary down")}
	fallback := &stubHistory{series: models.HistoricalSeries{{Date: "2024-03-01", Price: 99}}}
	agg := newTestAggregator(t, MarketAggregatorDeps{
		StockQuotes:          &stubQuotes{},
		StockHistory:         primary,
		StockHistoryFallback: fallback,
	}, MarketAggregatorConfig{})

	series, err := agg.GetHistoricalSeries(context.Background(), models.AssetTypeStock, "MSFT", 90)
	require.NoError(t, err)
	require.Equal(t, 99.0, series[0].Price)
	require.Equal(t, int32(1), atomic.LoadInt32(&primary.calls))
	require.Equal(t, int32(1), atomic.LoadInt32(&fallback.calls))
}

func TestStockHistoryEmptyPrimaryTriggersFallback(t *testing.T) {
	primary := &stubHistory{series: models.HistoricalSeries{}}
	fallback := &stubHistory{series: models.HistoricalSeries{{Date: "2024-03-01", Price: 42}}}
	agg := newTestAggregator(t, MarketAggregatorDeps{
		StockQuotes:          &stubQuotes{},
		StockHistory:         primary,
		StockHistoryFallback: fallback,
	}, MarketAggregatorConfig{})

	series, err := agg.GetHistoricalSeries(context.Background(), models.AssetTypeStock, "MSFT", 90)
	require.NoError(t, err)
	require.Equal(t, 42.0, series[0].Price)
}

func TestStockHistoryConcurrentMissesDeduplicated(t *testing.T) {
	primary := &stubHistory{
		series: models.HistoricalSeries{{Date: "2024-03-01", Price: 410}},
		delay:  50 * time.Millisecond,
	}
	agg := newTestAggregator(t, MarketAggregatorDeps{
		StockQuotes:          &stubQuotes{},
		StockHistory:         primary,
		StockHistoryFallback: &stubHistory{err: errors.New("unused")},
	}, MarketAggregatorConfig{HistoryTTL: time.Minute})

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := agg.GetHistoricalSeries(context.Background(), models.AssetTypeStock, "MSFT", 90)
			require.NoError(t, err)
		}()
	}
	wg.Wait()

	require.Equal(t, int32(1), atomic.LoadInt32(&primary.calls))
}

func TestCryptoHistoryBypassesCache(t *testing.T) {
	crypto := &stubHistory{series: models.HistoricalSeries{{Date: "2024-03-01", Price: 65000}}}
	agg := newTestAggregator(t, MarketAggregatorDeps{
		CryptoQuotes:  &stubQuotes{},
		CryptoHistory: crypto,
	}, MarketAggregatorConfig{HistoryTTL: time.Minute})

	_, err := agg.GetHistoricalSeries(context.Background(), models.AssetTypeCrypto, "BTC", 90)
	require.NoError(t, err)
	_, err = agg.GetHistoricalSeries(context.Background(), models.AssetTypeCrypto, "BTC", 90)
	require.NoError(t, err)

	require.Equal(t, int32(2), atomic.LoadInt32(&crypto.calls))
}

func TestGetNewsFailSoft(t *testing.T) {
	agg := newTestAggregator(t, MarketAggregatorDeps{
		News: &stubNews{err: errors.New("quota exceeded")},
	}, MarketAggregatorConfig{})

	items := agg.GetNews(context.Background(), []string{"AAPL"})
	require.NotNil(t, items)
	require.Empty(t, items)
}
