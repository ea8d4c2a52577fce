package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"MarketPulse/internal/domain/models"
	"MarketPulse/internal/service/ratelimit"
	"MarketPulse/internal/usecase"
	"MarketPulse/pkg/cache"
	xlogger "MarketPulse/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type fixedQuotes struct{ quote models.MarketQuote }

func (f fixedQuotes) Quote(_ context.Context, symbol string) (models.MarketQuote, error) {
	q := f.quote
	q.Symbol = symbol
	return q, nil
}

type fixedHistory struct {
	series models.HistoricalSeries
	err    error
}

func (f fixedHistory) DailyHistory(context.Context, string, int) (models.HistoricalSeries, error) {
	return f.series, f.err
}

type fixedIndicators struct{ ind models.TechnicalIndicators }

func (f fixedIndicators) Indicators(context.Context, string) (models.TechnicalIndicators, error) {
	return f.ind, nil
}

type fixedNews struct{ items []models.NewsItem }

func (f fixedNews) News(context.Context, []string) ([]models.NewsItem, error) {
	return f.items, nil
}

type nopMetrics struct{}

func (nopMetrics) RecordUpstreamRequest(string, string, string)  {}
func (nopMetrics) RecordUpstreamLatency(string, string, float64) {}
func (nopMetrics) RecordFallback(string)                         {}
func (nopMetrics) RecordSynthesis(string)                        {}
func (nopMetrics) RecordCache(string)                            {}
func (nopMetrics) RecordLastPrice(string, string, float64)       {}

func newTestServer(t *testing.T, limiter *ratelimit.Limiter) *echo.Echo {
	t.Helper()

	logger, err := xlogger.New(&xlogger.Config{Level: "error", Format: "json", Output: "stderr"})
	require.NoError(t, err)

	mc := cache.NewMemoryCache(cache.WithMemoryMaxSize(100))
	t.Cleanup(func() { _ = mc.Close() })

	series := models.HistoricalSeries{
		{Date: "2024-03-01", Price: 100, Volume: 10},
		{Date: "2024-03-04", Price: 112, Volume: 12},
	}
	agg := usecase.NewMarketAggregator(usecase.MarketAggregatorDeps{
		StockQuotes:          fixedQuotes{quote: models.MarketQuote{Price: 112}},
		CryptoQuotes:         fixedQuotes{quote: models.MarketQuote{Price: 65000}},
		StockHistory:         fixedHistory{series: series},
		StockHistoryFallback: fixedHistory{err: errors.New("unused")},
		CryptoHistory:        fixedHistory{series: series},
		Indicators:           fixedIndicators{ind: models.TechnicalIndicators{RSI: 75, MACD: models.MACDBullish, MovingAverages: models.MAAbove}},
		News: fixedNews{items: []models.NewsItem{
			{ID: "https://example.com/a", Title: "Apple hits record high", URL: "https://example.com/a"},
		}},
		Cache:   mc,
		Metrics: nopMetrics{},
		Logger:  logger,
	}, usecase.MarketAggregatorConfig{})

	e := echo.New()
	NewMarketEchoHandler(logger, agg, limiter).RegisterRoutes(e)
	return e
}

func doGET(e *echo.Echo, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestMarketDataEndpoint(t *testing.T) {
	e := newTestServer(t, nil)
	rec := doGET(e, "/api/market/stock/aapl?days=30")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status int               `json:"status"`
		Data   models.MarketData `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, http.StatusOK, body.Status)
	require.Equal(t, "AAPL", body.Data.Symbol)
	require.Equal(t, 112.0, body.Data.Price)
	require.Len(t, body.Data.HistoricalData, 2)
}

func TestMarketDataInvalidType(t *testing.T) {
	e := newTestServer(t, nil)
	rec := doGET(e, "/api/market/bond/AAPL")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "ERR_ONEOF")
}

func TestMarketDataDaysOutOfRange(t *testing.T) {
	e := newTestServer(t, nil)
	rec := doGET(e, "/api/market/stock/AAPL?days=1000")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "ERR_LTE")
}

func TestAnalysisEndpoint(t *testing.T) {
	e := newTestServer(t, nil)
	rec := doGET(e, "/api/analysis/stock/AAPL")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "private, max-age=15", rec.Header().Get(echo.HeaderCacheControl))

	var body struct {
		Data models.Analysis `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, models.SentimentPositive, body.Data.Sentiment)
	require.Len(t, body.Data.Recommendations, 4)
}

func TestNewsEndpointAttachesHighlights(t *testing.T) {
	e := newTestServer(t, nil)
	rec := doGET(e, "/api/news/AAPL")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []models.NewsItem `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	require.Equal(t, aiHighlights, body.Data[0].AIHighlights)
}

func TestRateLimitReturns429(t *testing.T) {
	e := newTestServer(t, ratelimit.New(1, 0))
	require.Equal(t, http.StatusOK, doGET(e, "/api/news/AAPL").Code)
	rec := doGET(e, "/api/news/AAPL")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.Contains(t, rec.Body.String(), "ERR_RATE_LIMITED")
}

func TestHealthEndpoint(t *testing.T) {
	e := newTestServer(t, nil)
	rec := doGET(e, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"status":"ok"`)
}
