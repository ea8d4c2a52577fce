// Package coingecko wraps the CoinGecko simple-price and market-chart
// endpoints for crypto quotes and daily history.
package coingecko

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"MarketPulse/internal/domain/models"
	"MarketPulse/internal/service/symbols"
	xhttp "MarketPulse/pkg/http"
	"MarketPulse/pkg/util"
)

// Client fetches crypto market data from CoinGecko.
type Client struct {
	baseURL string
	ids     symbols.Lookup
	http    *xhttp.Client
}

// New creates a CoinGecko client. The id lookup is shared with every other
// component that needs symbol resolution.
func New(httpClient *xhttp.Client, baseURL string, ids symbols.Lookup) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		ids:     ids,
		http:    httpClient,
	}
}

type simplePrice struct {
	USD       float64 `json:"usd"`
	Change24h float64 `json:"usd_24h_change"`
	Volume24h float64 `json:"usd_24h_vol"`
	MarketCap float64 `json:"usd_market_cap"`
}

// Quote fetches the current quote for a crypto symbol. CoinGecko exposes only
// the 24h change, so both change and changePercent carry it.
func (c *Client) Quote(ctx context.Context, symbol string) (models.MarketQuote, error) {
	coinID := c.ids.CoinID(symbol)

	var resp map[string]simplePrice
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/simple/price",
		QueryParams: map[string][]string{
			"ids":                 {coinID},
			"vs_currencies":       {"usd"},
			"include_24hr_vol":    {"true"},
			"include_24hr_change": {"true"},
			"include_market_cap":  {"true"},
		},
	}, &resp)
	if err != nil {
		return models.MarketQuote{}, fmt.Errorf("coingecko quote %s: %w", symbol, err)
	}

	coin, ok := resp[coinID]
	if !ok {
		return models.MarketQuote{}, fmt.Errorf("coingecko quote %s: no data for id %q", symbol, coinID)
	}

	return models.MarketQuote{
		Symbol:        strings.ToUpper(symbol),
		Price:         coin.USD,
		Change:        coin.Change24h,
		ChangePercent: coin.Change24h,
		Volume:        coin.Volume24h,
		MarketCap:     coin.MarketCap,
		LastUpdated:   time.Now().UTC(),
	}, nil
}

type marketChart struct {
	Prices [][]float64 `json:"prices"`
}

// DailyHistory fetches a daily market chart over the requested day count.
// CoinGecko appends the current price as an extra same-day point; the last
// value per calendar day wins so dates stay unique.
func (c *Client) DailyHistory(ctx context.Context, symbol string, days int) (models.HistoricalSeries, error) {
	coinID := c.ids.CoinID(symbol)

	var chart marketChart
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/coins/" + coinID + "/market_chart",
		QueryParams: map[string][]string{
			"vs_currency": {"usd"},
			"days":        {strconv.Itoa(days)},
			"interval":    {"daily"},
		},
	}, &chart)
	if err != nil {
		return nil, fmt.Errorf("coingecko history %s: %w", symbol, err)
	}
	if chart.Prices == nil {
		return nil, fmt.Errorf("coingecko history %s: missing prices", symbol)
	}

	byDay := make(map[string]float64, len(chart.Prices))
	for _, pair := range chart.Prices {
		if len(pair) != 2 {
			continue
		}
		ms := int64(pair[0])
		day := util.FormatDay(time.UnixMilli(ms))
		byDay[day] = pair[1]
	}

	series := make(models.HistoricalSeries, 0, len(byDay))
	for day, price := range byDay {
		series = append(series, models.HistoricalPoint{Date: day, Price: price})
	}
	series.SortAscending()
	return series, nil
}
