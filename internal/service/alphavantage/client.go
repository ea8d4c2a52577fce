// Package alphavantage wraps the Alpha Vantage daily time series and RSI
// endpoints. The time series serves as the fallback source for stock history.
package alphavantage

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"MarketPulse/internal/domain/models"
	xhttp "MarketPulse/pkg/http"
)

// Client fetches stock history and technical indicators from Alpha Vantage.
type Client struct {
	apiKey  string
	baseURL string
	http    *xhttp.Client
}

// New creates an Alpha Vantage client.
func New(httpClient *xhttp.Client, baseURL, apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// dailyBar carries the string-encoded OHLCV fields of the daily series.
type dailyBar struct {
	Close  string `json:"4. close"`
	Volume string `json:"6. volume"`
}

type dailySeriesResponse struct {
	Series      map[string]dailyBar `json:"Time Series (Daily)"`
	Note        string              `json:"Note"`
	Information string              `json:"Information"`
	ErrorMsg    string              `json:"Error Message"`
}

// DailyHistory fetches the adjusted daily series and returns the most recent
// days, ascending by date.
func (c *Client) DailyHistory(ctx context.Context, symbol string, days int) (models.HistoricalSeries, error) {
	symbol = strings.ToUpper(symbol)

	var resp dailySeriesResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/query",
		QueryParams: map[string][]string{
			"function":   {"TIME_SERIES_DAILY_ADJUSTED"},
			"symbol":     {symbol},
			"outputsize": {"full"},
			"apikey":     {c.apiKey},
		},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("alphavantage history %s: %w", symbol, err)
	}
	if resp.ErrorMsg != "" {
		return nil, fmt.Errorf("alphavantage history %s: %s", symbol, resp.ErrorMsg)
	}
	if len(resp.Series) == 0 {
		// Rate-limit responses carry a Note or Information field instead of data.
		msg := resp.Note
		if msg == "" {
			msg = resp.Information
		}
		if msg == "" {
			msg = "empty time series"
		}
		return nil, fmt.Errorf("alphavantage history %s: %s", symbol, msg)
	}

	dates := make([]string, 0, len(resp.Series))
	for date := range resp.Series {
		dates = append(dates, date)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	if len(dates) > days {
		dates = dates[:days]
	}

	series := make(models.HistoricalSeries, 0, len(dates))
	for _, date := range dates {
		bar := resp.Series[date]
		price, err := strconv.ParseFloat(bar.Close, 64)
		if err != nil {
			return nil, fmt.Errorf("alphavantage history %s: close %q on %s: %w", symbol, bar.Close, date, err)
		}
		volume, _ := strconv.ParseFloat(bar.Volume, 64)
		series = append(series, models.HistoricalPoint{
			Date:   date,
			Price:  price,
			Volume: volume,
		})
	}

	series.SortAscending()
	return series, nil
}

type rsiResponse struct {
	Analysis map[string]struct {
		RSI string `json:"RSI"`
	} `json:"Technical Analysis: RSI"`
}

// Indicators fetches the latest daily RSI. MACD and moving-average signals are
// not derivable from this endpoint and come back as simplified placeholders; a
// fetch failure degrades the whole set to the neutral zero value.
func (c *Client) Indicators(ctx context.Context, symbol string) (models.TechnicalIndicators, error) {
	symbol = strings.ToUpper(symbol)

	neutral := models.TechnicalIndicators{
		MACD:           models.MACDNeutral,
		MovingAverages: models.MANeutral,
	}

	var resp rsiResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/query",
		QueryParams: map[string][]string{
			"function":    {"RSI"},
			"symbol":      {symbol},
			"interval":    {"daily"},
			"time_period": {"14"},
			"series_type": {"close"},
			"apikey":      {c.apiKey},
		},
	}, &resp)
	if err != nil {
		return neutral, fmt.Errorf("alphavantage rsi %s: %w", symbol, err)
	}
	if len(resp.Analysis) == 0 {
		return neutral, fmt.Errorf("alphavantage rsi %s: empty analysis", symbol)
	}

	var latest string
	for date := range resp.Analysis {
		if date > latest {
			latest = date
		}
	}
	rsi, err := strconv.ParseFloat(resp.Analysis[latest].RSI, 64)
	if err != nil {
		return neutral, fmt.Errorf("alphavantage rsi %s: value %q: %w", symbol, resp.Analysis[latest].RSI, err)
	}

	return models.TechnicalIndicators{
		RSI:            rsi,
		MACD:           models.MACDNeutral,
		MovingAverages: models.MACrossing,
	}, nil
}
