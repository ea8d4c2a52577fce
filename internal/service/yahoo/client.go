// Package yahoo wraps the Yahoo Finance v8 chart endpoint, the primary source
// for stock daily history.
package yahoo

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"MarketPulse/internal/domain/models"
	xhttp "MarketPulse/pkg/http"
	"MarketPulse/pkg/util"
)

// Client fetches stock price history from Yahoo Finance.
type Client struct {
	baseURL string
	http    *xhttp.Client
}

// New creates a Yahoo Finance chart client.
func New(httpClient *xhttp.Client, baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// chartResponse mirrors the v8 chart payload. Close and volume arrays carry
// nulls for non-trading days, hence the pointer elements.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// DailyHistory fetches daily closes over the trailing day window. Days with a
// null close are skipped; the result is ascending by date.
func (c *Client) DailyHistory(ctx context.Context, symbol string, days int) (models.HistoricalSeries, error) {
	symbol = strings.ToUpper(symbol)
	end := time.Now().Unix()
	start := end - int64(days)*24*60*60

	var chart chartResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/v8/finance/chart/" + symbol,
		Headers: map[string]string{
			"User-Agent": "Mozilla/5.0",
		},
		QueryParams: map[string][]string{
			"period1":  {strconv.FormatInt(start, 10)},
			"period2":  {strconv.FormatInt(end, 10)},
			"interval": {"1d"},
		},
	}, &chart)
	if err != nil {
		return nil, fmt.Errorf("yahoo chart %s: %w", symbol, err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo chart %s: %s", symbol, chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo chart %s: empty result", symbol)
	}

	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	if len(quote.Close) != len(result.Timestamp) {
		return nil, fmt.Errorf("yahoo chart %s: close/timestamp length mismatch", symbol)
	}

	series := make(models.HistoricalSeries, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if quote.Close[i] == nil {
			continue
		}
		var volume float64
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			volume = *quote.Volume[i]
		}
		series = append(series, models.HistoricalPoint{
			Date:   util.FormatDay(time.Unix(ts, 0)),
			Price:  *quote.Close[i],
			Volume: volume,
		})
	}

	series.SortAscending()
	return series, nil
}
