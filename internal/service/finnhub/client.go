// Package finnhub wraps the Finnhub REST quote endpoint.
package finnhub

import (
	"context"
	"fmt"
	"strings"
	"time"

	"MarketPulse/internal/domain/models"
	xhttp "MarketPulse/pkg/http"
)

// Client fetches current stock quotes from Finnhub.
type Client struct {
	apiKey  string
	baseURL string
	http    *xhttp.Client
}

// New creates a Finnhub quote client.
func New(httpClient *xhttp.Client, baseURL, apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// quoteResponse mirrors the /quote payload. Finnhub uses single-letter keys:
// c current, d change, dp percent change, h high, l low, v volume.
type quoteResponse struct {
	C     float64 `json:"c"`
	D     float64 `json:"d"`
	DP    float64 `json:"dp"`
	H     float64 `json:"h"`
	L     float64 `json:"l"`
	V     float64 `json:"v"`
	Error string  `json:"error"`
}

// Quote fetches the current quote for a stock symbol. Fields the provider
// omits decode to 0, which downstream treats as "unknown".
func (c *Client) Quote(ctx context.Context, symbol string) (models.MarketQuote, error) {
	symbol = strings.ToUpper(symbol)

	var qr quoteResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/quote",
		QueryParams: map[string][]string{
			"symbol": {symbol},
			"token":  {c.apiKey},
		},
	}, &qr)
	if err != nil {
		return models.MarketQuote{}, fmt.Errorf("finnhub quote %s: %w", symbol, err)
	}
	if qr.Error != "" {
		return models.MarketQuote{}, fmt.Errorf("finnhub quote %s: %s", symbol, qr.Error)
	}

	return models.MarketQuote{
		Symbol:        symbol,
		Price:         qr.C,
		Change:        qr.D,
		ChangePercent: qr.DP,
		Volume:        qr.V,
		High24h:       qr.H,
		Low24h:        qr.L,
		LastUpdated:   time.Now().UTC(),
	}, nil
}
