// Package newsapi wraps the NewsAPI "everything" endpoint for market news.
package newsapi

import (
	"context"
	"fmt"
	"strings"
	"time"

	"MarketPulse/internal/domain/models"
	xhttp "MarketPulse/pkg/http"
	"MarketPulse/pkg/util"
)

// Client fetches news articles from NewsAPI.
type Client struct {
	apiKey  string
	baseURL string
	http    *xhttp.Client
}

// New creates a NewsAPI client.
func New(httpClient *xhttp.Client, baseURL, apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

type article struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
	Source      struct {
		Name string `json:"name"`
	} `json:"source"`
}

type everythingResponse struct {
	Status   string    `json:"status"`
	Message  string    `json:"message"`
	Articles []article `json:"articles"`
}

// News fetches the latest articles matching any of the symbols. Articles with
// non-ASCII titles are dropped to keep the feed in one script; the article URL
// serves as the item id.
func (c *Client) News(ctx context.Context, symbols []string) ([]models.NewsItem, error) {
	query := strings.Join(symbols, " OR ")

	var resp everythingResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/everything",
		QueryParams: map[string][]string{
			"q":        {query},
			"sortBy":   {"publishedAt"},
			"language": {"en"},
			"apiKey":   {c.apiKey},
		},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("newsapi everything %q: %w", query, err)
	}
	if resp.Status != "ok" {
		return nil, fmt.Errorf("newsapi everything %q: %s", query, resp.Message)
	}

	items := make([]models.NewsItem, 0, len(resp.Articles))
	for _, a := range resp.Articles {
		if a.Title == "" || !util.IsASCII(a.Title) {
			continue
		}
		summary := a.Description
		if summary == "" {
			summary = "No description available"
		}
		items = append(items, models.NewsItem{
			ID:          a.URL,
			Title:       a.Title,
			Summary:     summary,
			URL:         a.URL,
			Source:      a.Source.Name,
			PublishedAt: util.ParseTimeDefault(a.PublishedAt, time.Now().UTC()),
		})
	}
	return items, nil
}
