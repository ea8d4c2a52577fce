package models

import (
	"sort"
	"time"
)

// AssetType is the asset class a request targets.
type AssetType string

const (
	AssetTypeStock  AssetType = "stock"
	AssetTypeCrypto AssetType = "crypto"
)

// MACDSignal is the simplified MACD classification.
type MACDSignal string

const (
	MACDBullish MACDSignal = "bullish"
	MACDBearish MACDSignal = "bearish"
	MACDNeutral MACDSignal = "neutral"
)

// MASignal classifies price position relative to its moving averages.
type MASignal string

const (
	MAAbove    MASignal = "above"
	MABelow    MASignal = "below"
	MACrossing MASignal = "crossing"
	MANeutral  MASignal = "neutral"
)

// Sentiment is the aggregate analysis sentiment.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// MarketQuote is the normalized current quote for one symbol. A price of 0
// means the upstream lookup produced nothing usable; the aggregator logs the
// cause before handing out the zero value.
type MarketQuote struct {
	Symbol        string    `json:"symbol"`
	Price         float64   `json:"price"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"changePercent"`
	Volume        float64   `json:"volume"`
	MarketCap     float64   `json:"marketCap,omitempty"`
	High24h       float64   `json:"high24h,omitempty"`
	Low24h        float64   `json:"low24h,omitempty"`
	LastUpdated   time.Time `json:"lastUpdated"`
}

// HistoricalPoint is one daily close.
type HistoricalPoint struct {
	Date   string  `json:"date"` // ISO calendar day, yyyy-mm-dd
	Price  float64 `json:"price"`
	Volume float64 `json:"volume"`
}

// HistoricalSeries is a daily price series, ascending by date without
// duplicates once SortAscending has run.
type HistoricalSeries []HistoricalPoint

// SortAscending orders the series by date. ISO day strings compare
// lexicographically in chronological order.
func (s HistoricalSeries) SortAscending() {
	sort.Slice(s, func(i, j int) bool { return s[i].Date < s[j].Date })
}

// ChangePercent is the percent change from the first to the last point,
// or 0 when the series has fewer than two points.
func (s HistoricalSeries) ChangePercent() float64 {
	if len(s) < 2 || s[0].Price == 0 {
		return 0
	}
	return (s[len(s)-1].Price - s[0].Price) / s[0].Price * 100
}

// TechnicalIndicators is the normalized indicator set for one symbol.
// MACD and moving-average classification are simplified outputs; only RSI is
// sourced from real data.
type TechnicalIndicators struct {
	RSI            float64    `json:"rsi"`
	MACD           MACDSignal `json:"macd"`
	MovingAverages MASignal   `json:"movingAverages"`
	Volume         float64    `json:"volume"`
	Volatility     float64    `json:"volatility"`
}

// NewsItem is one normalized news article. The article URL doubles as the
// identity key.
type NewsItem struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Summary      string    `json:"summary"`
	URL          string    `json:"url"`
	Source       string    `json:"source"`
	PublishedAt  time.Time `json:"publishedAt"`
	Sentiment    float64   `json:"sentiment,omitempty"`
	AIHighlights []string  `json:"aiHighlights,omitempty"`
}

// TechnicalSummary is the indicator subset echoed inside an Analysis.
type TechnicalSummary struct {
	RSI            float64    `json:"rsi"`
	MACD           MACDSignal `json:"macd"`
	MovingAverages MASignal   `json:"movingAverages"`
}

// Analysis is the derived market analysis for one symbol.
type Analysis struct {
	Summary           string           `json:"summary"`
	Sentiment         Sentiment        `json:"sentiment"`
	TechnicalAnalysis TechnicalSummary `json:"technicalAnalysis"`
	Confidence        float64          `json:"confidence"`
	Recommendations   []string         `json:"recommendations"`
	LastUpdated       time.Time        `json:"lastUpdated"`
}

// MarketData bundles the current quote with its resolved historical series.
type MarketData struct {
	MarketQuote
	HistoricalData HistoricalSeries `json:"historicalData"`
}
