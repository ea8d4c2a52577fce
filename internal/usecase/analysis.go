package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"MarketPulse/internal/domain/models"
)

// GetAnalysis derives a market analysis from the indicator set and the price
// trend over the default history window.
func (a *MarketAggregator) GetAnalysis(ctx context.Context, assetType models.AssetType, symbol string) models.Analysis {
	indicators := a.GetTechnicalIndicators(ctx, symbol)
	data := a.GetMarketData(ctx, assetType, symbol, a.cfg.DefaultDays)
	priceChange := data.HistoricalData.ChangePercent()

	return models.Analysis{
		Summary:   marketSummary(indicators, priceChange),
		Sentiment: determineSentiment(indicators, priceChange),
		TechnicalAnalysis: models.TechnicalSummary{
			RSI:            indicators.RSI,
			MACD:           indicators.MACD,
			MovingAverages: indicators.MovingAverages,
		},
		Confidence:      calculateConfidence(indicators),
		Recommendations: recommendations(indicators, priceChange),
		LastUpdated:     time.Now().UTC(),
	}
}

func marketSummary(ind models.TechnicalIndicators, priceChange float64) string {
	trendStrength := "mild"
	switch {
	case math.Abs(priceChange) > 10:
		trendStrength = "strong"
	case math.Abs(priceChange) > 5:
		trendStrength = "moderate"
	}

	trend := "downward"
	if priceChange > 0 {
		trend = "upward"
	}

	rsiCondition := "neutral"
	switch {
	case ind.RSI > 70:
		rsiCondition = "overbought"
	case ind.RSI < 30:
		rsiCondition = "oversold"
	}

	return fmt.Sprintf(
		"The asset is showing a %s %s trend with %s conditions. Technical indicators suggest %s momentum with %s moving average signals.",
		trendStrength, trend, rsiCondition, ind.MACD, ind.MovingAverages,
	)
}

// determineSentiment counts four bullish signals. Three or more is positive,
// one or fewer is negative.
func determineSentiment(ind models.TechnicalIndicators, priceChange float64) models.Sentiment {
	positive := 0
	for _, signal := range []bool{
		ind.RSI > 50,
		ind.MACD == models.MACDBullish,
		ind.MovingAverages == models.MAAbove,
		priceChange > 0,
	} {
		if signal {
			positive++
		}
	}

	switch {
	case positive >= 3:
		return models.SentimentPositive
	case positive <= 1:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

func recommendations(ind models.TechnicalIndicators, priceChange float64) []string {
	recs := []string{}

	if ind.RSI > 70 {
		recs = append(recs, "RSI indicates overbought conditions - consider taking profits")
	} else if ind.RSI < 30 {
		recs = append(recs, "RSI indicates oversold conditions - potential buying opportunity")
	}

	if ind.MACD == models.MACDBullish {
		recs = append(recs, "MACD shows bullish momentum - upward trend may continue")
	} else if ind.MACD == models.MACDBearish {
		recs = append(recs, "MACD shows bearish momentum - downward pressure expected")
	}

	if ind.MovingAverages == models.MAAbove {
		recs = append(recs, "Price above moving averages - trend remains bullish")
	} else if ind.MovingAverages == models.MABelow {
		recs = append(recs, "Price below moving averages - trend remains bearish")
	}

	if math.Abs(priceChange) > 10 {
		direction, watch := "bearish", "bounce"
		if priceChange > 0 {
			direction, watch = "bullish", "reversal"
		}
		recs = append(recs, fmt.Sprintf("Strong %s movement - watch for potential %s", direction, watch))
	}

	return recs
}

// calculateConfidence is the share of the three technical signals that agree
// on a bullish reading.
func calculateConfidence(ind models.TechnicalIndicators) float64 {
	aligned := 0
	for _, signal := range []bool{
		ind.RSI > 50,
		ind.MACD == models.MACDBullish,
		ind.MovingAverages == models.MAAbove,
	} {
		if signal {
			aligned++
		}
	}
	return float64(aligned) / 3
}
