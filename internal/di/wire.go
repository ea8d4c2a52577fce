//go:build wireinject
// +build wireinject

package di

import (
	"MarketPulse/pkg/config"
	"MarketPulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Outbound HTTP and provider clients
		ProvideHTTPClient,
		ProvideSymbolLookup,
		ProvideFinnhubClient,
		ProvideCoinGeckoClient,
		ProvideYahooClient,
		ProvideAlphaVantageClient,
		ProvideNewsAPIClient,

		// Cache and rate limiting
		ProvideCache,
		ProvideRateLimiter,

		// Use case and HTTP surface
		ProvideMarketAggregator,
		ProvideMarketHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
