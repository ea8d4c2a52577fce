package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain repository.Metrics using Prometheus.
type Recorder struct {
	upstreamRequests *prometheus.CounterVec
	upstreamLatency  *prometheus.HistogramVec
	fallbacks        *prometheus.CounterVec
	synthesized      *prometheus.CounterVec
	cacheOps         *prometheus.CounterVec
	lastPrice        *prometheus.GaugeVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		upstreamRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketpulse_upstream_requests_total",
				Help: "Upstream provider requests by provider, data kind and outcome",
			},
			[]string{"provider", "kind", "outcome"},
		),
		upstreamLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "marketpulse_upstream_duration_seconds",
				Help:    "Upstream provider call duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"provider", "kind"},
		),
		fallbacks: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketpulse_history_fallbacks_total",
				Help: "Stock history requests served by the fallback provider",
			},
			[]string{"symbol"},
		),
		synthesized: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketpulse_history_synthesized_total",
				Help: "Stock history requests served by placeholder synthesis",
			},
			[]string{"symbol"},
		),
		cacheOps: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketpulse_history_cache_total",
				Help: "History cache lookups by result",
			},
			[]string{"result"},
		),
		lastPrice: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "marketpulse_last_price",
				Help: "Last quoted price for a symbol",
			},
			[]string{"asset_type", "symbol"},
		),
	}
}

// RecordUpstreamRequest records an upstream provider call outcome.
func (r *Recorder) RecordUpstreamRequest(provider, kind, outcome string) {
	r.upstreamRequests.WithLabelValues(provider, kind, outcome).Inc()
}

// RecordUpstreamLatency records an upstream provider call duration in seconds.
func (r *Recorder) RecordUpstreamLatency(provider, kind string, seconds float64) {
	r.upstreamLatency.WithLabelValues(provider, kind).Observe(seconds)
}

// RecordFallback records a stock-history request answered by the fallback provider.
func (r *Recorder) RecordFallback(symbol string) {
	r.fallbacks.WithLabelValues(symbol).Inc()
}

// RecordSynthesis records a stock-history request answered by placeholder synthesis.
func (r *Recorder) RecordSynthesis(symbol string) {
	r.synthesized.WithLabelValues(symbol).Inc()
}

// RecordCache records a history cache lookup result ("hit" or "miss").
func (r *Recorder) RecordCache(result string) {
	r.cacheOps.WithLabelValues(result).Inc()
}

// RecordLastPrice records the last quoted price for a symbol.
func (r *Recorder) RecordLastPrice(assetType, symbol string, price float64) {
	r.lastPrice.WithLabelValues(assetType, symbol).Set(price)
}
