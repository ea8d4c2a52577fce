package finnhub

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	xhttp "MarketPulse/pkg/http"

	"github.com/stretchr/testify/require"
)

func TestQuoteMapsFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/quote", r.URL.Path)
		require.Equal(t, "AAPL", r.URL.Query().Get("symbol"))
		require.Equal(t, "test-key", r.URL.Query().Get("token"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"c":187.4,"d":1.2,"dp":0.64,"h":189.1,"l":185.9,"v":51234567}`))
	}))
	defer srv.Close()

	c := New(xhttp.NewClient(), srv.URL, "test-key")
	q, err := c.Quote(context.Background(), "aapl")
	require.NoError(t, err)
	require.Equal(t, "AAPL", q.Symbol)
	require.Equal(t, 187.4, q.Price)
	require.Equal(t, 1.2, q.Change)
	require.Equal(t, 0.64, q.ChangePercent)
	require.Equal(t, 189.1, q.High24h)
	require.Equal(t, 185.9, q.Low24h)
	require.Equal(t, float64(51234567), q.Volume)
	require.False(t, q.LastUpdated.IsZero())
}

func TestQuoteMissingFieldsDefaultToZero(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"c":42.0}`))
	}))
	defer srv.Close()

	c := New(xhttp.NewClient(), srv.URL, "k")
	q, err := c.Quote(context.Background(), "XYZ")
	require.NoError(t, err)
	require.Equal(t, 42.0, q.Price)
	require.Zero(t, q.Change)
	require.Zero(t, q.Volume)
}

func TestQuoteErrorPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":"Invalid API key"}`))
	}))
	defer srv.Close()

	c := New(xhttp.NewClient(), srv.URL, "")
	_, err := c.Quote(context.Background(), "AAPL")
	require.Error(t, err)
	require.Contains(t, err.Error(), "Invalid API key")
}

func TestQuoteUpstreamStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := New(xhttp.NewClient(), srv.URL, "k")
	_, err := c.Quote(context.Background(), "AAPL")
	require.Error(t, err)
}
