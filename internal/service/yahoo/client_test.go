package yahoo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	xhttp "MarketPulse/pkg/http"

	"github.com/stretchr/testify/require"
)

func TestDailyHistorySkipsNullClosesAndSorts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v8/finance/chart/AAPL", r.URL.Path)
		require.Equal(t, "1d", r.URL.Query().Get("interval"))
		require.NotEmpty(t, r.URL.Query().Get("period1"))
		require.NotEmpty(t, r.URL.Query().Get("period2"))
		// 2024-03-01, 2024-03-02 (holiday, null close), 2024-03-03
		_, _ = w.Write([]byte(`{"chart":{"result":[{
			"timestamp":[1709251200,1709337600,1709424000],
			"indicators":{"quote":[{
				"close":[180.5,null,182.25],
				"volume":[1000000,null,1200000]
			}]}
		}],"error":null}}`))
	}))
	defer srv.Close()

	c := New(xhttp.NewClient(), srv.URL)
	series, err := c.DailyHistory(context.Background(), "aapl", 90)
	require.NoError(t, err)
	require.Len(t, series, 2)
	require.Equal(t, "2024-03-01", series[0].Date)
	require.Equal(t, 180.5, series[0].Price)
	require.Equal(t, 1000000.0, series[0].Volume)
	require.Equal(t, "2024-03-03", series[1].Date)
	require.Equal(t, 182.25, series[1].Price)
}

func TestDailyHistoryAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`))
	}))
	defer srv.Close()

	c := New(xhttp.NewClient(), srv.URL)
	_, err := c.DailyHistory(context.Background(), "GONE", 90)
	require.Error(t, err)
	require.Contains(t, err.Error(), "delisted")
}

func TestDailyHistoryEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"chart":{"result":[],"error":null}}`))
	}))
	defer srv.Close()

	c := New(xhttp.NewClient(), srv.URL)
	_, err := c.DailyHistory(context.Background(), "AAPL", 90)
	require.Error(t, err)
}
