package market

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// testClient points a Client at ts with retry delays short enough for tests.
func testClient(ts *httptest.Server) *Client {
	c := NewClient(ts.URL)
	c.delay = time.Millisecond
	return c
}

func TestCoinByID_Found(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/coins/markets", r.URL.Path)
		require.Equal(t, "bitcoin", r.URL.Query().Get("ids"))
		require.Equal(t, "usd", r.URL.Query().Get("vs_currency"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"bitcoin","name":"Bitcoin","current_price":50000.5,"price_change_percentage_24h":-1.2}]`))
	}))
	defer ts.Close()

	coin, found, err := testClient(ts).CoinByID(context.Background(), "bitcoin")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "Bitcoin", coin.Name)
	require.Equal(t, 50000.5, coin.CurrentPrice)
}

func TestCoinByID_UnknownCoin(t *testing.T) {
	t.Parallel()

	// The upstream answers an unknown id with an empty array, not 404.
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	_, found, err := testClient(ts).CoinByID(context.Background(), "doesnotexist")
	require.NoError(t, err)
	require.False(t, found)
}

func TestGetJSON_RetriesAfter429(t *testing.T) {
	t.Parallel()

	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`[{"id":"bitcoin"}]`))
	}))
	defer ts.Close()

	coins, err := testClient(ts).CoinMarkets(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, coins, 1)
	require.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestGetJSON_UpstreamKeepsFailing(t *testing.T) {
	t.Parallel()

	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	_, err := testClient(ts).Exchanges(context.Background())
	require.ErrorIs(t, err, ErrUpstream)
	require.Equal(t, int32(4), atomic.LoadInt32(&calls)) // initial try + 3 retries
}

func TestGetJSON_NonRetryableStatus(t *testing.T) {
	t.Parallel()

	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	_, err := testClient(ts).Exchanges(context.Background())
	require.ErrorIs(t, err, ErrUpstream)
	require.Equal(t, int32(1), atomic.LoadInt32(&calls)) // no retry on plain 4xx
}

func TestSearch_FiltersExchangesLocally(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search":
			_, _ = w.Write([]byte(`{"coins":[{"id":"binancecoin","name":"BNB"}]}`))
		case "/exchanges":
			_, _ = w.Write([]byte(`[{"id":"binance","name":"Binance"},{"id":"kraken","name":"Kraken"}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer ts.Close()

	res, err := testClient(ts).Search(context.Background(), "binan")
	require.NoError(t, err)
	require.Len(t, res.Coins, 1)
	require.Len(t, res.Exchanges, 1)
	require.Equal(t, "binance", res.Exchanges[0].ID)
}
