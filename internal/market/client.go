// Package market is the client for the third-party market-data API
// (CoinGecko compatible). It is the only place in the codebase that
// talks to the upstream: the snapshot capture path resolves current
// prices through it and the public browse endpoints proxy it.
//
// The upstream rate limits aggressively, so every call runs through a
// small retry loop with doubling backoff and a longer wait after a 429.
// The client holds no database resources; callers must finish their
// upstream call before touching the DB.
package market

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrUpstream is returned when the upstream could not be reached or
// kept failing after retries. Handlers translate it into HTTP 502.
var ErrUpstream = errors.New("market upstream unavailable")

// CoinMarket mirrors one element of the upstream /coins/markets
// response. Only the fields the application consumes are decoded.
type CoinMarket struct {
	ID           string  `json:"id"`
	Symbol       string  `json:"symbol"`
	Name         string  `json:"name"`
	Image        string  `json:"image"`
	CurrentPrice float64 `json:"current_price"`
	MarketCap    float64 `json:"market_cap"`
	Change24h    float64 `json:"price_change_percentage_24h"`
}

// Exchange mirrors one element of the upstream /exchanges response.
type Exchange struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Image             string  `json:"image"`
	Country           string  `json:"country"`
	TrustScore        int     `json:"trust_score"`
	TradeVolume24hBTC float64 `json:"trade_volume_24h_btc"`
}

// SearchCoin mirrors one element of the coins list in the upstream
// /search response.
type SearchCoin struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
	Large  string `json:"large"`
}

// SearchResult is the combined search payload returned to the frontend:
// coins from the upstream search endpoint plus exchanges filtered by
// name/id substring.
type SearchResult struct {
	Coins     []SearchCoin `json:"coins"`
	Exchanges []Exchange   `json:"exchanges"`
}

// Client calls the market upstream with a bounded timeout and retries.
type Client struct {
	baseURL string
	http    *http.Client
	retries int
	delay   time.Duration
}

// NewClient builds a Client for the given base URL (no trailing slash).
// The HTTP timeout bounds each individual attempt.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		retries: 3,
		delay:   time.Second,
	}
}

// getJSON performs one GET with the retry/backoff policy and decodes
// the body into out. Transport failures, 429 and 5xx responses are
// retried; other non-200 statuses fail immediately. Rate-limit waits
// start at double the base delay, mirroring how the upstream asks
// clients to back off.
func (c *Client) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	delay := c.delay
	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return err
		}
		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			err = json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			if err != nil {
				return fmt.Errorf("%w: decode: %v", ErrUpstream, err)
			}
			return nil
		case resp.StatusCode == http.StatusTooManyRequests:
			resp.Body.Close()
			lastErr = fmt.Errorf("rate limited (429)")
			delay *= 2 // wait longer before hitting a throttling upstream again
		case resp.StatusCode >= 500:
			resp.Body.Close()
			lastErr = fmt.Errorf("upstream status %d", resp.StatusCode)
		default:
			resp.Body.Close()
			return fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
		}
	}
	return fmt.Errorf("%w: %v", ErrUpstream, lastErr)
}

// CoinByID resolves current market data for a single coin. The second
// return value is false when the upstream knows no such coin; that is
// distinct from ErrUpstream, which means the call itself failed.
func (c *Client) CoinByID(ctx context.Context, coinID string) (CoinMarket, bool, error) {
	q := url.Values{}
	q.Set("vs_currency", "usd")
	q.Set("ids", coinID)
	var coins []CoinMarket
	if err := c.getJSON(ctx, "/coins/markets", q, &coins); err != nil {
		return CoinMarket{}, false, err
	}
	if len(coins) == 0 {
		return CoinMarket{}, false, nil
	}
	return coins[0], true, nil
}

// CoinMarkets returns one page of coins ordered by market cap, 50 per
// page, matching what the browse UI renders.
func (c *Client) CoinMarkets(ctx context.Context, page int) ([]CoinMarket, error) {
	if page < 1 {
		page = 1
	}
	q := url.Values{}
	q.Set("vs_currency", "usd")
	q.Set("order", "market_cap_desc")
	q.Set("per_page", "50")
	q.Set("page", fmt.Sprint(page))
	var coins []CoinMarket
	if err := c.getJSON(ctx, "/coins/markets", q, &coins); err != nil {
		return nil, err
	}
	return coins, nil
}

// Exchanges returns the upstream exchange list.
func (c *Client) Exchanges(ctx context.Context) ([]Exchange, error) {
	var exs []Exchange
	if err := c.getJSON(ctx, "/exchanges", nil, &exs); err != nil {
		return nil, err
	}
	return exs, nil
}

// Search combines the upstream coin search with a local substring
// filter over the exchange list, since the upstream has no exchange
// search endpoint.
func (c *Client) Search(ctx context.Context, query string) (SearchResult, error) {
	q := url.Values{}
	q.Set("query", query)
	var raw struct {
		Coins []SearchCoin `json:"coins"`
	}
	if err := c.getJSON(ctx, "/search", q, &raw); err != nil {
		return SearchResult{}, err
	}
	exs, err := c.Exchanges(ctx)
	if err != nil {
		return SearchResult{}, err
	}

	needle := strings.ToLower(query)
	filtered := []Exchange{}
	for _, ex := range exs {
		if strings.Contains(strings.ToLower(ex.Name), needle) ||
			strings.Contains(strings.ToLower(ex.ID), needle) {
			filtered = append(filtered, ex)
		}
	}

	res := SearchResult{Coins: raw.Coins, Exchanges: filtered}
	if res.Coins == nil {
		res.Coins = []SearchCoin{}
	}
	return res, nil
}
