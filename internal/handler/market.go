package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/crypto-tracker/internal/market"
)

// MarketHandler proxies the public browse endpoints to the market
// upstream. These routes sit behind the Redis response cache so the
// upstream quota is spent once per TTL, not once per page view.
type MarketHandler struct {
	Market *market.Client
}

func NewMarketHandler(m *market.Client) *MarketHandler {
	if m == nil {
		panic("nil market client passed to NewMarketHandler")
	}
	return &MarketHandler{Market: m}
}

// Coins handles GET /v1/market/coins?page=N: one page of coins ordered
// by market cap.
func (h *MarketHandler) Coins(c echo.Context) error {
	page := 1
	if v := c.QueryParam("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}
	coins, err := h.Market.CoinMarkets(c.Request().Context(), page)
	if err != nil {
		return marketErr(c, err)
	}
	return c.JSON(http.StatusOK, coins)
}

// Exchanges handles GET /v1/market/exchanges.
func (h *MarketHandler) Exchanges(c echo.Context) error {
	exs, err := h.Market.Exchanges(c.Request().Context())
	if err != nil {
		return marketErr(c, err)
	}
	return c.JSON(http.StatusOK, exs)
}

// Search handles GET /v1/market/search?query=q: upstream coin search
// combined with a substring filter over the exchange list.
func (h *MarketHandler) Search(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("query"))
	if query == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "query required"})
	}
	res, err := h.Market.Search(c.Request().Context(), query)
	if err != nil {
		return marketErr(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func marketErr(c echo.Context, err error) error {
	if errors.Is(err, market.ErrUpstream) {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "market data unavailable"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "market request failed"})
}
