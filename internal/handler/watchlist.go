package handler // handler package contains watchlist endpoints

import (
	"errors"   // sentinel comparison for repository errors
	"net/http" // http provides status code constants
	"strconv"  // strconv parses string identifiers to numeric types
	"strings"  // strings offers trimming utilities

	"github.com/labstack/echo/v4" // echo is the web framework used for handlers

	"github.com/iliyamo/crypto-tracker/internal/middleware" // canonical identity accessor
	"github.com/iliyamo/crypto-tracker/internal/model"      // item type validation
	"github.com/iliyamo/crypto-tracker/internal/repository" // watchlist persistence
)

// WatchlistHandler bundles dependencies for watchlist endpoints.
type WatchlistHandler struct {
	Watchlist *repository.WatchlistRepo
}

func NewWatchlistHandler(w *repository.WatchlistRepo) *WatchlistHandler {
	if w == nil {
		panic("nil repository passed to NewWatchlistHandler")
	}
	return &WatchlistHandler{Watchlist: w}
}

// Add handles POST /v1/watchlist. Duplicate pairs are rejected by the
// storage-level unique key, so two concurrent adds for the same item
// can never both succeed.
func (h *WatchlistHandler) Add(c echo.Context) error {
	ident, err := middleware.CurrentIdentity(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		ItemID   string `json:"item_id"`
		ItemType string `json:"item_type"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	itemID := strings.TrimSpace(body.ItemID)
	itemType := strings.ToLower(strings.TrimSpace(body.ItemType))
	if itemID == "" || itemType == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "item_id and item_type required"})
	}
	if !model.ValidItemType(itemType) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "item_type must be coin or exchange"})
	}

	entry, err := h.Watchlist.Add(c.Request().Context(), ident.ID, itemID, itemType)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateItem) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "item already in watchlist"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not add item"})
	}
	return c.JSON(http.StatusCreated, watchlistResp(entry))
}

// Remove handles DELETE /v1/watchlist/:id. The delete is scoped to the
// caller's user id, so guessing another user's entry id yields 404.
func (h *WatchlistHandler) Remove(c echo.Context) error {
	ident, err := middleware.CurrentIdentity(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	if err := h.Watchlist.Remove(c.Request().Context(), ident.ID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "entry not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not remove item"})
	}
	return c.NoContent(http.StatusNoContent)
}

// List handles GET /v1/watchlist and always returns a JSON array, []
// when the user tracks nothing.
func (h *WatchlistHandler) List(c echo.Context) error {
	ident, err := middleware.CurrentIdentity(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	entries, err := h.Watchlist.ListByUser(c.Request().Context(), ident.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch watchlist"})
	}
	out := make([]echo.Map, 0, len(entries))
	for _, e := range entries {
		out = append(out, watchlistResp(e))
	}
	return c.JSON(http.StatusOK, out)
}

func watchlistResp(e model.WatchlistEntry) echo.Map {
	return echo.Map{
		"id":         e.ID,
		"item_id":    e.ItemID,
		"item_type":  e.ItemType,
		"created_at": e.CreatedAt,
	}
}
