package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/crypto-tracker/internal/market"
	"github.com/iliyamo/crypto-tracker/internal/middleware"
	"github.com/iliyamo/crypto-tracker/internal/model"
	"github.com/iliyamo/crypto-tracker/internal/queue"
	"github.com/iliyamo/crypto-tracker/internal/repository"
	queuepublisher "github.com/iliyamo/crypto-tracker/internal/service"
)

// SnapshotHandler bundles dependencies for snapshot endpoints.
type SnapshotHandler struct {
	Snapshots *repository.SnapshotRepo
	Market    *market.Client
}

func NewSnapshotHandler(s *repository.SnapshotRepo, m *market.Client) *SnapshotHandler {
	if s == nil || m == nil {
		panic("nil dependency passed to NewSnapshotHandler")
	}
	return &SnapshotHandler{Snapshots: s, Market: m}
}

// Capture handles POST /v1/snapshots/:coinId. The upstream resolve runs
// first and holds no database resources; only a successful resolve
// appends a row. Captures are deliberately not deduplicated: every call
// appends a new snapshot, and any one-per-day style policy belongs to
// the caller.
func (h *SnapshotHandler) Capture(c echo.Context) error {
	ident, err := middleware.CurrentIdentity(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	coinID := strings.TrimSpace(c.Param("coinId"))
	if coinID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "coin id required"})
	}

	ctx := c.Request().Context()

	coin, found, err := h.Market.CoinByID(ctx, coinID)
	if err != nil {
		if errors.Is(err, market.ErrUpstream) {
			return c.JSON(http.StatusBadGateway, echo.Map{"error": "market data unavailable"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not resolve coin"})
	}
	if !found {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "coin not found"})
	}

	snap, err := h.Snapshots.Insert(ctx, model.Snapshot{
		UserID:    ident.ID,
		CoinID:    coin.ID,
		Name:      coin.Name,
		Price:     coin.CurrentPrice,
		Change24h: coin.Change24h,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not save snapshot"})
	}

	// Fire-and-forget: a broker failure never fails the capture.
	_ = queuepublisher.PublishSnapshotCaptured(ctx, queue.SnapshotCapturedEvent{
		SnapshotID: snap.ID,
		UserID:     snap.UserID,
		CoinID:     snap.CoinID,
		Name:       snap.Name,
		Price:      snap.Price,
		Change24h:  snap.Change24h,
		CapturedAt: snap.SnapshotTime.UTC().Format("2006-01-02T15:04:05Z07:00"),
	})

	return c.JSON(http.StatusCreated, snapshotResp(snap))
}

// List handles GET /v1/snapshots and GET /v1/snapshots/:coinId. Results
// are the caller's own snapshots, newest capture first, [] when empty.
func (h *SnapshotHandler) List(c echo.Context) error {
	ident, err := middleware.CurrentIdentity(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	coinID := strings.TrimSpace(c.Param("coinId")) // empty on the unfiltered route

	snaps, err := h.Snapshots.ListByUser(c.Request().Context(), ident.ID, coinID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch snapshots"})
	}
	out := make([]echo.Map, 0, len(snaps))
	for _, s := range snaps {
		out = append(out, snapshotResp(s))
	}
	return c.JSON(http.StatusOK, out)
}

func snapshotResp(s model.Snapshot) echo.Map {
	return echo.Map{
		"id":                          s.ID,
		"coin_id":                     s.CoinID,
		"name":                        s.Name,
		"price":                       s.Price,
		"price_change_percentage_24h": s.Change24h,
		"snapshot_time":               s.SnapshotTime,
	}
}
