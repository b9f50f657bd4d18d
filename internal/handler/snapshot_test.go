package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/crypto-tracker/internal/market"
	"github.com/iliyamo/crypto-tracker/internal/repository"
)

func newSnapshotHandler(t *testing.T, upstream http.HandlerFunc) (*SnapshotHandler, sqlmock.Sqlmock, func()) {
	t.Helper()
	ts := httptest.NewServer(upstream)
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	h := NewSnapshotHandler(repository.NewSnapshotRepo(db), market.NewClient(ts.URL))
	return h, mock, func() { db.Close(); ts.Close() }
}

func TestSnapshotCapture_Created(t *testing.T) {
	t.Parallel()

	h, mock, done := newSnapshotHandler(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":"bitcoin","name":"Bitcoin","current_price":42000,"price_change_percentage_24h":2.5}]`))
	})
	defer done()

	mock.ExpectExec("INSERT INTO coin_snapshots").
		WithArgs(uint64(4), "bitcoin", "Bitcoin", 42000.0, 2.5).
		WillReturnResult(sqlmock.NewResult(31, 1))
	mock.ExpectQuery("FROM coin_snapshots WHERE id").
		WithArgs(uint64(31)).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "user_id", "coin_id", "name", "price", "price_change_percentage_24h", "snapshot_time"},
		).AddRow(31, 4, "bitcoin", "Bitcoin", 42000.0, 2.5, time.Now()))

	c, rec := jsonCtx(t, http.MethodPost, "/v1/snapshots/bitcoin", "")
	c.SetParamNames("coinId")
	c.SetParamValues("bitcoin")
	asUser(c, 4)
	require.NoError(t, h.Capture(c))
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Contains(t, rec.Body.String(), `"coin_id":"bitcoin"`)
	require.NoError(t, mock.ExpectationsWereMet())
}

// An unknown coin must not write anything: the upstream answers with an
// empty array and the handler stops before touching the database.
func TestSnapshotCapture_UnknownCoin(t *testing.T) {
	t.Parallel()

	h, mock, done := newSnapshotHandler(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})
	defer done()

	c, rec := jsonCtx(t, http.MethodPost, "/v1/snapshots/doesnotexist", "")
	c.SetParamNames("coinId")
	c.SetParamValues("doesnotexist")
	asUser(c, 4)
	require.NoError(t, h.Capture(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "coin not found")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotList_FilterByCoin(t *testing.T) {
	t.Parallel()

	h, mock, done := newSnapshotHandler(t, func(w http.ResponseWriter, r *http.Request) {})
	defer done()

	mock.ExpectQuery("FROM coin_snapshots WHERE user_id=. AND coin_id").
		WithArgs(uint64(4), "bitcoin").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "user_id", "coin_id", "name", "price", "price_change_percentage_24h", "snapshot_time"},
		).AddRow(2, 4, "bitcoin", "Bitcoin", 42100.0, 1.0, time.Now()).
			AddRow(1, 4, "bitcoin", "Bitcoin", 42000.0, 2.5, time.Now().Add(-time.Hour)))

	c, rec := jsonCtx(t, http.MethodGet, "/v1/snapshots/bitcoin", "")
	c.SetParamNames("coinId")
	c.SetParamValues("bitcoin")
	asUser(c, 4)
	require.NoError(t, h.List(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "42100")
	require.NoError(t, mock.ExpectationsWereMet())
}
