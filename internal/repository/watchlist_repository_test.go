package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestWatchlistRepo_Add(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)
	repo := NewWatchlistRepo(db)

	mock.ExpectExec("INSERT INTO watchlist").
		WithArgs(uint64(1), "bitcoin", "coin").
		WillReturnResult(sqlmock.NewResult(10, 1))
	mock.ExpectQuery("SELECT id,user_id,item_id,item_type,created_at FROM watchlist WHERE id=").
		WithArgs(uint64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "item_id", "item_type", "created_at"}).
			AddRow(10, 1, "bitcoin", "coin", time.Now()))

	e, err := repo.Add(context.Background(), 1, "bitcoin", "coin")
	require.NoError(t, err)
	require.Equal(t, "bitcoin", e.ItemID)
	require.Equal(t, uint64(1), e.UserID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWatchlistRepo_Add_Duplicate(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)
	repo := NewWatchlistRepo(db)

	// Second add for the same (user_id, item_id) hits the unique key.
	mock.ExpectExec("INSERT INTO watchlist").
		WillReturnError(errors.New("Error 1062: Duplicate entry '1-bitcoin' for key 'uq_watchlist_user_item'"))

	_, err := repo.Add(context.Background(), 1, "bitcoin", "coin")
	require.ErrorIs(t, err, ErrDuplicateItem)
}

func TestWatchlistRepo_Remove_OtherUsersEntry(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)
	repo := NewWatchlistRepo(db)

	// The delete is scoped to user_id, so another user's entry id
	// affects zero rows and surfaces as not found.
	mock.ExpectExec("DELETE FROM watchlist WHERE id=").
		WithArgs(uint64(10), uint64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Remove(context.Background(), 2, 10)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestWatchlistRepo_ListByUser_Empty(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)
	repo := NewWatchlistRepo(db)

	mock.ExpectQuery("SELECT id,user_id,item_id,item_type,created_at FROM watchlist WHERE user_id=").
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "item_id", "item_type", "created_at"}))

	entries, err := repo.ListByUser(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, entries) // [] on the wire, never null
	require.Len(t, entries, 0)
}
