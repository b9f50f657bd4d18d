package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/crypto-tracker/internal/model"
)

// WatchlistRepo persists a user's tracked market items. Uniqueness of
// (user_id, item_id) is enforced by the table's unique key, not by a
// read-then-insert pre-check: two concurrent adds for the same pair
// race at the database and exactly one wins.
type WatchlistRepo struct{ DB *sql.DB }

func NewWatchlistRepo(db *sql.DB) *WatchlistRepo { return &WatchlistRepo{DB: db} }

// Add inserts a watchlist entry and returns the stored row. A duplicate
// key violation maps to ErrDuplicateItem.
func (r *WatchlistRepo) Add(ctx context.Context, userID uint64, itemID, itemType string) (model.WatchlistEntry, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO watchlist (user_id, item_id, item_type) VALUES (?,?,?)",
		userID, itemID, itemType)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return model.WatchlistEntry{}, ErrDuplicateItem
		}
		return model.WatchlistEntry{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.WatchlistEntry{}, err
	}
	var e model.WatchlistEntry
	err = r.DB.QueryRowContext(ctx,
		"SELECT id,user_id,item_id,item_type,created_at FROM watchlist WHERE id=? LIMIT 1",
		uint64(id)).Scan(&e.ID, &e.UserID, &e.ItemID, &e.ItemType, &e.CreatedAt)
	return e, err
}

// Remove deletes an entry only when it belongs to userID. Zero rows
// affected means the entry does not exist or is owned by someone else;
// both cases surface as ErrNotFound so ids cannot be probed.
func (r *WatchlistRepo) Remove(ctx context.Context, userID, entryID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM watchlist WHERE id=? AND user_id=?", entryID, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByUser returns the user's entries newest first. The slice is
// never nil so an empty watchlist serializes as [].
func (r *WatchlistRepo) ListByUser(ctx context.Context, userID uint64) ([]model.WatchlistEntry, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,user_id,item_id,item_type,created_at FROM watchlist WHERE user_id=? ORDER BY created_at DESC, id DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []model.WatchlistEntry{}
	for rows.Next() {
		var e model.WatchlistEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.ItemID, &e.ItemType, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
