package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/crypto-tracker/internal/model"
)

// SnapshotRepo appends and lists immutable price snapshots. There is no
// update or delete here on purpose: rows in coin_snapshots are written
// once by the capture path and only ever read afterwards.
type SnapshotRepo struct{ DB *sql.DB }

func NewSnapshotRepo(db *sql.DB) *SnapshotRepo { return &SnapshotRepo{DB: db} }

// Insert appends a snapshot row and returns the stored record.
func (r *SnapshotRepo) Insert(ctx context.Context, s model.Snapshot) (model.Snapshot, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO coin_snapshots (user_id, coin_id, name, price, price_change_percentage_24h) VALUES (?,?,?,?,?)",
		s.UserID, s.CoinID, s.Name, s.Price, s.Change24h)
	if err != nil {
		return model.Snapshot{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Snapshot{}, err
	}
	var out model.Snapshot
	err = r.DB.QueryRowContext(ctx,
		"SELECT id,user_id,coin_id,name,price,price_change_percentage_24h,snapshot_time FROM coin_snapshots WHERE id=? LIMIT 1",
		uint64(id)).Scan(&out.ID, &out.UserID, &out.CoinID, &out.Name, &out.Price, &out.Change24h, &out.SnapshotTime)
	return out, err
}

// ListByUser returns the caller's snapshots ordered by capture time
// descending. When coinID is non-empty the result is filtered to that
// coin. The slice is never nil.
func (r *SnapshotRepo) ListByUser(ctx context.Context, userID uint64, coinID string) ([]model.Snapshot, error) {
	q := "SELECT id,user_id,coin_id,name,price,price_change_percentage_24h,snapshot_time FROM coin_snapshots WHERE user_id=?"
	args := []any{userID}
	if coinID != "" {
		q += " AND coin_id=?"
		args = append(args, coinID)
	}
	q += " ORDER BY snapshot_time DESC, id DESC"

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	snaps := []model.Snapshot{}
	for rows.Next() {
		var s model.Snapshot
		if err := rows.Scan(&s.ID, &s.UserID, &s.CoinID, &s.Name, &s.Price, &s.Change24h, &s.SnapshotTime); err != nil {
			return nil, err
		}
		snaps = append(snaps, s)
	}
	return snaps, rows.Err()
}
