package model

import "time"

// Snapshot is an immutable point-in-time record of a coin's market data
// from the `coin_snapshots` table. Rows are append-only: the snapshot
// service inserts them and nothing ever updates or deletes them on a
// user's behalf. Multiple snapshots per (user, coin) are expected;
// listings order them by SnapshotTime descending.
type Snapshot struct {
	ID           uint64    // coin_snapshots.id
	UserID       uint64    // coin_snapshots.user_id
	CoinID       string    // coin_snapshots.coin_id (upstream id, e.g. "bitcoin")
	Name         string    // coin_snapshots.name (display name at capture time)
	Price        float64   // coin_snapshots.price (USD)
	Change24h    float64   // coin_snapshots.price_change_percentage_24h
	SnapshotTime time.Time // coin_snapshots.snapshot_time
}
