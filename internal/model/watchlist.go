package model

import "time"

// Watchlist item types. These are the only values accepted by the API
// and by the `watchlist.item_type` enum column.
const (
	ItemTypeCoin     = "coin"
	ItemTypeExchange = "exchange"
)

// WatchlistEntry is a (user, item) pairing from the `watchlist` table.
// The table carries a unique key on (user_id, item_id) so a second add
// for the same pair fails at the storage layer even under concurrent
// requests.
type WatchlistEntry struct {
	ID        uint64    // watchlist.id
	UserID    uint64    // watchlist.user_id
	ItemID    string    // watchlist.item_id (upstream coin or exchange id)
	ItemType  string    // watchlist.item_type ("coin" | "exchange")
	CreatedAt time.Time // watchlist.created_at
}

// ValidItemType reports whether t is one of the accepted item types.
func ValidItemType(t string) bool {
	return t == ItemTypeCoin || t == ItemTypeExchange
}
