// Package queue defines message payloads exchanged over the message broker.
package queue

// SnapshotCapturedEvent is published after a price snapshot is
// successfully appended. It carries enough information for downstream
// consumers to log or trigger alerts without querying the primary
// database.
type SnapshotCapturedEvent struct {
	SnapshotID uint64  `json:"snapshot_id"`
	UserID     uint64  `json:"user_id"`
	CoinID     string  `json:"coin_id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Change24h  float64 `json:"price_change_percentage_24h"`
	CapturedAt string  `json:"captured_at"`
}
