package repository

import (
	"context"
	"database/sql"
)

// Stats carries the dashboard counters. The three counts are read with
// independent queries and no shared transaction; they are dashboard
// approximations, not invariant-bearing values.
type Stats struct {
	TotalUsers          int `json:"totalUsers"`
	TotalPosts          int `json:"totalPosts"`
	TotalWatchlistItems int `json:"totalWatchlistItems"`
}

type StatsRepo struct{ DB *sql.DB }

func NewStatsRepo(db *sql.DB) *StatsRepo { return &StatsRepo{DB: db} }

// Counts returns the totals for the admin dashboard.
func (r *StatsRepo) Counts(ctx context.Context) (Stats, error) {
	var s Stats
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&s.TotalUsers); err != nil {
		return Stats{}, err
	}
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM posts").Scan(&s.TotalPosts); err != nil {
		return Stats{}, err
	}
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM watchlist").Scan(&s.TotalWatchlistItems); err != nil {
		return Stats{}, err
	}
	return s, nil
}
