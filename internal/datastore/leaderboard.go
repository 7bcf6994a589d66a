package datastore

import (
	"context"
	"time"

	"investcraft/internal/models"

	"github.com/uptrace/bun"
)

// LeaderboardAllTime ranks users by their recomputed total score. A negative
// maxStreak means no tier filter.
func LeaderboardAllTime(ctx context.Context, db bun.IDB, minStreak, maxStreak, limit int) ([]*models.LeaderboardEntry, error) {
	var entries []*models.LeaderboardEntry
	q := db.NewSelect().Model((*models.User)(nil)).
		ColumnExpr("id, name, avatar_url, streak, total_score AS score")
	if maxStreak >= 0 {
		q = q.Where("streak BETWEEN ? AND ?", minStreak, maxStreak)
	}
	err := q.OrderExpr("total_score DESC").
		Limit(limit).
		Scan(ctx, &entries)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// LeaderboardWeekly sums session scores in the trailing window per user.
func LeaderboardWeekly(ctx context.Context, db bun.IDB, since time.Time, limit int) ([]*models.LeaderboardEntry, error) {
	var entries []*models.LeaderboardEntry
	err := db.NewSelect().Model((*models.User)(nil)).
		ColumnExpr("\"user\".id, \"user\".name, \"user\".avatar_url, \"user\".streak").
		ColumnExpr("SUM(gs.score)::int AS score").
		ColumnExpr("COUNT(gs.id)::int AS games_played").
		Join("JOIN game_sessions AS gs ON gs.user_id = \"user\".id").
		Where("gs.played_at >= ?", since).
		GroupExpr("\"user\".id, \"user\".name, \"user\".avatar_url, \"user\".streak").
		OrderExpr("score DESC").
		Limit(limit).
		Scan(ctx, &entries)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// LeaderboardDaily joins sessions to the puzzle scheduled for the day;
// the faster player wins a score tie.
func LeaderboardDaily(ctx context.Context, db bun.IDB, day time.Time, limit int) ([]*models.LeaderboardEntry, error) {
	var entries []*models.LeaderboardEntry
	err := db.NewSelect().Model((*models.User)(nil)).
		ColumnExpr("\"user\".id, \"user\".name, \"user\".avatar_url, \"user\".streak").
		ColumnExpr("gs.score, gs.moves_used, gs.time_taken").
		Join("JOIN game_sessions AS gs ON gs.user_id = \"user\".id").
		Join("JOIN puzzles AS p ON p.id = gs.puzzle_id").
		Where("p.scheduled_date = ?", day).
		OrderExpr("gs.score DESC").
		OrderExpr("gs.time_taken ASC").
		Limit(limit).
		Scan(ctx, &entries)
	if err != nil {
		return nil, err
	}
	return entries, nil
}
