package datastore

import (
	"context"
	"time"

	"investcraft/internal/models"

	"github.com/uptrace/bun"
)

func CreateTablePuzzleVote(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.PuzzleVote)(nil)).IfNotExists().
		ForeignKey(`("user_id") REFERENCES "users" ("id") ON DELETE CASCADE`).
		Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.PuzzleVote)(nil)).Index("index_puzzle_votes_user_date").Unique().IfNotExists().Column("user_id", "vote_date").Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.PuzzleVote)(nil)).Index("index_puzzle_votes_date").IfNotExists().Column("vote_date").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

// UpsertVote keeps one vote per (user, day). A re-vote overwrites the ticker
// but keeps the original created_at, so the tie-break in the selector rewards
// the earliest committed voter rather than the latest flip-flop.
func UpsertVote(ctx context.Context, db bun.IDB, vote *models.PuzzleVote) error {
	_, err := db.NewInsert().Model(vote).
		On("CONFLICT (user_id, vote_date) DO UPDATE").
		Set("ticker = EXCLUDED.ticker").
		Exec(ctx)
	return err
}

// TopTickerForDate tallies votes for the day; ties break on whichever ticker
// accumulated votes first. Returns "" when nobody voted.
func TopTickerForDate(ctx context.Context, db bun.IDB, day time.Time) (string, error) {
	var tallies []*models.VoteTally
	err := db.NewSelect().Model((*models.PuzzleVote)(nil)).
		ColumnExpr("ticker, COUNT(*) AS votes").
		Where("vote_date = ?", day).
		GroupExpr("ticker").
		OrderExpr("COUNT(*) DESC").
		OrderExpr("MIN(created_at) ASC").
		Limit(1).
		Scan(ctx, &tallies)
	if err != nil {
		return "", err
	}
	if len(tallies) == 0 {
		return "", nil
	}
	return tallies[0].Ticker, nil
}
