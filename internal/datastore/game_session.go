package datastore

import (
	"context"

	"investcraft/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableGameSession(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.GameSession)(nil)).IfNotExists().
		ForeignKey(`("user_id") REFERENCES "users" ("id") ON DELETE CASCADE`).
		ForeignKey(`("puzzle_id") REFERENCES "puzzles" ("id") ON DELETE CASCADE`).
		Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.GameSession)(nil)).Index("index_game_sessions_user_puzzle").Unique().IfNotExists().Column("user_id", "puzzle_id").Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.GameSession)(nil)).Index("index_game_sessions_user").IfNotExists().Column("user_id").Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.GameSession)(nil)).Index("index_game_sessions_played_at").IfNotExists().Column("played_at").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

// UpsertGameSession records a completion, keeping the personal best on replay.
// The GREATEST/LEAST merge happens inside the single statement so concurrent
// completions for the same (user, puzzle) serialize in the store.
func UpsertGameSession(ctx context.Context, db bun.IDB, session *models.GameSession) (*models.GameSession, error) {
	_, err := db.NewInsert().Model(session).
		On("CONFLICT (user_id, puzzle_id) DO UPDATE").
		Set("score = GREATEST(gs.score, EXCLUDED.score)").
		Set("moves_used = LEAST(gs.moves_used, EXCLUDED.moves_used)").
		Set("time_taken = LEAST(gs.time_taken, EXCLUDED.time_taken)").
		Set("completed = TRUE").
		Set("played_at = EXCLUDED.played_at").
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, err
	}
	return session, nil
}

// SumUserScores is the authoritative total; the users.total_score column is
// always replaced with this, never incremented.
func SumUserScores(ctx context.Context, db bun.IDB, userID int64) (int, error) {
	var total int
	err := db.NewSelect().Model((*models.GameSession)(nil)).
		ColumnExpr("COALESCE(SUM(score), 0)").
		Where("user_id = ?", userID).
		Scan(ctx, &total)
	if err != nil {
		return 0, err
	}
	return total, nil
}

func CountCompletedSessions(ctx context.Context, db bun.IDB, userID int64) (int, error) {
	count, err := db.NewSelect().Model((*models.GameSession)(nil)).
		Where("user_id = ?", userID).
		Where("completed = TRUE").
		Count(ctx)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func ListUserSessions(ctx context.Context, db bun.IDB, userID int64) ([]*models.SessionSummary, error) {
	var sessions []*models.SessionSummary
	err := db.NewSelect().Model((*models.GameSession)(nil)).
		ColumnExpr("gs.puzzle_id, p.company_name, p.ticker").
		ColumnExpr("gs.score, gs.moves_used, gs.time_taken").
		ColumnExpr("gs.completed, gs.played_at").
		Join("JOIN puzzles AS p ON p.id = gs.puzzle_id").
		Where("gs.user_id = ?", userID).
		OrderExpr("gs.played_at DESC").
		Scan(ctx, &sessions)
	if err != nil {
		return nil, err
	}
	return sessions, nil
}
