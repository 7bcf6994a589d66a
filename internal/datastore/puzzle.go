package datastore

import (
	"context"
	"time"

	"investcraft/internal/models"

	"github.com/uptrace/bun"
)

func CreateTablePuzzle(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Puzzle)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Puzzle)(nil)).Index("index_puzzles_scheduled_date").IfNotExists().Column("scheduled_date").Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Puzzle)(nil)).Index("index_puzzles_ticker").IfNotExists().Column("ticker").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func FindPuzzleByDate(ctx context.Context, db bun.IDB, day time.Time) (*models.Puzzle, error) {
	var puzzle models.Puzzle
	err := db.NewSelect().Model(&puzzle).Where("scheduled_date = ?", day).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &puzzle, nil
}

func FindRandomPuzzleByTicker(ctx context.Context, db bun.IDB, ticker string) (*models.Puzzle, error) {
	var puzzle models.Puzzle
	err := db.NewSelect().Model(&puzzle).
		Where("ticker = ?", ticker).
		OrderExpr("random()").
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &puzzle, nil
}

func FindRandomUnscheduledPuzzle(ctx context.Context, db bun.IDB) (*models.Puzzle, error) {
	var puzzle models.Puzzle
	err := db.NewSelect().Model(&puzzle).
		Where("scheduled_date IS NULL").
		OrderExpr("random()").
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &puzzle, nil
}

func FindRandomPuzzle(ctx context.Context, db bun.IDB) (*models.Puzzle, error) {
	var puzzle models.Puzzle
	err := db.NewSelect().Model(&puzzle).
		OrderExpr("random()").
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &puzzle, nil
}

// SchedulePuzzle stamps the puzzle as the one served on the given day.
// scheduled_date is unique, so a concurrent stamp for the same day fails
// with a constraint violation the caller is expected to recover from.
func SchedulePuzzle(ctx context.Context, db bun.IDB, puzzleID int64, day time.Time) error {
	_, err := db.NewUpdate().Model((*models.Puzzle)(nil)).
		Set("scheduled_date = ?", day).
		Where("id = ?", puzzleID).
		Exec(ctx)
	return err
}

func ListPuzzles(ctx context.Context, db bun.IDB, limit, offset int) ([]*models.Puzzle, error) {
	var puzzles []*models.Puzzle
	err := db.NewSelect().Model(&puzzles).
		Column("id", "company_name", "ticker", "difficulty", "sector", "scheduled_date").
		OrderExpr("scheduled_date DESC NULLS LAST").
		Limit(limit).
		Offset(offset).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return puzzles, nil
}

func CreatePuzzle(ctx context.Context, db bun.IDB, puzzle *models.Puzzle) error {
	_, err := db.NewInsert().Model(puzzle).Exec(ctx)
	return err
}
