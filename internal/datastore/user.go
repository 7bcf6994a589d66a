package datastore

import (
	"context"
	"time"

	"investcraft/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableUser(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.User)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.User)(nil)).Index("index_users_total_score").IfNotExists().Column("total_score").Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.User)(nil)).Index("index_users_streak").IfNotExists().Column("streak").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

// UpsertGoogleUser inserts on first login, otherwise refreshes name and avatar.
func UpsertGoogleUser(ctx context.Context, db bun.IDB, user *models.User) (*models.User, error) {
	_, err := db.NewInsert().Model(user).
		On("CONFLICT (google_id) DO UPDATE").
		Set("name = EXCLUDED.name").
		Set("avatar_url = EXCLUDED.avatar_url").
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func FindUserByID(ctx context.Context, db bun.IDB, userID int64) (*models.User, error) {
	var user models.User
	err := db.NewSelect().Model(&user).Where("id = ?", userID).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUserProgress writes the recomputed totals after a completion.
func UpdateUserProgress(ctx context.Context, db bun.IDB, userID int64, totalScore, bestScore, streak int, lastPlayed time.Time) error {
	_, err := db.NewUpdate().Model((*models.User)(nil)).
		Set("total_score = ?", totalScore).
		Set("best_score = ?", bestScore).
		Set("streak = ?", streak).
		Set("last_played = ?", lastPlayed).
		Where("id = ?", userID).
		Exec(ctx)
	return err
}
