package datastore

import (
	"context"

	"investcraft/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableShareClick(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.ShareClick)(nil)).IfNotExists().
		ForeignKey(`("promoter_id") REFERENCES "users" ("id") ON DELETE SET NULL`).
		Exec(ctx)
	return err
}

func InsertShareClick(ctx context.Context, db bun.IDB, click *models.ShareClick) error {
	_, err := db.NewInsert().Model(click).Exec(ctx)
	return err
}
