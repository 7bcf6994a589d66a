package models

import (
	"time"

	"github.com/uptrace/bun"
)

// ShareClick is an append-only attribution record; there is no read path.
type ShareClick struct {
	bun.BaseModel `bun:"table:share_clicks"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	PromoterID    *int64    `bun:"promoter_id" json:"promoter_id"`
	Ref           string    `bun:"ref" json:"ref"`
	CreatedAt     time.Time `bun:"created_at,default:current_timestamp" json:"created_at"`
}
