package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Puzzle struct {
	bun.BaseModel `bun:"table:puzzles"`
	ID            int64      `bun:"id,pk,autoincrement" json:"id"`
	CompanyName   string     `bun:"company_name,notnull" json:"company_name"`
	Ticker        string     `bun:"ticker,notnull" json:"ticker"`
	LogoURL       string     `bun:"logo_url,notnull" json:"logo_url"`
	Difficulty    int        `bun:"difficulty,default:1" json:"difficulty"`
	Sector        string     `bun:"sector" json:"sector"`
	Hint          string     `bun:"hint" json:"hint"`
	Description   string     `bun:"description" json:"description,omitempty"`
	ScheduledDate *time.Time `bun:"scheduled_date,type:date,unique" json:"scheduled_date,omitempty"`
	CreatedAt     time.Time  `bun:"created_at,default:current_timestamp" json:"-"`
}

type PuzzlePage struct {
	Puzzles []*Puzzle `json:"puzzles"`
	Page    int       `json:"page"`
}
