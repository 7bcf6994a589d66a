package models

import (
	"time"

	"github.com/uptrace/bun"
)

type PuzzleVote struct {
	bun.BaseModel `bun:"table:puzzle_votes"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	UserID        int64     `bun:"user_id,notnull" json:"user_id"`
	Ticker        string    `bun:"ticker,notnull" json:"ticker"`
	VoteDate      time.Time `bun:"vote_date,type:date,notnull" json:"vote_date"`
	CreatedAt     time.Time `bun:"created_at,default:current_timestamp" json:"created_at"`
}

type VoteTally struct {
	Ticker string `bun:"ticker" json:"ticker"`
	Votes  int    `bun:"votes" json:"votes"`
}
