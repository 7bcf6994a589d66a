package models

import (
	"time"

	"github.com/uptrace/bun"
)

type GameSession struct {
	bun.BaseModel `bun:"table:game_sessions,alias:gs"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	UserID        int64     `bun:"user_id,notnull" json:"user_id"`
	PuzzleID      int64     `bun:"puzzle_id,notnull" json:"puzzle_id"`
	Score         int       `bun:"score,default:0" json:"score"`
	MovesUsed     int       `bun:"moves_used,default:0" json:"moves_used"`
	Completed     bool      `bun:"completed,default:false" json:"completed"`
	TimeTaken     int       `bun:"time_taken,default:0" json:"time_taken"`
	PlayedAt      time.Time `bun:"played_at,default:current_timestamp" json:"played_at"`
}

// SessionSummary is a game session joined with its puzzle for display.
type SessionSummary struct {
	PuzzleID    int64     `bun:"puzzle_id" json:"puzzle_id"`
	CompanyName string    `bun:"company_name" json:"company_name"`
	Ticker      string    `bun:"ticker" json:"ticker"`
	Score       int       `bun:"score" json:"score"`
	MovesUsed   int       `bun:"moves_used" json:"moves_used"`
	TimeTaken   int       `bun:"time_taken" json:"time_taken"`
	Completed   bool      `bun:"completed" json:"completed"`
	PlayedAt    time.Time `bun:"played_at" json:"played_at"`
}

type CompletionResult struct {
	Score      int `json:"score"`
	Streak     int `json:"streak"`
	TotalScore int `json:"realTotal"`
}
