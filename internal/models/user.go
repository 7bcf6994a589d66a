package models

import (
	"time"

	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:users"`
	ID            int64      `bun:"id,pk,autoincrement" json:"id"`
	GoogleID      string     `bun:"google_id,notnull,unique" json:"-"`
	Email         string     `bun:"email,notnull,unique" json:"email"`
	Name          string     `bun:"name,notnull" json:"name"`
	AvatarURL     string     `bun:"avatar_url" json:"avatar"`
	Streak        int        `bun:"streak,default:0" json:"streak"`
	LastPlayed    *time.Time `bun:"last_played,type:date" json:"-"`
	TotalScore    int        `bun:"total_score,default:0" json:"score"`
	BestScore     int        `bun:"best_score,default:0" json:"best_score"`
	CreatedAt     time.Time  `bun:"created_at,default:current_timestamp" json:"created_at"`
}

// UserFromToken only use in middleware
type UserFromToken struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
}

// GoogleUser is the subset of Google's tokeninfo payload we care about.
type GoogleUser struct {
	Sub     string `json:"sub"`
	Aud     string `json:"aud"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

type Profile struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Avatar           string    `json:"avatar"`
	Streak           int       `json:"streak"`
	Score            int       `json:"score"`
	BestScore        int       `json:"best_score"`
	PuzzlesCompleted int       `json:"puzzlesCompleted"`
	JoinedAt         time.Time `json:"joinedAt"`
}
