package models

type LeaderboardEntry struct {
	UserID      int64  `bun:"id" json:"id"`
	Name        string `bun:"name" json:"name"`
	Avatar      string `bun:"avatar_url" json:"avatar"`
	Streak      int    `bun:"streak" json:"streak"`
	Score       int    `bun:"score" json:"score"`
	GamesPlayed int    `bun:"games_played" json:"games_played,omitempty"`
	MovesUsed   int    `bun:"moves_used" json:"moves_used,omitempty"`
	TimeTaken   int    `bun:"time_taken" json:"time_taken,omitempty"`
}

type LeaderboardResponse struct {
	Leaderboard []*LeaderboardEntry `json:"leaderboard"`
	Type        string              `json:"type"`
}
