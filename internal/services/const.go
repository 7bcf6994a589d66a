package services

import (
	"fmt"
	"time"
)

const (
	LEADERBOARD_ALL_TIME = "all-time"
	LEADERBOARD_WEEKLY   = "weekly"
	LEADERBOARD_DAILY    = "daily"

	LEADERBOARD_LIMIT = 50
	PUZZLES_PER_PAGE  = 10

	VOTE_RATE_LIMIT_PER_MINUTE = 10

	TOKEN_TTL = 7 * 24 * time.Hour

	CACHE_TTL_15_SECONDS = 15 * time.Second
	CACHE_TTL_1_MIN      = 1 * time.Minute
	CACHE_TTL_5_MINS     = 5 * time.Minute

	GOOGLE_TOKENINFO_URL = "https://oauth2.googleapis.com/tokeninfo"

	DATE_LAYOUT = "2006-01-02"
)

// StreakTier is an inclusive consecutive-day band used only for filtering
// the all-time leaderboard.
type StreakTier struct {
	Min int
	Max int
}

var StreakTiers = map[string]StreakTier{
	"bronze":   {1, 27},
	"silver":   {28, 83},
	"platinum": {84, 167},
	"gold":     {168, 364},
	"diamond":  {365, 100000},
}

// DateOnly truncates to the UTC calendar day; every "daily" decision in the
// system keys off this.
func DateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func DBKeyUser(userID int64) string {
	return fmt.Sprintf("user:%d", userID)
}

func DBKeyPuzzlePage(page int) string {
	return fmt.Sprintf("puzzles:page:%d", page)
}

func DBKeyLeaderboard(leaderboardType, level string, day time.Time) string {
	return fmt.Sprintf("leaderboard:%s:%s:%s", leaderboardType, level, day.Format(DATE_LAYOUT))
}

func LockKeyDailyPuzzle(day time.Time) string {
	return fmt.Sprintf("puzzle:daily:lock:%s", day.Format(DATE_LAYOUT))
}

func RateKeyVote(userID int64) string {
	return fmt.Sprintf("rate:vote:%d", userID)
}
