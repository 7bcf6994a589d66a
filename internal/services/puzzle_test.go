package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextStreak(t *testing.T) {
	today := time.Date(2025, 6, 10, 14, 30, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)
	threeDaysAgo := today.AddDate(0, 0, -3)

	t.Run("first completion ever", func(t *testing.T) {
		assert.Equal(t, 1, NextStreak(nil, 0, today))
	})

	t.Run("played yesterday extends the run", func(t *testing.T) {
		assert.Equal(t, 6, NextStreak(&yesterday, 5, today))
	})

	t.Run("second completion today is a no-op", func(t *testing.T) {
		earlier := today.Add(-2 * time.Hour)
		assert.Equal(t, 6, NextStreak(&earlier, 6, today))
	})

	t.Run("a gap restarts at one", func(t *testing.T) {
		assert.Equal(t, 1, NextStreak(&threeDaysAgo, 10, today))
	})

	t.Run("clock time within the day does not matter", func(t *testing.T) {
		lateYesterday := time.Date(2025, 6, 9, 23, 59, 59, 0, time.UTC)
		earlyToday := time.Date(2025, 6, 10, 0, 0, 1, 0, time.UTC)
		assert.Equal(t, 3, NextStreak(&lateYesterday, 2, earlyToday))
	})
}

func TestCompletionPayloadNormalize(t *testing.T) {
	t.Run("negatives clamp to zero", func(t *testing.T) {
		payload := &CompletionPayload{Score: -10, MovesUsed: -1, TimeTaken: -300}
		payload.Normalize()
		assert.Equal(t, 0, payload.Score)
		assert.Equal(t, 0, payload.MovesUsed)
		assert.Equal(t, 0, payload.TimeTaken)
	})

	t.Run("valid values pass through", func(t *testing.T) {
		payload := &CompletionPayload{Score: 850, MovesUsed: 3, TimeTaken: 42}
		payload.Normalize()
		assert.Equal(t, 850, payload.Score)
		assert.Equal(t, 3, payload.MovesUsed)
		assert.Equal(t, 42, payload.TimeTaken)
	})
}

func TestDateOnly(t *testing.T) {
	t.Run("truncates to utc midnight", func(t *testing.T) {
		in := time.Date(2025, 6, 10, 18, 45, 12, 999, time.UTC)
		want := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, want, DateOnly(in))
	})

	t.Run("converts zones before truncating", func(t *testing.T) {
		zone := time.FixedZone("UTC+7", 7*3600)
		// 02:00 on June 11th in UTC+7 is still June 10th in UTC
		in := time.Date(2025, 6, 11, 2, 0, 0, 0, zone)
		want := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, want, DateOnly(in))
	})
}
