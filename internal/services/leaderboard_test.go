package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStreakTiers(t *testing.T) {
	t.Run("bands are contiguous and ordered", func(t *testing.T) {
		order := []string{"bronze", "silver", "platinum", "gold", "diamond"}
		prevMax := 0
		for _, name := range order {
			tier, ok := StreakTiers[name]
			assert.True(t, ok, name)
			assert.Equal(t, prevMax+1, tier.Min, name)
			assert.GreaterOrEqual(t, tier.Max, tier.Min, name)
			prevMax = tier.Max
		}
	})

	t.Run("gold covers 168 through 364", func(t *testing.T) {
		gold := StreakTiers["gold"]
		assert.Equal(t, 168, gold.Min)
		assert.Equal(t, 364, gold.Max)
	})

	t.Run("unknown tier is absent", func(t *testing.T) {
		_, ok := StreakTiers["mythril"]
		assert.False(t, ok)
	})
}

func TestDBKeyLeaderboard(t *testing.T) {
	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	key := DBKeyLeaderboard(LEADERBOARD_WEEKLY, "gold", day)
	assert.Equal(t, "leaderboard:weekly:gold:2025-06-10", key)
}
