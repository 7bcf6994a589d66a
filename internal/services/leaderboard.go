package services

import (
	"context"
	"strings"
	"time"

	"investcraft/internal/datastore"
	"investcraft/internal/models"
	"investcraft/internal/pkg/caching"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

type ServiceLeaderboard struct {
	container  *do.Injector
	postgresDB *bun.DB
	cache      caching.Cache
}

func NewServiceLeaderboard(container *do.Injector) (*ServiceLeaderboard, error) {
	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	return &ServiceLeaderboard{container, postgresDB, cache}, nil
}

// GetLeaderboard serves the three variants. An unknown type falls back to
// all-time; an unknown tier level means no filter.
func (service *ServiceLeaderboard) GetLeaderboard(ctx context.Context, leaderboardType, level string, now time.Time) (*models.LeaderboardResponse, error) {
	switch leaderboardType {
	case LEADERBOARD_WEEKLY, LEADERBOARD_DAILY:
	default:
		leaderboardType = LEADERBOARD_ALL_TIME
	}
	level = strings.ToLower(strings.TrimSpace(level))

	today := DateOnly(now)
	callback := func() ([]*models.LeaderboardEntry, error) {
		switch leaderboardType {
		case LEADERBOARD_WEEKLY:
			return datastore.LeaderboardWeekly(ctx, service.postgresDB, now.Add(-7*24*time.Hour), LEADERBOARD_LIMIT)
		case LEADERBOARD_DAILY:
			return datastore.LeaderboardDaily(ctx, service.postgresDB, today, LEADERBOARD_LIMIT)
		default:
			lo, hi := 0, -1
			if tier, ok := StreakTiers[level]; ok {
				lo, hi = tier.Min, tier.Max
			}
			return datastore.LeaderboardAllTime(ctx, service.postgresDB, lo, hi, LEADERBOARD_LIMIT)
		}
	}

	key := DBKeyLeaderboard(leaderboardType, level, today)
	entries, err := caching.UseCache(ctx, service.cache, key, CACHE_TTL_1_MIN, callback)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	if entries == nil {
		entries = []*models.LeaderboardEntry{}
	}

	return &models.LeaderboardResponse{Leaderboard: entries, Type: leaderboardType}, nil
}
