package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"time"

	"investcraft/internal/interfaces"
	"investcraft/internal/pkg/caching"
	"investcraft/internal/pkg/limiter"
	"investcraft/internal/services"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/hiendaovinh/toolkit/pkg/db"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/samber/do"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// DailyPuzzleJob pre-stamps the daily puzzle just after midnight so the first
// player of the day never pays for the assignment. The request path calls the
// same idempotent selector, so this job is an optimization, not a dependency.
type DailyPuzzleJob struct {
	container *do.Injector
}

func NewDailyPuzzleJob(container *do.Injector) *DailyPuzzleJob {
	return &DailyPuzzleJob{container}
}

func (j *DailyPuzzleJob) Start(cronRunner *cron.Cron) error {
	_, err := cronRunner.AddFunc("5 0 * * *", j.run)
	if err != nil {
		return err
	}
	log.Println("Daily puzzle cronjob registered")

	// also assign on boot in case the process was down at midnight
	j.run()
	return nil
}

func (j *DailyPuzzleJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	servicePuzzle, err := do.Invoke[*services.ServicePuzzle](j.container)
	if err != nil {
		log.Println("daily puzzle job:", err)
		return
	}

	puzzle, err := servicePuzzle.DailyPuzzle(ctx, time.Now())
	if err != nil {
		log.Println("daily puzzle job:", err)
		return
	}
	if puzzle == nil {
		log.Println("daily puzzle job: no puzzle available")
		return
	}
	log.Println("daily puzzle job: assigned", puzzle.Ticker)
}

// CacheFlushJob clears leaderboard caches every Monday midnight so the weekly
// board starts fresh without waiting out TTLs.
type CacheFlushJob struct {
	container *do.Injector
}

func NewCacheFlushJob(container *do.Injector) *CacheFlushJob {
	return &CacheFlushJob{container}
}

func (j *CacheFlushJob) Start(cronRunner *cron.Cron) error {
	_, err := cronRunner.AddFunc("0 0 * * 1", j.run)
	if err != nil {
		return err
	}
	log.Println("Cache flush cronjob registered")
	return nil
}

func (j *CacheFlushJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	dbRedis, err := do.InvokeNamed[redis.UniversalClient](j.container, "redis-cache")
	if err != nil {
		log.Println("cache flush job:", err)
		return
	}

	if err := caching.DeleteKeys(ctx, dbRedis, "leaderboard:*"); err != nil {
		log.Println("cache flush job:", err)
		return
	}
	log.Println("cache flush job: leaderboard caches cleared")
}

func newContainer(vs map[string]string) *do.Injector {
	injector := do.New()
	do.ProvideNamedValue(injector, "envs", vs)

	do.Provide(injector, func(i *do.Injector) (*bun.DB, error) {
		sqldb := sql.OpenDB(pgdriver.NewConnector(
			pgdriver.WithDSN(os.Getenv("DB_DSN")),
			pgdriver.WithPassword(os.Getenv("DB_PASSWORD")),
		))

		return bun.NewDB(sqldb, pgdialect.New()), nil
	})

	do.ProvideNamed(injector, "redis-cache", func(i *do.Injector) (redis.UniversalClient, error) {
		return db.InitRedis(&db.RedisConfig{
			URL: os.Getenv("REDIS_CACHE"),
		})
	})

	do.ProvideNamed(injector, "redis-limiter", func(i *do.Injector) (redis.UniversalClient, error) {
		url := os.Getenv("REDIS_LIMITER")
		if url == "" {
			url = os.Getenv("REDIS_CACHE")
		}
		return db.InitRedis(&db.RedisConfig{URL: url})
	})

	do.ProvideNamed(injector, "redis-mutex", func(i *do.Injector) (redis.UniversalClient, error) {
		url := os.Getenv("REDIS_MUTEX")
		if url == "" {
			url = os.Getenv("REDIS_CACHE")
		}
		return db.InitRedis(&db.RedisConfig{URL: url})
	})

	do.Provide(injector, func(i *do.Injector) (caching.Cache, error) {
		dbRedis, err := do.InvokeNamed[redis.UniversalClient](i, "redis-cache")
		if err != nil {
			return nil, err
		}

		return caching.NewCacheRedis(dbRedis, false)
	})

	do.Provide(injector, func(i *do.Injector) (interfaces.Limiter, error) {
		dbRedis, err := do.InvokeNamed[redis.UniversalClient](i, "redis-limiter")
		if err != nil {
			return nil, err
		}

		return limiter.NewLimiter(dbRedis)
	})

	do.Provide(injector, func(i *do.Injector) (*redsync.Redsync, error) {
		dbRedis, err := do.InvokeNamed[redis.UniversalClient](i, "redis-mutex")
		if err != nil {
			return nil, err
		}

		pool := goredis.NewPool(dbRedis)
		return redsync.New(pool), nil
	})

	do.Provide(injector, func(i *do.Injector) (*services.ServicePuzzle, error) {
		return services.NewServicePuzzle(injector)
	})

	return injector
}
