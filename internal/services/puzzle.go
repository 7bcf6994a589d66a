package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"investcraft/internal/datastore"
	"investcraft/internal/interfaces"
	"investcraft/internal/models"
	"investcraft/internal/pkg/caching"

	"github.com/go-redis/redis_rate/v10"
	"github.com/go-redsync/redsync/v4"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/samber/do"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
)

const pgUniqueViolation = "23505"

type ServicePuzzle struct {
	container  *do.Injector
	postgresDB *bun.DB
	cache      caching.Cache
	rs         *redsync.Redsync
	limiter    interfaces.Limiter
}

func NewServicePuzzle(container *do.Injector) (*ServicePuzzle, error) {
	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	rs, err := do.Invoke[*redsync.Redsync](container)
	if err != nil {
		return nil, err
	}

	rateLimiter, err := do.Invoke[interfaces.Limiter](container)
	if err != nil {
		return nil, err
	}

	return &ServicePuzzle{container, postgresDB, cache, rs, rateLimiter}, nil
}

// DailyPuzzle returns the puzzle for the given day, assigning one if none is
// scheduled yet. Selection order: explicit schedule, vote winner, random
// unscheduled, random any. Returns (nil, nil) when the puzzle table is empty.
func (service *ServicePuzzle) DailyPuzzle(ctx context.Context, now time.Time) (*models.Puzzle, error) {
	today := DateOnly(now)

	puzzle, err := datastore.FindPuzzleByDate(ctx, service.postgresDB, today)
	if err == nil {
		return puzzle, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	// Best-effort lock so simultaneous first requests rarely collide; the
	// unique scheduled_date constraint remains the authoritative guard.
	mutex := service.rs.NewMutex(LockKeyDailyPuzzle(today), redsync.WithExpiry(10*time.Second), redsync.WithTries(1))
	if err := mutex.LockContext(ctx); err == nil {
		//nolint:errcheck
		defer mutex.UnlockContext(ctx)

		puzzle, err := datastore.FindPuzzleByDate(ctx, service.postgresDB, today)
		if err == nil {
			return puzzle, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, errorx.Wrap(err, errorx.Service)
		}
	}

	pick, err := service.pickPuzzle(ctx, today)
	if err != nil {
		return nil, err
	}
	if pick == nil {
		return nil, nil
	}

	err = datastore.SchedulePuzzle(ctx, service.postgresDB, pick.ID, today)
	if err != nil {
		if isUniqueViolation(err) {
			// lost the stamp race; someone else assigned today's puzzle
			puzzle, err := datastore.FindPuzzleByDate(ctx, service.postgresDB, today)
			if err != nil {
				return nil, errorx.Wrap(err, errorx.Service)
			}
			return puzzle, nil
		}
		return nil, errorx.Wrap(err, errorx.Service)
	}

	pick.ScheduledDate = &today
	return pick, nil
}

// pickPuzzle walks the fallback chain past the explicit schedule: vote winner
// by ticker, then random unscheduled, then random any.
func (service *ServicePuzzle) pickPuzzle(ctx context.Context, today time.Time) (*models.Puzzle, error) {
	ticker, err := datastore.TopTickerForDate(ctx, service.postgresDB, today)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	if ticker != "" {
		puzzle, err := datastore.FindRandomPuzzleByTicker(ctx, service.postgresDB, ticker)
		if err == nil {
			return puzzle, nil
		}
		// a vote for a ticker with no puzzle falls through
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, errorx.Wrap(err, errorx.Service)
		}
	}

	puzzle, err := datastore.FindRandomUnscheduledPuzzle(ctx, service.postgresDB)
	if err == nil {
		return puzzle, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	puzzle, err = datastore.FindRandomPuzzle(ctx, service.postgresDB)
	if err == nil {
		return puzzle, nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		// empty puzzle table: nothing to serve, not an error
		return nil, nil
	}
	return nil, errorx.Wrap(err, errorx.Service)
}

// CastVote records the user's ticker preference for tomorrow's puzzle.
func (service *ServicePuzzle) CastVote(ctx context.Context, user *models.User, ticker string, now time.Time) error {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return errorx.Wrap(errors.New("ticker is required"), errorx.Invalid)
	}

	if err := service.limiter.Allow(ctx, RateKeyVote(user.ID), redis_rate.PerMinute(VOTE_RATE_LIMIT_PER_MINUTE)); err != nil {
		return err
	}

	vote := &models.PuzzleVote{
		UserID:    user.ID,
		Ticker:    ticker,
		VoteDate:  DateOnly(now).AddDate(0, 0, 1),
		CreatedAt: now,
	}
	if err := datastore.UpsertVote(ctx, service.postgresDB, vote); err != nil {
		return errorx.Wrap(err, errorx.Service)
	}

	return nil
}

type CompletionPayload struct {
	Score     int `json:"score"`
	MovesUsed int `json:"movesUsed"`
	TimeTaken int `json:"timeTaken"`
}

// Normalize clamps negatives; omitted fields already decode to zero.
func (payload *CompletionPayload) Normalize() {
	if payload.Score < 0 {
		payload.Score = 0
	}
	if payload.MovesUsed < 0 {
		payload.MovesUsed = 0
	}
	if payload.TimeTaken < 0 {
		payload.TimeTaken = 0
	}
}

// RecordCompletion upserts the session keeping the personal best, replaces
// the user's total with the recomputed sum and advances the streak.
func (service *ServicePuzzle) RecordCompletion(ctx context.Context, user *models.User, puzzleID int64, payload *CompletionPayload, now time.Time) (*models.CompletionResult, error) {
	payload.Normalize()

	session := &models.GameSession{
		UserID:    user.ID,
		PuzzleID:  puzzleID,
		Score:     payload.Score,
		MovesUsed: payload.MovesUsed,
		TimeTaken: payload.TimeTaken,
		Completed: true,
		PlayedAt:  now,
	}
	if _, err := datastore.UpsertGameSession(ctx, service.postgresDB, session); err != nil {
		// an unknown puzzle id fails the foreign key; nothing was written
		return nil, errorx.Wrap(err, errorx.Service)
	}

	realTotal, err := datastore.SumUserScores(ctx, service.postgresDB, user.ID)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	fresh, err := datastore.FindUserByID(ctx, service.postgresDB, user.ID)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	today := DateOnly(now)
	streak := NextStreak(fresh.LastPlayed, fresh.Streak, today)
	best := fresh.BestScore
	if payload.Score > best {
		best = payload.Score
	}

	if err := datastore.UpdateUserProgress(ctx, service.postgresDB, user.ID, realTotal, best, streak, today); err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	//nolint:errcheck
	service.cache.Delete(ctx, DBKeyUser(user.ID))

	return &models.CompletionResult{
		Score:      payload.Score,
		Streak:     streak,
		TotalScore: realTotal,
	}, nil
}

// NextStreak applies the consecutive-day rule: played yesterday extends the
// run, a second completion today leaves it alone, anything else restarts it.
func NextStreak(lastPlayed *time.Time, streak int, today time.Time) int {
	if lastPlayed == nil {
		return 1
	}

	last := DateOnly(*lastPlayed)
	today = DateOnly(today)
	switch {
	case last.Equal(today.AddDate(0, 0, -1)):
		return streak + 1
	case last.Equal(today):
		return streak
	default:
		return 1
	}
}

func (service *ServicePuzzle) ListPuzzles(ctx context.Context, page int) (*models.PuzzlePage, error) {
	if page < 1 {
		page = 1
	}

	callback := func() ([]*models.Puzzle, error) {
		return datastore.ListPuzzles(ctx, service.postgresDB, PUZZLES_PER_PAGE, (page-1)*PUZZLES_PER_PAGE)
	}
	puzzles, err := caching.UseCache(ctx, service.cache, DBKeyPuzzlePage(page), CACHE_TTL_1_MIN, callback)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	if puzzles == nil {
		puzzles = []*models.Puzzle{}
	}

	return &models.PuzzlePage{Puzzles: puzzles, Page: page}, nil
}

// TrackShareClick appends an attribution record; there is no read path.
func (service *ServicePuzzle) TrackShareClick(ctx context.Context, promoterID *int64, ref string) error {
	click := &models.ShareClick{
		PromoterID: promoterID,
		Ref:        ref,
		CreatedAt:  time.Now(),
	}
	if err := datastore.InsertShareClick(ctx, service.postgresDB, click); err != nil {
		return errorx.Wrap(err, errorx.Service)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.Field('C') == pgUniqueViolation
	}
	return false
}
