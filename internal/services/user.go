package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"investcraft/internal/datastore"
	"investcraft/internal/models"
	"investcraft/internal/pkg/caching"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

type ServiceUser struct {
	container      *do.Injector
	postgresDB     *bun.DB
	cache          caching.Cache
	authentication *Authentication
}

func NewServiceUser(container *do.Injector) (*ServiceUser, error) {
	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	authentication, err := do.Invoke[*Authentication](container)
	if err != nil {
		return nil, err
	}

	return &ServiceUser{container, postgresDB, cache, authentication}, nil
}

// LoginWithGoogle verifies the Google ID token, upserts the user on the
// Google subject id and issues a first-party bearer token.
func (service *ServiceUser) LoginWithGoogle(ctx context.Context, idToken string) (string, *models.User, error) {
	if strings.TrimSpace(idToken) == "" {
		return "", nil, errorx.Wrap(errors.New("google token is required"), errorx.Invalid)
	}

	payload, err := service.authentication.VerifyGoogleToken(ctx, idToken)
	if err != nil {
		return "", nil, errorx.Wrap(err, errorx.Authn)
	}

	user := &models.User{
		GoogleID:  payload.Sub,
		Email:     payload.Email,
		Name:      payload.Name,
		AvatarURL: payload.Picture,
	}
	user, err = datastore.UpsertGoogleUser(ctx, service.postgresDB, user)
	if err != nil {
		return "", nil, errorx.Wrap(err, errorx.Service)
	}

	// name/avatar may have changed upstream
	//nolint:errcheck
	service.cache.Delete(ctx, DBKeyUser(user.ID))

	token, err := service.authentication.CreateToken(user)
	if err != nil {
		return "", nil, errorx.Wrap(err, errorx.Service)
	}

	return token, user, nil
}

func (service *ServiceUser) FindUserByID(ctx context.Context, userID int64) (*models.User, error) {
	callback := func() (*models.User, error) {
		return datastore.FindUserByID(ctx, service.postgresDB, userID)
	}
	return caching.UseCache(ctx, service.cache, DBKeyUser(userID), CACHE_TTL_5_MINS, callback)
}

// ResolveFromToken maps a verified bearer principal onto a stored user.
func (service *ServiceUser) ResolveFromToken(ctx context.Context, principal *models.UserFromToken) (*models.User, error) {
	if principal == nil {
		return nil, errorx.Wrap(errors.New("missing session"), errorx.Authn)
	}

	user, err := service.FindUserByID(ctx, principal.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errorx.Wrap(errors.New("user not found"), errorx.Authn)
		}
		return nil, errorx.Wrap(err, errorx.Service)
	}

	return user, nil
}

func (service *ServiceUser) Profile(ctx context.Context, user *models.User) (*models.Profile, error) {
	completed, err := datastore.CountCompletedSessions(ctx, service.postgresDB, user.ID)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	return &models.Profile{
		ID:               user.ID,
		Name:             user.Name,
		Email:            user.Email,
		Avatar:           user.AvatarURL,
		Streak:           user.Streak,
		Score:            user.TotalScore,
		BestScore:        user.BestScore,
		PuzzlesCompleted: completed,
		JoinedAt:         user.CreatedAt,
	}, nil
}

func (service *ServiceUser) Sessions(ctx context.Context, user *models.User) ([]*models.SessionSummary, error) {
	sessions, err := datastore.ListUserSessions(ctx, service.postgresDB, user.ID)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	if sessions == nil {
		sessions = []*models.SessionSummary{}
	}
	return sessions, nil
}
