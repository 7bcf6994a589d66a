package handler

import (
	"errors"

	"investcraft/internal/models"
	"investcraft/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupAuth struct {
	container *do.Injector
}

func (gr *groupAuth) GoogleLogin(c echo.Context) error {
	serviceUser, err := do.Invoke[*services.ServiceUser](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	var payload struct {
		Token string `json:"token"`
	}
	if err := c.Bind(&payload); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}
	if payload.Token == "" {
		return httpx.RestAbort(c, nil, errorx.Wrap(errors.New("google token required"), errorx.Invalid))
	}

	ctx := c.Request().Context()
	token, user, err := serviceUser.LoginWithGoogle(ctx, payload.Token)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, struct {
		Token string       `json:"token"`
		User  *models.User `json:"user"`
	}{token, user}, nil)
}

func (gr *groupAuth) Me(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := ResolveValidUser(ctx, gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, struct {
		User *models.User `json:"user"`
	}{user}, nil)
}
