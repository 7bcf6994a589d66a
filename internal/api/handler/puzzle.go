package handler

import (
	"errors"
	"log"
	"strconv"
	"time"

	"investcraft/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupPuzzle struct {
	container *do.Injector
}

func (gr *groupPuzzle) Daily(c echo.Context) error {
	servicePuzzle, err := do.Invoke[*services.ServicePuzzle](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	ctx := c.Request().Context()
	puzzle, err := servicePuzzle.DailyPuzzle(ctx, time.Now())
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	// nil means the puzzle table is empty; that's "nothing to show", not a failure
	return httpx.RestAbort(c, puzzle, nil)
}

func (gr *groupPuzzle) List(c echo.Context) error {
	servicePuzzle, err := do.Invoke[*services.ServicePuzzle](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))

	ctx := c.Request().Context()
	result, err := servicePuzzle.ListPuzzles(ctx, page)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, result, nil)
}

func (gr *groupPuzzle) Complete(c echo.Context) error {
	servicePuzzle, err := do.Invoke[*services.ServicePuzzle](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	puzzleID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(errors.New("invalid puzzle id"), errorx.Invalid))
	}

	var payload services.CompletionPayload
	if err := c.Bind(&payload); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}

	ctx := c.Request().Context()
	user, err := ResolveValidUser(ctx, gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	result, err := servicePuzzle.RecordCompletion(ctx, user, puzzleID, &payload, time.Now())
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, map[string]any{
		"success":   true,
		"score":     result.Score,
		"streak":    result.Streak,
		"realTotal": result.TotalScore,
	}, nil)
}

func (gr *groupPuzzle) Vote(c echo.Context) error {
	servicePuzzle, err := do.Invoke[*services.ServicePuzzle](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	var payload struct {
		Ticker string `json:"ticker"`
	}
	if err := c.Bind(&payload); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}

	ctx := c.Request().Context()
	user, err := ResolveValidUser(ctx, gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	if err := servicePuzzle.CastVote(ctx, user, payload.Ticker, time.Now()); err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, map[string]any{"success": true}, nil)
}

func (gr *groupPuzzle) TrackClick(c echo.Context) error {
	servicePuzzle, err := do.Invoke[*services.ServicePuzzle](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	var payload struct {
		PromoterID *int64 `json:"promoterId"`
		Ref        string `json:"ref"`
	}
	if err := c.Bind(&payload); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}

	ctx := c.Request().Context()
	// fire and forget: attribution must never fail the caller
	if err := servicePuzzle.TrackShareClick(ctx, payload.PromoterID, payload.Ref); err != nil {
		log.Println("track-click:", err)
	}

	return httpx.RestAbort(c, map[string]any{"success": true}, nil)
}
