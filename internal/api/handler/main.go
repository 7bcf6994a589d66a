package handler

import (
	"net/http"
	"time"

	"investcraft/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo-contrib/pprof"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/samber/do"
)

type Config struct {
	Container *do.Injector
	Mode      string
	Origins   []string
}

func New(cfg *Config) (http.Handler, error) {
	r := echo.New()
	r.Pre(middleware.RemoveTrailingSlash())
	if cfg.Mode == "debug" {
		r.Debug = true
		pprof.Register(r)
	}

	r.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339}\t${method}\t${uri}\t${status}\t${latency_human}\n",
	}))
	r.Use(middleware.Recover())

	r.GET("", Health)

	routesAPIv1 := r.Group("/api/v1")
	{
		authentication, err := do.Invoke[*services.Authentication](cfg.Container)
		if err != nil {
			return nil, err
		}

		cors := middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     cfg.Origins,
			AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
			AllowCredentials: true,
			MaxAge:           60 * 60,
		})
		routesAPIv1.Use(cors)

		routesAPIv1.Use(Authn(authentication)) // Authn will NOT terminate unauthenticated requests.

		a := groupAuth{cfg.Container}
		routesAPIv1.POST("/auth/google", a.GoogleLogin)
		routesAPIv1.GET("/auth/me", a.Me)

		p := groupPuzzle{cfg.Container}
		routesAPIv1.GET("/puzzles/daily", p.Daily)
		routesAPIv1.GET("/puzzles", p.List)
		routesAPIv1.POST("/puzzles/vote", p.Vote)
		routesAPIv1.POST("/puzzles/track-click", p.TrackClick)
		routesAPIv1.POST("/puzzles/:id/complete", p.Complete)

		l := groupLeaderboard{cfg.Container}
		routesAPIv1.GET("/leaderboard", l.Get)

		u := groupUser{cfg.Container}
		routesAPIv1.GET("/users/me", u.Me)
		routesAPIv1.GET("/users/me/sessions", u.Sessions)
	}

	return r, nil
}

func Health(c echo.Context) error {
	return httpx.RestAbort(c, map[string]any{
		"status":    "ok",
		"service":   "InvestCraft API",
		"version":   "1.0.0",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}, nil)
}
