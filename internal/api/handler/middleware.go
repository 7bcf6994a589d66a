package handler

import (
	"context"
	"errors"
	"strings"

	"investcraft/internal/models"
	"investcraft/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type ctxKey string

var ctxKeyAuthUser ctxKey = "AUTH_USER"

// Authn verifies a bearer token when present and stores the principal in the
// request context. It never terminates the request; handlers that need an
// identity resolve it via ResolveValidUser.
func Authn(verifier interface {
	Validate(token string) (*models.UserFromToken, error)
},
) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return next(c)
			}

			parts := strings.Split(header, "Bearer")
			if len(parts) != 2 {
				return next(c)
			}

			token := strings.TrimSpace(parts[1])
			if len(token) == 0 {
				return next(c)
			}

			principal, err := verifier.Validate(token)
			if err != nil {
				// a bad token is not the same as no token
				return next(c)
			}

			ctx := c.Request().Context()
			ctx = context.WithValue(ctx, ctxKeyAuthUser, principal)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

func ResolveValidUser(ctx context.Context, container *do.Injector) (*models.User, error) {
	principal, ok := ctx.Value(ctxKeyAuthUser).(*models.UserFromToken)
	if !ok {
		return nil, errorx.Wrap(errors.New("missing session"), errorx.Authn)
	}

	serviceUser, err := do.Invoke[*services.ServiceUser](container)
	if err != nil {
		return nil, err
	}

	return serviceUser.ResolveFromToken(ctx, principal)
}
