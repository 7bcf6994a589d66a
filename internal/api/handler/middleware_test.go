package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"investcraft/internal/models"

	"github.com/labstack/echo/v4"
	"github.com/samber/do"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	principal *models.UserFromToken
	err       error
}

func (v *stubVerifier) Validate(token string) (*models.UserFromToken, error) {
	return v.principal, v.err
}

func invokeAuthn(t *testing.T, verifier *stubVerifier, header string) *models.UserFromToken {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var captured *models.UserFromToken
	next := func(c echo.Context) error {
		captured, _ = c.Request().Context().Value(ctxKeyAuthUser).(*models.UserFromToken)
		return c.NoContent(http.StatusOK)
	}

	err := Authn(verifier)(next)(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	return captured
}

func TestAuthn(t *testing.T) {
	principal := &models.UserFromToken{UserID: 7, Email: "player@example.com"}

	t.Run("no header proceeds unauthenticated", func(t *testing.T) {
		captured := invokeAuthn(t, &stubVerifier{principal: principal}, "")
		assert.Nil(t, captured)
	})

	t.Run("valid bearer token stores the principal", func(t *testing.T) {
		captured := invokeAuthn(t, &stubVerifier{principal: principal}, "Bearer good-token")
		require.NotNil(t, captured)
		assert.Equal(t, int64(7), captured.UserID)
	})

	t.Run("bad token proceeds unauthenticated", func(t *testing.T) {
		captured := invokeAuthn(t, &stubVerifier{err: errors.New("expired")}, "Bearer bad-token")
		assert.Nil(t, captured)
	})

	t.Run("malformed header proceeds unauthenticated", func(t *testing.T) {
		captured := invokeAuthn(t, &stubVerifier{principal: principal}, "Basic abc123")
		assert.Nil(t, captured)
	})
}

func TestResolveValidUserWithoutSession(t *testing.T) {
	container := do.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := ResolveValidUser(req.Context(), container)
	assert.Error(t, err)
}
