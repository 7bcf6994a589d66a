package services

import (
	"testing"
	"time"

	"investcraft/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	authentication, err := NewAuthentication("test-secret", "test-client-id")
	require.NoError(t, err)

	user := &models.User{ID: 42, Email: "player@example.com"}

	token, err := authentication.CreateToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	principal, err := authentication.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), principal.UserID)
	assert.Equal(t, "player@example.com", principal.Email)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	authentication, err := NewAuthentication("secret-a", "test-client-id")
	require.NoError(t, err)

	other, err := NewAuthentication("secret-b", "test-client-id")
	require.NoError(t, err)

	token, err := authentication.CreateToken(&models.User{ID: 1, Email: "a@example.com"})
	require.NoError(t, err)

	_, err = other.Validate(token)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	authentication, err := NewAuthentication("test-secret", "test-client-id")
	require.NoError(t, err)

	_, err = authentication.Validate("not-a-jwt")
	assert.Error(t, err)
}

func TestValidateRejectsNonNumericSubject(t *testing.T) {
	authentication, err := NewAuthentication("test-secret", "test-client-id")
	require.NoError(t, err)

	claims := jwt.MapClaims{
		"sub":   "not-a-number",
		"email": "a@example.com",
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = authentication.Validate(token)
	assert.Error(t, err)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	authentication, err := NewAuthentication("test-secret", "test-client-id")
	require.NoError(t, err)

	claims := jwt.MapClaims{
		"sub":   "7",
		"email": "a@example.com",
		"iat":   time.Now().Add(-2 * time.Hour).Unix(),
		"exp":   time.Now().Add(-time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = authentication.Validate(token)
	assert.Error(t, err)
}
