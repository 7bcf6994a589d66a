package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"investcraft/internal/models"

	"github.com/gojek/heimdall/v7/httpclient"
	"github.com/golang-jwt/jwt/v5"
)

type CustomClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type Authentication struct {
	secret         string
	googleClientID string
	client         *httpclient.Client
}

func NewAuthentication(secret, googleClientID string) (*Authentication, error) {
	client := httpclient.NewClient(
		httpclient.WithHTTPTimeout(10*time.Second),
		httpclient.WithRetryCount(2),
	)
	return &Authentication{secret, googleClientID, client}, nil
}

// VerifyGoogleToken checks a Google ID token against the tokeninfo endpoint
// and that it was issued for our client id.
func (authentication *Authentication) VerifyGoogleToken(ctx context.Context, idToken string) (*models.GoogleUser, error) {
	endpoint := fmt.Sprintf("%s?id_token=%s", GOOGLE_TOKENINFO_URL, url.QueryEscape(idToken))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	res, err := authentication.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, errors.New("google rejected the token")
	}

	var payload models.GoogleUser
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, err
	}

	if payload.Aud != authentication.googleClientID {
		return nil, errors.New("token audience mismatch")
	}
	if payload.Sub == "" || payload.Email == "" {
		return nil, errors.New("incomplete token payload")
	}

	return &payload, nil
}

func (authentication *Authentication) CreateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   strconv.FormatInt(user.ID, 10),
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(TOKEN_TTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(authentication.secret))
}

func (authentication *Authentication) Validate(token string) (*models.UserFromToken, error) {
	keyFunc := func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(authentication.secret), nil
	}

	jwtToken, err := jwt.ParseWithClaims(token, &CustomClaims{}, keyFunc)
	if err != nil {
		return nil, err
	}

	claims, ok := jwtToken.Claims.(*CustomClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, errors.New("invalid token subject")
	}

	return &models.UserFromToken{
		UserID: userID,
		Email:  claims.Email,
	}, nil
}
