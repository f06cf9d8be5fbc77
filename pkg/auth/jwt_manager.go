// Package auth issues and validates the bearer tokens the API runs on.
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var ErrInvalidToken = errors.New("invalid token")

// JWTManager signs and validates HS256 tokens. The user id travels in
// the standard subject claim, nothing custom.
type JWTManager struct {
	secretKey     []byte
	tokenDuration time.Duration
}

func NewJWTManager(secret string, duration time.Duration) *JWTManager {
	return &JWTManager{secretKey: []byte(secret), tokenDuration: duration}
}

func (m *JWTManager) Generate(userID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenDuration)),
	})
	return token.SignedString(m.secretKey)
}

// keyFunc rejects any algorithm other than the HMAC family before
// handing out the secret, so an attacker cannot downgrade to "none" or
// swap in an asymmetric scheme.
func (m *JWTManager) keyFunc(t *jwt.Token) (interface{}, error) {
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
	}
	return m.secretKey, nil
}

func (m *JWTManager) Verify(accessToken string) (*jwt.RegisteredClaims, error) {
	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(accessToken, &claims, m.keyFunc)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}

// Expiry reports when the token stops being valid; logout sizes the
// blacklist TTL from it.
func (m *JWTManager) Expiry(accessToken string) (time.Time, error) {
	claims, err := m.Verify(accessToken)
	if err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, ErrInvalidToken
	}
	return claims.ExpiresAt.Time, nil
}

// ExtractTokenFromHeader pulls the bearer token out of the
// Authorization header.
func ExtractTokenFromHeader(r *http.Request) (string, error) {
	scheme, token, found := strings.Cut(r.Header.Get("Authorization"), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", errors.New("invalid Authorization header")
	}
	return token, nil
}
