package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const EmailClaim = "email"

// TokenManager signs and verifies HS256 tokens with a shared secret.
type TokenManager struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		key: []byte(secret),
		ttl: ttl,
		now: time.Now,
	}
}

func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}

// CreateToken signs payload as token claims. Any exp/iat in the payload
// is replaced.
func (m *TokenManager) CreateToken(payload map[string]interface{}) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(m.ttl)

	claims := jwt.MapClaims{}
	for k, v := range payload {
		claims[k] = v
	}
	claims["iat"] = jwt.NewNumericDate(now)
	claims["exp"] = jwt.NewNumericDate(expiresAt)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.key)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (m *TokenManager) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return m.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// ClaimString returns a string claim, or "" if absent or not a string.
func ClaimString(claims jwt.MapClaims, name string) string {
	s, _ := claims[name].(string)
	return s
}
