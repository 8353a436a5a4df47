package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/account-service/internal/domain"
)

// TokenCodec signs and verifies the session tokens handed to callers.
// The token carries the identity snapshot and a session id; it never
// carries the credential secret.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenCodec builds a codec with the given signing secret and TTL.
func NewTokenCodec(secret string, ttlMinutes int) *TokenCodec {
	if ttlMinutes <= 0 {
		ttlMinutes = 60
	}
	return &TokenCodec{secret: []byte(secret), ttl: time.Duration(ttlMinutes) * time.Minute}
}

// TTL returns the configured session lifetime.
func (tc *TokenCodec) TTL() time.Duration {
	return tc.ttl
}

// Claims describes the session token payload.
type Claims struct {
	AccountID   int64  `json:"account_id"`
	LoginID     string `json:"login_id"`
	DisplayName string `json:"display_name"`
	Role        *int   `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Identity reconstructs the snapshot embedded in the claims.
func (c *Claims) Identity() *domain.Identity {
	return &domain.Identity{
		AccountID:   c.AccountID,
		LoginID:     c.LoginID,
		DisplayName: c.DisplayName,
		Role:        c.Role,
	}
}

// Sign builds and signs a token binding the identity to the session id.
func (tc *TokenCodec) Sign(sessionID string, identity *domain.Identity) (string, time.Time, error) {
	expiresAt := time.Now().Add(tc.ttl)
	claims := &Claims{
		AccountID:   identity.AccountID,
		LoginID:     identity.LoginID,
		DisplayName: identity.DisplayName,
		Role:        identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			Subject:   identity.LoginID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tc.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Verify validates a token and returns its claims.
func (tc *TokenCodec) Verify(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tc.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
