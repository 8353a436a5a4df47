package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/account-service/internal/domain"
)

func TestSignAndVerify(t *testing.T) {
	codec := NewTokenCodec("secret", 5)
	role := 3
	identity := &domain.Identity{AccountID: 42, LoginID: "u1", DisplayName: "Alice", Role: &role}

	token, expiresAt, err := codec.Sign("session-1", identity)
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := codec.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "session-1", claims.ID)
	assert.Equal(t, int64(42), claims.AccountID)

	got := claims.Identity()
	assert.Equal(t, identity.LoginID, got.LoginID)
	assert.Equal(t, identity.DisplayName, got.DisplayName)
	require.NotNil(t, got.Role)
	assert.Equal(t, 3, *got.Role)
}

func TestVerifyWrongSecret(t *testing.T) {
	identity := &domain.Identity{AccountID: 1, LoginID: "u1", DisplayName: "Alice"}

	token, _, err := NewTokenCodec("right", 5).Sign("s1", identity)
	require.NoError(t, err)

	_, err = NewTokenCodec("wrong", 5).Verify(token)
	assert.Error(t, err)
}

func TestVerifyTamperedToken(t *testing.T) {
	codec := NewTokenCodec("secret", 5)
	identity := &domain.Identity{AccountID: 1, LoginID: "u1", DisplayName: "Alice"}

	token, _, err := codec.Sign("s1", identity)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + ".eyJhY2NvdW50X2lkIjo5OTl9." + parts[2]

	_, err = codec.Verify(tampered)
	assert.Error(t, err)
}

func TestTokenNeverCarriesSecret(t *testing.T) {
	codec := NewTokenCodec("secret", 5)
	identity := &domain.Identity{AccountID: 1, LoginID: "u1", DisplayName: "Alice"}

	token, _, err := codec.Sign("s1", identity)
	require.NoError(t, err)

	// The payload is base64 JSON of the claims; no credential field
	// exists on the claims type to leak.
	claims, err := codec.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.LoginID)
}

func TestDefaultTTL(t *testing.T) {
	codec := NewTokenCodec("secret", 0)
	assert.Equal(t, time.Hour, codec.TTL())
}
