package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/account-service/internal/auth"
	"github.com/spec-kit/account-service/internal/config"
	"github.com/spec-kit/account-service/internal/domain"
)

// Manager binds identity snapshots to caller sessions. A session token
// is a signed JWT whose id references a server-side record; revoking
// the record invalidates the token before its signature expires.
type Manager struct {
	codec *auth.TokenCodec
	store Store
}

// NewManager builds the manager from auth config and a session store.
func NewManager(cfg config.AuthConfig, store Store) *Manager {
	return &Manager{
		codec: auth.NewTokenCodec(cfg.JWTSecret, cfg.SessionTTLMinutes),
		store: store,
	}
}

// Issue creates a session for the identity and returns the opaque token
// the caller presents on subsequent requests.
func (m *Manager) Issue(ctx context.Context, identity *domain.Identity) (string, time.Time, error) {
	sessionID := uuid.NewString()

	token, expiresAt, err := m.codec.Sign(sessionID, identity)
	if err != nil {
		return "", time.Time{}, err
	}
	if err := m.store.Put(ctx, sessionID, identity, m.codec.TTL()); err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// Current resolves a token to the identity it was issued for. It
// returns ErrNoSession when the token is invalid, expired, or its
// session record has been revoked.
func (m *Manager) Current(ctx context.Context, token string) (*domain.Identity, error) {
	claims, err := m.codec.Verify(token)
	if err != nil {
		return nil, ErrNoSession
	}
	return m.store.Get(ctx, claims.ID)
}

// Revoke ends the session behind the token. Revoking an already-dead
// session is a no-op.
func (m *Manager) Revoke(ctx context.Context, token string) error {
	claims, err := m.codec.Verify(token)
	if err != nil {
		return ErrNoSession
	}
	return m.store.Delete(ctx, claims.ID)
}
