package session

import (
	"context"
	"errors"
	"time"

	"github.com/spec-kit/account-service/internal/domain"
)

// ErrNoSession indicates the caller has no live session: the token was
// never issued, was revoked, or has expired. Callers must treat it as
// "not authenticated", never substitute a default identity.
var ErrNoSession = errors.New("no session")

// Store persists identity snapshots against opaque session ids for the
// lifetime of a session.
type Store interface {
	Put(ctx context.Context, sessionID string, identity *domain.Identity, ttl time.Duration) error
	Get(ctx context.Context, sessionID string) (*domain.Identity, error)
	Delete(ctx context.Context, sessionID string) error
}
