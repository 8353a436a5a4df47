package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/account-service/internal/domain"
	"github.com/spec-kit/account-service/internal/session"
	apperrors "github.com/spec-kit/account-service/pkg/util"
)

const (
	identityKey = "session_identity"
	tokenKey    = "session_token"
)

// SessionMiddleware resolves bearer tokens to identities for protected
// routes. A missing or dead session is always a 401; no synthetic
// identity is ever substituted.
type SessionMiddleware struct {
	sessions *session.Manager
}

// NewSessionMiddleware constructs middleware.
func NewSessionMiddleware(sessions *session.Manager) *SessionMiddleware {
	return &SessionMiddleware{sessions: sessions}
}

// Handle enforces authentication for protected routes.
func (m *SessionMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	identity, err := m.sessions.Current(c.UserContext(), parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("not authenticated")
	}

	c.Locals(identityKey, identity)
	c.Locals(tokenKey, parts[1])
	return c.Next()
}

// IdentityFromContext retrieves the authenticated caller's identity.
func IdentityFromContext(c *fiber.Ctx) (*domain.Identity, bool) {
	identity, ok := c.Locals(identityKey).(*domain.Identity)
	return identity, ok
}

// TokenFromContext retrieves the raw session token of the caller.
func TokenFromContext(c *fiber.Ctx) (string, bool) {
	token, ok := c.Locals(tokenKey).(string)
	return token, ok
}
