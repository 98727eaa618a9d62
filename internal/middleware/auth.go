package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"roomfinder_backend/internal/auth"
)

const (
	SessionCookie = "session"
	identityKey   = "user"
)

// TokenVerifier turns a session token into the identity it was issued for.
type TokenVerifier interface {
	Verify(token string) (*auth.Identity, error)
}

func sessionToken(c *fiber.Ctx) string {
	if header := c.Get(fiber.HeaderAuthorization); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	return c.Cookies(SessionCookie)
}

// Session resolves the caller from a bearer token or the session cookie. An
// absent or invalid credential leaves the request anonymous.
func Session(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token := sessionToken(c); token != "" {
			if identity, err := verifier.Verify(token); err == nil {
				c.Locals(identityKey, identity)
			}
		}
		return c.Next()
	}
}

// CurrentIdentity returns the caller resolved by Session, if any.
func CurrentIdentity(c *fiber.Ctx) (*auth.Identity, bool) {
	identity, ok := c.Locals(identityKey).(*auth.Identity)
	return identity, ok && identity != nil
}

// RequireAuth rejects anonymous requests with 401.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := CurrentIdentity(c); !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}
		return c.Next()
	}
}
