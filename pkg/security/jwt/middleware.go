package jwt

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const localUserID = "userId"

// NewAuthMiddleware returns a Fiber middleware that validates Bearer JWT (HS256).
// On success sets user id (subject) into c.Locals("userId").
// Failures are returned as 401 *fiber.Error, the app error handler picks the body format.
func NewAuthMiddleware(secret, expectedIssuer string) fiber.Handler {
	return newMiddleware([]byte(secret), expectedIssuer, false)
}

// NewOptionalAuthMiddleware lets requests without an Authorization header through
// anonymously. A header that is present must still carry a valid token.
func NewOptionalAuthMiddleware(secret, expectedIssuer string) fiber.Handler {
	return newMiddleware([]byte(secret), expectedIssuer, true)
}

func newMiddleware(secret []byte, expectedIssuer string, optional bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			if optional {
				return c.Next()
			}
			return fiber.NewError(http.StatusUnauthorized, "missing Authorization header")
		}
		tokenStr := bearerToken(authHeader)
		if tokenStr == "" {
			return fiber.NewError(http.StatusUnauthorized, "empty token")
		}
		claims, err := Parse(tokenStr, secret, expectedIssuer)
		if err != nil {
			return fiber.NewError(http.StatusUnauthorized, err.Error())
		}
		c.Locals(localUserID, claims.Subject)
		return c.Next()
	}
}

// Support both "Bearer <token>" and "<token>" (no prefix).
func bearerToken(header string) string {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return strings.TrimSpace(header)
}

// UserID returns the authenticated user id, or uuid.Nil for anonymous requests.
func UserID(c *fiber.Ctx) uuid.UUID {
	s, _ := c.Locals(localUserID).(string)
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil
	}
	return id
}
