package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/mfadhilr/jobboard_be/internal/utils"
)

const TokenCookie = "jb_token"

// Authenticate resolves the bearer credential to a user identity.
// The Authorization header wins; the session cookie is the fallback
// for browser clients.
func Authenticate(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := ""
		if h := c.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
			tokenStr = strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		}
		if tokenStr == "" {
			tokenStr = c.Cookies(TokenCookie)
		}
		if tokenStr == "" {
			return fiber.ErrUnauthorized
		}

		claims, err := utils.ParseClaims(secret, tokenStr)
		if err != nil {
			return fiber.ErrUnauthorized
		}

		c.Locals("userId", strings.TrimSpace(claims.UserID))
		c.Locals("role", strings.ToLower(strings.TrimSpace(claims.Role)))
		return c.Next()
	}
}
