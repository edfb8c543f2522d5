package middleware

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"vocab-learn-system/auth"
)

// UserContextMiddleware resolves the bearer credential into an identity and
// attaches it to the request context. Requests without a verifiable token are
// rejected with 401 before any handler runs.
func UserContextMiddleware(secretKey []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}

		claims, err := auth.ParseToken(strings.TrimPrefix(authHeader, "Bearer "), secretKey)
		if err != nil {
			log.Printf("🚫 [AUTH] token rejected for %s: %v", c.Path(), err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}

		// Attach to ctx for handlers
		c.Locals("user_id", claims.UserID)
		c.Locals("email", claims.Email)
		c.Locals("is_admin", claims.IsAdmin)

		return c.Next()
	}
}

// AdminOnlyMiddleware rejects authenticated non-admin identities with 403.
// Must run after UserContextMiddleware.
func AdminOnlyMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		isAdmin, _ := c.Locals("is_admin").(bool)
		if !isAdmin {
			log.Printf("❌ [AUTH] admin-only route denied for user %v: %s", c.Locals("user_id"), c.Path())
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Unauthorized - Admin only",
			})
		}
		return c.Next()
	}
}
