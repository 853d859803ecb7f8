package middleware

import (
	"strings"

	"go-sales-crm/internal/model"

	"github.com/gofiber/fiber/v2"
)

const principalKey = "principal"

// Authenticator resolves a bearer token to the calling principal.
type Authenticator interface {
	Authenticate(tokenString string) (model.Principal, error)
}

// RequireAuth is middleware that validates JWT token and sets the principal in context
func RequireAuth(auth Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Get Authorization header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		principal, err := auth.Authenticate(parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		c.Locals(principalKey, principal)
		c.Locals("user_id", principal.UserID.String())
		return c.Next()
	}
}

// RequireRole rejects callers whose role is not one of roles
func RequireRole(roles ...model.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFrom(c)
		if !ok {
			return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
		}
		for _, r := range roles {
			if principal.Role == r {
				return c.Next()
			}
		}
		return c.Status(403).JSON(fiber.Map{"error": "Forbidden: insufficient role"})
	}
}

// PrincipalFrom returns the principal stored by RequireAuth.
func PrincipalFrom(c *fiber.Ctx) (model.Principal, bool) {
	p, ok := c.Locals(principalKey).(model.Principal)
	return p, ok
}
