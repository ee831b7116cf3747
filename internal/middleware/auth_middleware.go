package middleware

import (
	"strings"

	"tienda/internal/models"
	"tienda/internal/services"

	"github.com/gofiber/fiber/v2"
)

// Context keys under which AuthRequired stores the resolved user and the
// plaintext token presented on the request.
const (
	UserContextKey  = "current_user"
	TokenContextKey = "access_token"
)

// AuthRequired is a Fiber middleware that resolves the bearer token against
// the token store. Requests without a live token are rejected with a generic
// 401 before the handler runs.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return unauthorized(c, "Authorization header is required")
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return unauthorized(c, "Authorization header format must be 'Bearer <token>'")
		}
		tokenString := parts[1]

		user, err := authService.ResolveToken(tokenString)
		if err != nil {
			return unauthorized(c, "Invalid or expired token")
		}

		c.Locals(UserContextKey, user)
		c.Locals(TokenContextKey, tokenString)
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(models.Envelope{
		Status:  "error",
		Message: message,
	})
}
