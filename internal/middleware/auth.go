package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sawant8123/storefront-service/internal/auth"
	customErrors "github.com/sawant8123/storefront-service/internal/errors"
	"github.com/sawant8123/storefront-service/pkg/jwt"
)

// RequireAuth rejects requests without a valid token and attaches the
// caller's user id to both the fiber locals and the user context.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := stripToken(c.Get(fiber.HeaderAuthorization))
		if tokenString == "" {
			return customErrors.MissingToken
		}

		claims, err := jwt.ValidateToken(tokenString)
		if err != nil {
			return customErrors.InvalidToken
		}

		userID := claims.GetUserID()
		c.Locals(auth.CurrentUserIDKey, userID)
		c.SetUserContext(auth.WithCurrentUserID(c.UserContext(), userID))

		return c.Next()
	}
}

// stripToken accepts the raw token or one prefixed with "Bearer ".
func stripToken(authHeader string) string {
	authHeader = strings.TrimSpace(authHeader)

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}

	return authHeader
}
