package middleware

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/sawant8123/storefront-service/internal/auth"
)

// ClientContext seeds the user context with the resolved client address.
// Rate limiting keys on it and services read it for their log lines.
func (sm *SecurityMiddleware) ClientContext() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := context.WithValue(c.UserContext(), auth.ClientIPKey, sm.getClientIP(c))
		c.SetUserContext(ctx)
		return c.Next()
	}
}
