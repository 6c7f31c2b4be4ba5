package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

type contextKey string

var (
	CurrentUserIDKey = contextKey("currentUserID")
	ClientIPKey      = contextKey("clientIP")
)

func WithCurrentUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, CurrentUserIDKey, userID)
}

func GetCurrentUserID(ctx context.Context) string {
	if id, ok := ctx.Value(CurrentUserIDKey).(string); ok {
		return id
	}
	return ""
}

// CurrentUserID reads the id the token middleware attached to the request.
func CurrentUserID(c *fiber.Ctx) string {
	if id, ok := c.Locals(CurrentUserIDKey).(string); ok {
		return id
	}
	return GetCurrentUserID(c.UserContext())
}

func GetIPFromContext(ctx context.Context) string {
	if ip, ok := ctx.Value(ClientIPKey).(string); ok {
		return ip
	}
	return ""
}
