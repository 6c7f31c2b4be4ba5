package http

import (
	"github.com/gofiber/fiber/v2"
)

// ListUsers dumps every account. Only mounted when debug routes are enabled.
func (h *AuthHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.authService.ListUsers(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(users)
}
