package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sawant8123/storefront-service/internal/auth"
)

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	profile, err := h.authService.CurrentUser(c.UserContext(), auth.CurrentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(profile)
}
