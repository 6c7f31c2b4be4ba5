package http

import (
	"github.com/gofiber/fiber/v2"
	customErrors "github.com/sawant8123/storefront-service/internal/errors"
	"github.com/sawant8123/storefront-service/internal/model"
)

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input model.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return customErrors.InvalidRequestBody
	}

	token, err := h.authService.Login(c.UserContext(), input)
	if err != nil {
		return err
	}

	return c.JSON(model.TokenResponse{Token: token})
}
