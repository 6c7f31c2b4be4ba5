package http

import (
	"github.com/gofiber/fiber/v2"
	customErrors "github.com/sawant8123/storefront-service/internal/errors"
	"github.com/sawant8123/storefront-service/internal/model"
)

// Signup creates an account and answers 201 with a token for it.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var input model.SignupInput
	if err := c.BodyParser(&input); err != nil {
		return customErrors.InvalidRequestBody
	}

	token, err := h.authService.Signup(c.UserContext(), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(model.TokenResponse{Token: token})
}
