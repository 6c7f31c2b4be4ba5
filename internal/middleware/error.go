package middleware

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/sawant8123/storefront-service/internal/auth"
	customErrors "github.com/sawant8123/storefront-service/internal/errors"
	"github.com/sawant8123/storefront-service/internal/model"
)

// ErrorHandler renders every error as {"msg": ...}. Anything that is not a
// client-facing error is logged and reported as a bare 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status, msg := presentError(err)
	if status >= fiber.StatusInternalServerError {
		log.Printf("Internal error on %s %s from %s: %+v", c.Method(), c.Path(), auth.GetIPFromContext(c.UserContext()), err)
	}
	return c.Status(status).JSON(model.MessageResponse{Msg: msg})
}

func presentError(err error) (int, string) {
	var typedErr customErrors.TypedError
	if errors.As(err, &typedErr) && typedErr.StatusCode() < fiber.StatusInternalServerError {
		return typedErr.StatusCode(), typedErr.Error()
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) && fiberErr.Code < fiber.StatusInternalServerError {
		return fiberErr.Code, fiberErr.Message
	}

	return fiber.StatusInternalServerError, customErrors.ErrSomethingWentWrong.Error()
}
