package errors

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/sawant8123/storefront-service/internal/model"
)

type TypedError interface {
	error
	ErrorType() model.ErrorType
	StatusCode() int
}

// AppError is an error safe to show to API clients.
type AppError struct {
	Message string
	Type    model.ErrorType
}

func (e *AppError) Error() string              { return e.Message }
func (e *AppError) ErrorType() model.ErrorType { return e.Type }
func (e *AppError) StatusCode() int            { return StatusFor(e.Type) }

func NewTypedError(message string, code model.ErrorType) *AppError {
	return &AppError{Message: message, Type: code}
}

type internalError struct {
	err error
}

func (e *internalError) Error() string              { return e.err.Error() }
func (e *internalError) ErrorType() model.ErrorType { return model.ErrorTypeInternalServer }
func (e *internalError) StatusCode() int            { return fiber.StatusInternalServerError }
func (e *internalError) Unwrap() error              { return e.err }

func InternalServerError(message string, args ...any) error {
	return &internalError{err: fmt.Errorf(message, args...)}
}

func StatusFor(t model.ErrorType) int {
	switch t {
	case model.ErrorTypeValidation,
		model.ErrorTypeInvalidCredentials,
		model.ErrorTypeEmptyCart,
		model.ErrorTypeInvalidState,
		model.ErrorTypeAlreadyRequested:
		return fiber.StatusBadRequest
	case model.ErrorTypeConflict:
		return fiber.StatusConflict
	case model.ErrorTypeNotFound:
		return fiber.StatusNotFound
	case model.ErrorTypeUnauthenticated:
		return fiber.StatusUnauthorized
	case model.ErrorTypeForbidden:
		return fiber.StatusForbidden
	case model.ErrorTypeRateLimited:
		return fiber.StatusTooManyRequests
	default:
		return fiber.StatusInternalServerError
	}
}
