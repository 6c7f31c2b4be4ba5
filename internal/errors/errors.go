package errors

import "github.com/sawant8123/storefront-service/internal/model"

var (
	FieldsRequired         = NewTypedError("All fields are required", model.ErrorTypeValidation)
	IdentifierRequired     = NewTypedError("Identifier is required", model.ErrorTypeValidation)
	InvalidRequestBody     = NewTypedError("Invalid request body", model.ErrorTypeValidation)
	UnknownAction          = NewTypedError("Unknown action", model.ErrorTypeValidation)
	UserExists             = NewTypedError("User already exists", model.ErrorTypeConflict)
	UserNotFound           = NewTypedError("User not found", model.ErrorTypeNotFound)
	OrderNotFound          = NewTypedError("Order not found", model.ErrorTypeNotFound)
	ProductNotInCart       = NewTypedError("Product not in cart", model.ErrorTypeNotFound)
	InvalidCredentials     = NewTypedError("Invalid credentials", model.ErrorTypeInvalidCredentials)
	CartEmpty              = NewTypedError("Cart is empty", model.ErrorTypeEmptyCart)
	ReturnNotAllowed       = NewTypedError("Return only allowed for delivered orders", model.ErrorTypeInvalidState)
	ReturnAlreadyRequested = NewTypedError("Return already requested", model.ErrorTypeAlreadyRequested)
	MissingToken           = NewTypedError("No token", model.ErrorTypeUnauthenticated)
	InvalidToken           = NewTypedError("Invalid token", model.ErrorTypeForbidden)
	JWTSecretNotConfigured = NewTypedError("JWT secret not configured", model.ErrorTypeInternalServer)
	RateLimitExceeded      = NewTypedError("Too many attempts. Please try again later.", model.ErrorTypeRateLimited)
	ErrSomethingWentWrong  = NewTypedError("Internal server error", model.ErrorTypeInternalServer)
)

var ConcurrentModification = NewTypedError("The account was modified concurrently, please retry", model.ErrorTypeConflict)
