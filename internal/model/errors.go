package model

type ErrorType string

const (
	ErrorTypeValidation         ErrorType = "VALIDATION"
	ErrorTypeConflict           ErrorType = "CONFLICT"
	ErrorTypeNotFound           ErrorType = "NOT_FOUND"
	ErrorTypeUnauthenticated    ErrorType = "UNAUTHENTICATED"
	ErrorTypeForbidden          ErrorType = "FORBIDDEN"
	ErrorTypeInvalidCredentials ErrorType = "INVALID_CREDENTIALS"
	ErrorTypeEmptyCart          ErrorType = "EMPTY_CART"
	ErrorTypeInvalidState       ErrorType = "INVALID_STATE"
	ErrorTypeAlreadyRequested   ErrorType = "ALREADY_REQUESTED"
	ErrorTypeRateLimited        ErrorType = "RATE_LIMITED"
	ErrorTypeInternalServer     ErrorType = "INTERNAL_SERVER_ERROR"
)
