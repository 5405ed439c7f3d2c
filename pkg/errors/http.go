package errors

import (
	"errors"
)

// HTTPStatusCode maps an error to the HTTP status the client should see.
// Anything unrecognized collapses to 500.
func HTTPStatusCode(err error) int {
	if err == nil {
		return StatusInternalServerError
	}

	switch GetErrorType(err) {
	case ErrorTypeNotFound:
		return StatusNotFound
	case ErrorTypeInvalidRequest:
		return StatusBadRequest
	case ErrorTypeConflict:
		return StatusConflict
	case ErrorTypeRequestTimeout:
		return StatusRequestTimeout
	case ErrorTypeTooManyRequests:
		return StatusTooManyRequests
	case ErrorTypeMethodNotAllowed:
		return StatusMethodNotAllowed
	default:
		// DATABASE_ERROR, DISPATCH_FAILURE, INTERNAL_SERVER_ERROR, UNKNOWN_ERROR
		return StatusInternalServerError
	}
}

// GetHumanReadableMessage returns the client-facing message of an AppError.
// Foreign errors get a generic message so internals (driver errors, stack
// strings) never leak to the client.
func GetHumanReadableMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}

	return "An unexpected error occurred"
}

// ErrorDetail returns the string placed in the envelope's "error" field.
// It is always the type label, never the wrapped cause, so driver and
// transport internals stay out of responses.
func ErrorDetail(err error) string {
	if err == nil {
		return ""
	}

	return GetErrorType(err)
}
