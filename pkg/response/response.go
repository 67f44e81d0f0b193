package response

import (
	"github.com/gin-gonic/gin"
)

// Error codes surfaced in the errorCode field of the failure envelope.
const (
	CodeNotFound           = "NOT_FOUND"
	CodeAlreadyExists      = "ALREADY_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeValidationError    = "VALIDATION_ERROR"
	CodeUnexpected         = "UNEXPECTED"
)

// ErrorBody is the uniform failure envelope.
type ErrorBody struct {
	Message   string `json:"message"`
	ErrorCode string `json:"errorCode"`
	Error     any    `json:"error,omitempty"`
}

// Error writes the failure envelope with the given status.
func Error(c *gin.Context, status int, code, message string, details any) {
	c.JSON(status, ErrorBody{Message: message, ErrorCode: code, Error: details})
}

// AbortError writes the failure envelope and aborts the handler chain.
// Used from middleware.
func AbortError(c *gin.Context, status int, code, message string, details any) {
	c.AbortWithStatusJSON(status, ErrorBody{Message: message, ErrorCode: code, Error: details})
}

// OK writes a success payload as-is.
func OK(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}
