// Package respond standardizes the JSON bodies the session service writes.
package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Error codes carried in the error envelope.
const (
	CodeSessionNotFound    = "SESSION_NOT_FOUND"
	CodeEntryNotFound      = "ENTRY_NOT_FOUND"
	CodeValidationError    = "VALIDATION_ERROR"
	CodeGenerationInFlight = "GENERATION_IN_FLIGHT"
	CodeNotConfigured      = "NOT_CONFIGURED"
	CodeGenerationFailed   = "GENERATION_FAILED"
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeInternal           = "INTERNAL"
)

// ErrorBody defines the standardized error object.
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorResponse wraps the error body.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// Error sends a standardized error response and aborts the request.
func Error(c *gin.Context, status int, code, message string, details interface{}) {
	log.Debug().
		Int("status", status).
		Str("code", code).
		Str("message", message).
		Str("path", c.Request.URL.Path).
		Str("method", c.Request.Method).
		Str("request_id", c.GetString("requestId")).
		Msg("request refused")

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// JSON writes a JSON response with the given status.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

// OK writes a 200 OK JSON response.
func OK(c *gin.Context, payload interface{}) {
	JSON(c, http.StatusOK, payload)
}
