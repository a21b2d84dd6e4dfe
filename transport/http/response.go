package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/janus-auth/janus/core"
)

// ApiResponse is the uniform envelope for every JSON response.
type ApiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Success wraps data in a successful envelope.
func Success(data any) ApiResponse {
	return ApiResponse{Success: true, Message: "request processed successfully", Data: data}
}

// SuccessMessage wraps data with a custom message.
func SuccessMessage(message string, data any) ApiResponse {
	return ApiResponse{Success: true, Message: message, Data: data}
}

// Fail builds a failure envelope with a message only.
func Fail(message string) ApiResponse {
	return ApiResponse{Success: false, Message: message}
}

// FailData builds a failure envelope carrying error details, e.g. a
// field-to-message map for validation failures.
func FailData(message string, data any) ApiResponse {
	return ApiResponse{Success: false, Message: message, Data: data}
}

// respondError translates a service error into its declared HTTP status.
// Anything without a declared status is a 500 with no internal detail.
func respondError(c *gin.Context, err error) {
	var authErr *core.AuthError
	if errors.As(err, &authErr) {
		c.JSON(authErr.Status, Fail(authErr.Message))
		return
	}
	c.JSON(http.StatusInternalServerError, Fail("internal server error"))
}

// respondBindingError maps request binding failures to a 400. Validation
// failures carry a field-to-message map; anything else (malformed JSON,
// wrong types) gets a generic message.
func respondBindingError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make(map[string]string, len(validationErrs))
		for _, fieldErr := range validationErrs {
			fields[fieldErr.Field()] = "failed " + fieldErr.Tag() + " validation"
		}
		c.JSON(http.StatusBadRequest, FailData("invalid input", fields))
		return
	}
	c.JSON(http.StatusBadRequest, Fail("invalid request"))
}
