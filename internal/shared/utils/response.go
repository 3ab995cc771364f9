package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fieldpulse/internal/shared/errors"
)

// APIResponse is the envelope every endpoint returns.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

// ErrorInfo carries the machine-readable error portion of the envelope.
type ErrorInfo struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// SuccessResponse writes a successful envelope with the given status code.
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, APIResponse{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// CreatedResponse writes a 201 envelope.
func CreatedResponse(c *gin.Context, data interface{}, message ...string) {
	msg := "Resource created successfully"
	if len(message) > 0 {
		msg = message[0]
	}

	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Data:    data,
		Message: msg,
	})
}

// ErrorResponse writes a failure envelope with an untyped error.
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	writeError(c, statusCode, ErrorInfo{
		Type:    "error",
		Message: message,
	})
}

// ErrorResponseWithError maps an error onto the envelope. AppError values keep
// their type, message, and HTTP code; anything else is reported as an opaque
// internal error so driver and SQL details never reach clients.
func ErrorResponseWithError(c *gin.Context, err error) {
	if appErr := errors.GetAppError(err); appErr != nil {
		writeError(c, appErr.Code, ErrorInfo{
			Type:    string(appErr.Type),
			Message: appErr.Message,
			Details: appErr.Details,
		})
		return
	}

	writeError(c, http.StatusInternalServerError, ErrorInfo{
		Type:    string(errors.ErrorTypeInternal),
		Message: "Internal server error occurred",
	})
}

func writeError(c *gin.Context, statusCode int, info ErrorInfo) {
	c.JSON(statusCode, APIResponse{
		Success: false,
		Error:   &info,
	})
}
