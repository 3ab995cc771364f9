package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// RequestID makes sure every request carries an id, generating one when the
// client did not supply it, and echoes it on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
			c.Request.Header.Set(requestIDHeader, requestID)
		}

		c.Header(requestIDHeader, requestID)
		c.Next()
	}
}
