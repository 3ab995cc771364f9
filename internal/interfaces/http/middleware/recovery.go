package middleware

import (
	"net"
	"net/http"
	"net/http/httputil"
	"os"
	"runtime/debug"
	"strings"

	"github.com/gin-gonic/gin"

	"fieldpulse/internal/shared/logger"
	"fieldpulse/internal/shared/utils"
)

// Recovery converts panics into 500 responses. Broken client connections are
// logged without a response body since there is nobody left to read it.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		if isBrokenConnection(recovered) {
			logger.Error("connection broken during request",
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
				"error", recovered)
			c.Abort()
			return
		}

		logger.Error("panic recovered",
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"headers", maskedRequestHeaders(c),
			"error", recovered,
			"stack", string(debug.Stack()))

		utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error occurred")
	})
}

// maskedRequestHeaders dumps request headers with credentials blanked out.
func maskedRequestHeaders(c *gin.Context) []string {
	raw, _ := httputil.DumpRequest(c.Request, false)
	headers := strings.Split(string(raw), "\r\n")
	for i, header := range headers {
		if name, _, ok := strings.Cut(header, ":"); ok && name == "Authorization" {
			headers[i] = name + ": *"
		}
	}
	return headers
}

func isBrokenConnection(err interface{}) bool {
	opErr, ok := err.(*net.OpError)
	if !ok {
		return false
	}
	sysErr, ok := opErr.Err.(*os.SyscallError)
	if !ok {
		return false
	}

	msg := strings.ToLower(sysErr.Error())
	for _, s := range []string{"connection reset by peer", "broken pipe", "connection refused"} {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}

// ErrorHandler translates errors attached to the gin context into envelope
// responses when the handler has not written one itself.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		logger.Error("handler error occurred",
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"error", err)

		if !c.Writer.Written() {
			utils.ErrorResponseWithError(c, err)
		}
	}
}
