package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDKey = "request_id"

// RequestIDHeader is the header the request id is read from and echoed to.
const RequestIDHeader = "X-Request-ID"

// RequestID attaches an id to every request, honouring one supplied by the
// caller so ids stay stable across proxies.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// GetRequestID returns the request's id, or "" when the middleware did not
// run.
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
