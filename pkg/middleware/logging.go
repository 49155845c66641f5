package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kmorales/wayfarer/pkg/logger"
)

// RequestLogger creates a structured logging middleware for Gin
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		statusCode := c.Writer.Status()

		fields := map[string]interface{}{
			"method":     c.Request.Method,
			"path":       path,
			"status":     statusCode,
			"latency":    latency,
			"client_ip":  c.ClientIP(),
			"user_agent": c.Request.UserAgent(),
		}

		if requestID := GetRequestID(c); requestID != "" {
			fields["request_id"] = requestID
		}

		if raw != "" {
			fields["query"] = raw
		}

		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}

		logMsg := "HTTP Request"

		switch {
		case statusCode >= 500:
			logger.WithFields(fields).Error(nil, logMsg)
		case statusCode >= 400:
			logger.WithFields(fields).Warn(logMsg)
		default:
			logger.WithFields(fields).Info(logMsg)
		}
	}
}

// Recovery creates a recovery middleware with structured logging
func Recovery() gin.HandlerFunc {
	return gin.RecoveryWithWriter(gin.DefaultWriter, func(c *gin.Context, recovered interface{}) {
		fields := map[string]interface{}{
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"client_ip": c.ClientIP(),
			"panic":     recovered,
		}

		logger.WithFields(fields).Error(nil, "Panic recovered")
		c.AbortWithStatus(500)
	})
}
