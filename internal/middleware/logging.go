package middleware

import (
	"io"       // Discard gin's own panic output
	"net/http" // HTTP status codes
	"time"     // Request timing

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// RequestLogger writes one structured access-log entry per request
func RequestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now() // Start timer
		c.Next()            // Process request

		status := c.Writer.Status() // Final response status
		entry := logger.WithFields(logrus.Fields{
			"method":      c.Request.Method,                 // HTTP method
			"path":        c.Request.URL.Path,               // Route path
			"query":       c.Request.URL.RawQuery,           // Raw query string
			"status":      status,                           // Response status
			"duration_ms": time.Since(start).Milliseconds(), // Handler latency
			"client_ip":   c.ClientIP(),                     // Caller address
		})
		// Attach handler errors if any were recorded
		if len(c.Errors) > 0 {
			entry = entry.WithField("errors", c.Errors.String())
		}
		switch {
		case status >= http.StatusInternalServerError:
			entry.Error("Request failed")
		case status >= http.StatusBadRequest:
			entry.Warn("Request rejected")
		default:
			entry.Info("Request completed")
		}
	}
}

// Recovery turns a panic into a 500 response and logs it
func Recovery(logger *logrus.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		logger.WithFields(logrus.Fields{
			"path":  c.Request.URL.Path, // Route path
			"panic": recovered,          // Recovered value
		}).Error("Handler panicked")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	})
}
