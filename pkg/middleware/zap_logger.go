package middleware

import (
	"strings"
	"time"

	"visawatch/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Paths too chatty to log per request.
var quietPaths = map[string]bool{
	"/health":      true,
	"/ping":        true,
	"/favicon.ico": true,
}

// GinZapLogger logs each request through the shared zap logger, with
// the level picked from the response status.
func GinZapLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.Request.URL.Path
		if quietPaths[path] {
			return
		}
		// Swagger assets drown out everything else.
		if strings.HasPrefix(path, "/swagger/") && path != "/swagger/index.html" {
			return
		}

		latency := time.Since(start)

		fields := []zap.Field{
			zap.String("request_id", c.GetString("RequestID")),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("ip", c.ClientIP()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.Int("response_size", c.Writer.Size()),
		}

		if c.Request.URL.RawQuery != "" {
			fields = append(fields, zap.String("query", c.Request.URL.RawQuery))
		}
		if gin.Mode() == gin.DebugMode {
			fields = append(fields, zap.String("user_agent", c.Request.UserAgent()))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("error", c.Errors.String()))
		}

		statusCode := c.Writer.Status()
		switch {
		case statusCode >= 500:
			logger.Error("Internal server error", fields...)
		case statusCode >= 400:
			logger.Warn("Client request error", fields...)
		case statusCode >= 300:
			logger.Info("Request redirect", fields...)
		default:
			logger.Debug("HTTP request completed", fields...)
		}
	}
}
