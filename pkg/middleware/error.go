package middleware

import (
	"net/http"

	"visawatch/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorHandler logs request errors collected on the context and writes
// a generic 500 body when no handler responded.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last()

		logger.Error("request error",
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.Error(err.Err),
			zap.String("request_id", c.GetString("RequestID")),
			zap.Int("status", c.Writer.Status()),
		)

		if !c.Writer.Written() {
			status := c.Writer.Status()
			if status == 0 || status == http.StatusOK {
				status = http.StatusInternalServerError
			}

			c.JSON(status, gin.H{
				"error":      true,
				"message":    "Internal Server Error",
				"request_id": c.GetString("RequestID"),
			})
		}
	}
}

// Recovery turns panics into logged 500 responses.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("panic recovered",
			zap.Any("error", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.String("request_id", c.GetString("RequestID")),
			zap.Stack("stack"),
		)

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":      true,
			"message":    "Internal Server Error",
			"request_id": c.GetString("RequestID"),
		})
	})
}
