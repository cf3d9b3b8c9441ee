package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"escalation-srv/pkg/log"
)

// Recovery turns a handler panic into a 500 response instead of tearing
// down the connection.
func Recovery(logger log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				ctx := c.Request.Context()
				logger.Errorf(ctx, "internal.middleware.Recovery: %v | Method: %s | Path: %s",
					err, c.Request.Method, c.Request.URL.Path)

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error_code": http.StatusInternalServerError,
					"message":    "Internal server error",
				})
			}
		}()
		c.Next()
	}
}
