package httpserver

import (
	"github.com/gin-gonic/gin"

	"escalation-srv/pkg/errors"
	"escalation-srv/pkg/response"
)

// healthCheck reports whether the service can reach its database.
func (srv *HTTPServer) healthCheck(c *gin.Context) {
	ctx := c.Request.Context()

	if err := srv.db.PingContext(ctx); err != nil {
		response.Error(c, errors.NewHTTPError(503, "Database connection failed"))
		return
	}

	response.OK(c, gin.H{
		"status":   "healthy",
		"service":  "escalation-srv",
		"version":  "1.0.0",
		"database": "connected",
	})
}

// liveCheck reports process liveness only.
func (srv *HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "alive",
		"service": "escalation-srv",
	})
}
