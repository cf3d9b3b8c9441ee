package http

import (
	"github.com/gin-gonic/gin"

	"escalation-srv/internal/escalate"
	"escalation-srv/pkg/log"
)

type handler struct {
	l  log.Logger
	uc escalate.UseCase
}

func New(l log.Logger, uc escalate.UseCase) *handler {
	return &handler{l: l, uc: uc}
}

// MapRoutes registers the escalation policy endpoints.
func (h *handler) MapRoutes(r *gin.RouterGroup) {
	policy := r.Group("/escalation-policy")
	policy.GET("", h.getPolicy)
	policy.PUT("", h.updatePolicy)
	policy.POST("/test/:level", h.testLevel)
}
