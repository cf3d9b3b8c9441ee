package http

import (
	"github.com/gin-gonic/gin"

	"escalation-srv/internal/dispatch"
	"escalation-srv/pkg/log"
)

type handler struct {
	l  log.Logger
	uc dispatch.UseCase
}

func New(l log.Logger, uc dispatch.UseCase) *handler {
	return &handler{l: l, uc: uc}
}

// MapRoutes registers the webhook-config and delivery-log endpoints.
func (h *handler) MapRoutes(r *gin.RouterGroup) {
	cfgs := r.Group("/webhook-configs")
	cfgs.GET("", h.listConfigs)
	cfgs.POST("", h.createConfig)
	cfgs.GET("/:id", h.detailConfig)
	cfgs.PUT("/:id", h.updateConfig)
	cfgs.DELETE("/:id", h.deleteConfig)
	cfgs.POST("/:id/test", h.testChannel)

	r.GET("/delivery-logs", h.getLogs)
}
