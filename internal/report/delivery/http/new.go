package http

import (
	"github.com/gin-gonic/gin"

	"escalation-srv/internal/report"
	"escalation-srv/pkg/log"
)

type handler struct {
	l  log.Logger
	uc report.UseCase
}

func New(l log.Logger, uc report.UseCase) *handler {
	return &handler{l: l, uc: uc}
}

// MapRoutes registers the report-config, run and export endpoints.
func (h *handler) MapRoutes(r *gin.RouterGroup) {
	cfgs := r.Group("/report-configs")
	cfgs.GET("", h.listConfigs)
	cfgs.POST("", h.createConfig)
	cfgs.GET("/:id", h.detailConfig)
	cfgs.PUT("/:id", h.updateConfig)
	cfgs.DELETE("/:id", h.deleteConfig)
	cfgs.GET("/:id/preview", h.preview)
	cfgs.POST("/:id/send-now", h.sendNow)
	cfgs.GET("/:id/history", h.getHistory)

	r.GET("/reports/export", h.export)
}
