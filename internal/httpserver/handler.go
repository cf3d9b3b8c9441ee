package httpserver

import (
	dispatchHTTP "escalation-srv/internal/dispatch/delivery/http"
	escalateHTTP "escalation-srv/internal/escalate/delivery/http"
	"escalation-srv/internal/middleware"
	reportHTTP "escalation-srv/internal/report/delivery/http"
)

const Api = "/api/v1"

func (srv *HTTPServer) mapHandlers() {
	srv.gin.Use(middleware.Recovery(srv.logger))

	corsConfig := middleware.DefaultCORSConfig()
	srv.gin.Use(middleware.CORS(corsConfig))

	// Health check endpoints
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/live", srv.liveCheck)

	api := srv.gin.Group(Api)
	dispatchHTTP.New(srv.logger, srv.dispatchUC).MapRoutes(api)
	reportHTTP.New(srv.logger, srv.reportUC).MapRoutes(api)
	escalateHTTP.New(srv.logger, srv.escalateUC).MapRoutes(api)
}
