package httpserver

import (
	"database/sql"
	"errors"

	"github.com/gin-gonic/gin"

	"escalation-srv/internal/dispatch"
	"escalation-srv/internal/escalate"
	"escalation-srv/internal/report"
	"escalation-srv/internal/scheduler"
	"escalation-srv/pkg/log"
)

// HTTPServer represents the HTTP server with all dependencies.
// New() only wires dependencies and validates them.
// Run() (in httpserver.go) starts the scheduler and HTTP serving.
type HTTPServer struct {
	// Server configuration
	gin         *gin.Engine
	logger      log.Logger
	port        int
	environment string

	// Domain use cases
	reportUC   report.UseCase
	dispatchUC dispatch.UseCase
	escalateUC escalate.UseCase

	// Background work
	scheduler *scheduler.Scheduler

	// Database, held for health checks only
	db *sql.DB
}

// Config is the constructor input for HTTPServer.
// Keep this minimal: only fields really needed by HTTPServer.
type Config struct {
	Port        int
	Environment string

	ReportUC   report.UseCase
	DispatchUC dispatch.UseCase
	EscalateUC escalate.UseCase

	Scheduler *scheduler.Scheduler

	DB *sql.DB
}

// New creates a new HTTPServer instance with the provided configuration.
// Note: This does NOT start any goroutines. Use (*HTTPServer).Run() to start the service.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Environment) // cfg.Environment should map to gin mode by convention

	srv := &HTTPServer{
		gin:         gin.New(),
		logger:      logger,
		port:        cfg.Port,
		environment: cfg.Environment,

		reportUC:   cfg.ReportUC,
		dispatchUC: cfg.DispatchUC,
		escalateUC: cfg.EscalateUC,

		scheduler: cfg.Scheduler,

		db: cfg.DB,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

// validate ensures all required dependencies are provided.
func (s *HTTPServer) validate() error {
	if s.logger == nil {
		return errors.New("logger is required")
	}
	if s.port == 0 {
		return errors.New("port is required")
	}
	if s.reportUC == nil {
		return errors.New("report use case is required")
	}
	if s.dispatchUC == nil {
		return errors.New("dispatch use case is required")
	}
	if s.escalateUC == nil {
		return errors.New("escalate use case is required")
	}
	if s.db == nil {
		return errors.New("database is required")
	}

	return nil
}
