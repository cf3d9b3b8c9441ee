package httpserver

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// shutdownTimeout bounds the scheduler drain on shutdown.
const shutdownTimeout = 30 * time.Second

// Run starts the HTTP server and the scheduler, then blocks until a
// shutdown signal:
//  1. Map HTTP handlers and routes
//  2. Start the scheduler sweeps
//  3. Start HTTP server
//  4. Wait for shutdown signal, then drain the scheduler
func (srv *HTTPServer) Run() error {
	ctx := context.Background()

	srv.mapHandlers()

	if srv.scheduler != nil {
		if err := srv.scheduler.Start(); err != nil {
			srv.logger.Fatalf(ctx, "Failed to start scheduler: %v", err)
			return err
		}
	}

	go func() {
		if err := srv.gin.Run(fmt.Sprintf(":%d", srv.port)); err != nil {
			srv.logger.Errorf(ctx, "HTTP server error: %v", err)
		}
	}()

	srv.logger.Infof(ctx, "HTTP server started on port: %d", srv.port)

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	srv.logger.Info(ctx, <-ch)
	srv.logger.Info(ctx, "Stopping escalation service...")

	if srv.scheduler != nil {
		stopCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
		defer cancel()
		if err := srv.scheduler.Stop(stopCtx); err != nil {
			srv.logger.Errorf(ctx, "Scheduler shutdown error: %v", err)
		}
	}

	return nil
}
