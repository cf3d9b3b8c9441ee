package main

import (
	"context"
	"fmt"

	"escalation-srv/config"
	"escalation-srv/config/postgre"
	dispatchPostgres "escalation-srv/internal/dispatch/repository/postgre"
	dispatchUC "escalation-srv/internal/dispatch/usecase"
	escalatePostgres "escalation-srv/internal/escalate/repository/postgre"
	escalateUC "escalation-srv/internal/escalate/usecase"
	"escalation-srv/internal/httpserver"
	reportPostgres "escalation-srv/internal/report/repository/postgre"
	reportUC "escalation-srv/internal/report/usecase"
	"escalation-srv/internal/scheduler"
	"escalation-srv/pkg/log"
	"escalation-srv/pkg/mailer"
	"escalation-srv/pkg/push"
	"escalation-srv/pkg/sms"
	"escalation-srv/pkg/webhook"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// Initialize logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx := context.Background()

	// Connect to PostgreSQL
	db, err := postgre.Connect(ctx, cfg.Postgres)
	if err != nil {
		logger.Fatalf(ctx, "Failed to connect to PostgreSQL: %v", err)
		return
	}
	defer func() {
		if err := postgre.Disconnect(ctx, db); err != nil {
			logger.Errorf(ctx, "Failed to disconnect from PostgreSQL: %v", err)
		}
	}()

	// Outbound channels
	webhookSender := webhook.New(logger, webhook.Config{
		Timeout:   cfg.Webhook.Timeout,
		UserAgent: cfg.Webhook.UserAgent,
	})
	smtpMailer := mailer.New(logger, mailer.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
		SSL:      cfg.SMTP.SSL,
	})
	// SMS and push are optional: without credentials the escalation sweep
	// records their deliveries as failed instead of sending.
	smsSender, err := sms.New(logger, sms.Config{
		AccountSID: cfg.SMS.AccountSID,
		AuthToken:  cfg.SMS.AuthToken,
		FromNumber: cfg.SMS.FromNumber,
	})
	if err != nil {
		logger.Warnf(ctx, "SMS sender disabled: %v", err)
	}
	pushSender, err := push.New(logger, push.Config{
		ServerKey: cfg.Push.ServerKey,
	})
	if err != nil {
		logger.Warnf(ctx, "Push sender disabled: %v", err)
	}

	// Repositories
	webhookConfigRepo := dispatchPostgres.NewWebhookConfig(logger, db)
	deliveryLogRepo := dispatchPostgres.NewDeliveryLog(logger, db)
	reportConfigRepo := reportPostgres.NewConfig(logger, db)
	reportHistoryRepo := reportPostgres.NewHistory(logger, db)
	reportAlertRepo := reportPostgres.NewAlert(logger, db)
	escalateAlertRepo := escalatePostgres.NewAlert(logger, db)
	escalatePolicyRepo := escalatePostgres.NewPolicy(logger, db)

	// Use cases
	dispatch := dispatchUC.New(logger, webhookSender, webhookConfigRepo, deliveryLogRepo, cfg.Scheduler.DispatchFanout)
	report := reportUC.New(logger, reportConfigRepo, reportHistoryRepo, reportAlertRepo, dispatch, smtpMailer, cfg.Scheduler.ReportWorkers)
	escalate := escalateUC.New(logger, escalateAlertRepo, escalatePolicyRepo, deliveryLogRepo, smtpMailer, smsSender, pushSender)

	// Background sweeps
	sched := scheduler.New(logger, report, dispatch, escalate)

	srv, err := httpserver.New(logger, httpserver.Config{
		Port:        cfg.Server.Port,
		Environment: cfg.Server.Mode,

		ReportUC:   report,
		DispatchUC: dispatch,
		EscalateUC: escalate,

		Scheduler: sched,

		DB: db,
	})
	if err != nil {
		logger.Fatalf(ctx, "Failed to build HTTP server: %v", err)
		return
	}

	if err := srv.Run(); err != nil {
		logger.Fatalf(ctx, "HTTP server stopped: %v", err)
	}
}
