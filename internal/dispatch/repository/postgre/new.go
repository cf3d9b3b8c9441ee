package postgres

import (
	"database/sql"
	"time"

	"escalation-srv/internal/dispatch/repository"
	pkgLog "escalation-srv/pkg/log"
)

type implConfigRepository struct {
	l     pkgLog.Logger
	db    *sql.DB
	clock func() time.Time
}

type implLogRepository struct {
	l     pkgLog.Logger
	db    *sql.DB
	clock func() time.Time
}

var (
	_ repository.WebhookConfigRepository = &implConfigRepository{}
	_ repository.DeliveryLogRepository   = &implLogRepository{}
)

func NewWebhookConfig(l pkgLog.Logger, db *sql.DB) *implConfigRepository {
	return &implConfigRepository{
		l:     l,
		db:    db,
		clock: time.Now,
	}
}

func NewDeliveryLog(l pkgLog.Logger, db *sql.DB) *implLogRepository {
	return &implLogRepository{
		l:     l,
		db:    db,
		clock: time.Now,
	}
}
