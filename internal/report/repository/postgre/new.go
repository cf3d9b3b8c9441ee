package postgres

import (
	"database/sql"
	"time"

	"escalation-srv/internal/report/repository"
	pkgLog "escalation-srv/pkg/log"
)

type implConfigRepository struct {
	l     pkgLog.Logger
	db    *sql.DB
	clock func() time.Time
}

type implHistoryRepository struct {
	l  pkgLog.Logger
	db *sql.DB
}

type implAlertRepository struct {
	l  pkgLog.Logger
	db *sql.DB
}

var (
	_ repository.ConfigRepository  = &implConfigRepository{}
	_ repository.HistoryRepository = &implHistoryRepository{}
	_ repository.AlertRepository   = &implAlertRepository{}
)

func NewConfig(l pkgLog.Logger, db *sql.DB) *implConfigRepository {
	return &implConfigRepository{
		l:     l,
		db:    db,
		clock: time.Now,
	}
}

func NewHistory(l pkgLog.Logger, db *sql.DB) *implHistoryRepository {
	return &implHistoryRepository{l: l, db: db}
}

func NewAlert(l pkgLog.Logger, db *sql.DB) *implAlertRepository {
	return &implAlertRepository{l: l, db: db}
}
