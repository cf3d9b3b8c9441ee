package postgres

import (
	"database/sql"

	"escalation-srv/internal/escalate/repository"
	pkgLog "escalation-srv/pkg/log"
)

type implAlertRepository struct {
	l  pkgLog.Logger
	db *sql.DB
}

type implPolicyRepository struct {
	l  pkgLog.Logger
	db *sql.DB
}

var (
	_ repository.AlertRepository  = &implAlertRepository{}
	_ repository.PolicyRepository = &implPolicyRepository{}
)

func NewAlert(l pkgLog.Logger, db *sql.DB) *implAlertRepository {
	return &implAlertRepository{l: l, db: db}
}

func NewPolicy(l pkgLog.Logger, db *sql.DB) *implPolicyRepository {
	return &implPolicyRepository{l: l, db: db}
}
