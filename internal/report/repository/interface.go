package repository

import (
	"context"
	"time"

	"escalation-srv/internal/model"
	"escalation-srv/pkg/paginator"
)

//go:generate mockery --name ConfigRepository
type ConfigRepository interface {
	Create(ctx context.Context, opts CreateConfigOptions) (model.ReportConfig, error)
	Update(ctx context.Context, opts UpdateConfigOptions) (model.ReportConfig, error)
	Delete(ctx context.Context, id string) error
	Detail(ctx context.Context, id string) (model.ReportConfig, error)
	List(ctx context.Context, opts ListConfigsOptions) ([]model.ReportConfig, error)
	// ListDue returns active configs with NextRunAt at or before now.
	ListDue(ctx context.Context, now time.Time) ([]model.ReportConfig, error)
	// MarkRun advances the run bookkeeping after a run finishes, whatever
	// its outcome.
	MarkRun(ctx context.Context, opts MarkRunOptions) error
}

//go:generate mockery --name HistoryRepository
type HistoryRepository interface {
	Create(ctx context.Context, opts CreateRunOptions) (model.RunRecord, error)
	Get(ctx context.Context, opts GetRunsOptions) ([]model.RunRecord, paginator.Paginator, error)
}

// AlertRepository reads the escalation alert store this service reports
// over. Writes stay with the escalation processor.
//
//go:generate mockery --name AlertRepository
type AlertRepository interface {
	List(ctx context.Context, opts ListAlertsOptions) ([]model.EscalationAlert, error)
}
