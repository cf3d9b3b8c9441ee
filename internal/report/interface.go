package report

import (
	"context"
	"time"

	"escalation-srv/internal/model"
	"escalation-srv/pkg/paginator"
)

//go:generate mockery --name UseCase
type UseCase interface {
	// Preview builds the report aggregate for a config without sending
	// anything or touching history.
	Preview(ctx context.Context, ip PreviewInput) (ReportData, error)

	// SendNow runs the config immediately through the same path a scheduled
	// run takes: deliveries, one history row, NextRunAt advanced.
	SendNow(ctx context.Context, configID string) (RunOutcome, error)

	// RunDue claims and runs every active config whose NextRunAt has
	// passed. Configs are run at most once per due time even under
	// concurrent RunDue calls.
	RunDue(ctx context.Context, now time.Time) (RunDueOutput, error)

	// Export renders an on-demand report artifact for an arbitrary period.
	Export(ctx context.Context, ip ExportInput) (ExportOutput, error)

	CreateConfig(ctx context.Context, ip CreateConfigInput) (model.ReportConfig, error)
	UpdateConfig(ctx context.Context, ip UpdateConfigInput) (model.ReportConfig, error)
	DeleteConfig(ctx context.Context, id string) error
	DetailConfig(ctx context.Context, id string) (model.ReportConfig, error)
	ListConfigs(ctx context.Context, ip ListConfigsInput) ([]model.ReportConfig, error)

	GetHistory(ctx context.Context, ip GetHistoryInput) ([]model.RunRecord, paginator.Paginator, error)
}
