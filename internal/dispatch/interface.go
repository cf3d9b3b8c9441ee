package dispatch

import (
	"context"
	"time"

	"escalation-srv/internal/channel"
	"escalation-srv/internal/model"
	"escalation-srv/pkg/paginator"
)

//go:generate mockery --name UseCase
type UseCase interface {
	// Send delivers one notification to a single webhook config and records
	// the delivery log before returning. The returned output reports the
	// upstream outcome; the error covers lookup and bookkeeping failures.
	Send(ctx context.Context, webhookConfigID string, note channel.Notification) (SendOutput, error)

	// SendToMany fans the notification out to every listed config
	// concurrently. One failed target never blocks the others.
	SendToMany(ctx context.Context, webhookConfigIDs []string, note channel.Notification) BatchOutput

	// TestChannel sends a synthetic alert through the config. Only the
	// delivery log is touched.
	TestChannel(ctx context.Context, webhookConfigID string) (SendOutput, error)

	// ProcessRetries re-attempts every pending delivery whose NextRetryAt
	// has passed.
	ProcessRetries(ctx context.Context, now time.Time) (RetryOutput, error)

	CreateConfig(ctx context.Context, ip CreateConfigInput) (model.WebhookConfig, error)
	UpdateConfig(ctx context.Context, ip UpdateConfigInput) (model.WebhookConfig, error)
	DeleteConfig(ctx context.Context, id string) error
	DetailConfig(ctx context.Context, id string) (model.WebhookConfig, error)
	ListConfigs(ctx context.Context, ip ListConfigsInput) ([]model.WebhookConfig, error)

	GetDeliveryLogs(ctx context.Context, ip GetLogsInput) ([]model.DeliveryLog, paginator.Paginator, error)
}
