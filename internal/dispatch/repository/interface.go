package repository

import (
	"context"
	"time"

	"escalation-srv/internal/model"
	"escalation-srv/pkg/paginator"
)

//go:generate mockery --name WebhookConfigRepository
type WebhookConfigRepository interface {
	Create(ctx context.Context, opts CreateConfigOptions) (model.WebhookConfig, error)
	Update(ctx context.Context, opts UpdateConfigOptions) (model.WebhookConfig, error)
	Delete(ctx context.Context, id string) error
	Detail(ctx context.Context, id string) (model.WebhookConfig, error)
	List(ctx context.Context, opts ListConfigsOptions) ([]model.WebhookConfig, error)
}

//go:generate mockery --name DeliveryLogRepository
type DeliveryLogRepository interface {
	Create(ctx context.Context, opts CreateLogOptions) (model.DeliveryLog, error)
	// UpdateRetry rewrites the retry bookkeeping fields of one log entry.
	UpdateRetry(ctx context.Context, opts UpdateRetryOptions) error
	// ListDue returns pending entries whose NextRetryAt is at or before now.
	ListDue(ctx context.Context, now time.Time) ([]model.DeliveryLog, error)
	Get(ctx context.Context, opts GetLogsOptions) ([]model.DeliveryLog, paginator.Paginator, error)
}
