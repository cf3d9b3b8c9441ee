package repository

import (
	"time"

	"escalation-srv/internal/model"
	"escalation-srv/pkg/paginator"
)

// CreateConfigOptions contains options for creating a webhook config.
type CreateConfigOptions struct {
	Config model.WebhookConfig
}

// UpdateConfigOptions contains options for updating a webhook config.
type UpdateConfigOptions struct {
	Config model.WebhookConfig
}

// ListConfigsOptions contains filtering options for webhook config listing.
type ListConfigsOptions struct {
	IDs         []string
	ActiveOnly  bool
	ChannelType model.ChannelType
}

// CreateLogOptions contains options for appending a delivery log.
type CreateLogOptions struct {
	Log model.DeliveryLog
}

// UpdateRetryOptions rewrites the retry fields of one delivery log.
type UpdateRetryOptions struct {
	ID          string
	Success     bool
	RetryCount  int
	RetryStatus model.RetryStatus
	NextRetryAt *time.Time
	LastRetryAt time.Time
	// Response of the retried attempt, for the log row.
	ResponseStatus *int
	ErrorMessage   string
}

// GetLogsOptions contains filtering options for paginated log listing.
type GetLogsOptions struct {
	WebhookConfigID string
	RunID           string
	AlertID         string
	SuccessOnly     *bool
	PaginateQuery   paginator.PaginateQuery
}
