package repository

import (
	"time"

	"escalation-srv/internal/model"
	"escalation-srv/pkg/paginator"
)

// CreateConfigOptions contains options for creating a report config.
type CreateConfigOptions struct {
	Config model.ReportConfig
}

// UpdateConfigOptions contains options for updating a report config.
type UpdateConfigOptions struct {
	Config model.ReportConfig
}

// ListConfigsOptions contains filtering options for config listing.
type ListConfigsOptions struct {
	ActiveOnly bool
}

// MarkRunOptions advances the run bookkeeping of one config.
type MarkRunOptions struct {
	ID        string
	LastRunAt time.Time
	NextRunAt time.Time
}

// CreateRunOptions contains options for appending a run record.
type CreateRunOptions struct {
	Run model.RunRecord
}

// GetRunsOptions contains filtering options for paginated history listing.
type GetRunsOptions struct {
	ConfigID      string
	PaginateQuery paginator.PaginateQuery
}

// AlertFilter narrows an alert listing.
type AlertFilter struct {
	PeriodStart       *time.Time
	PeriodEnd         *time.Time
	AlertTypes        []string
	ProductionLineIDs []string
}

// ListAlertsOptions contains options for listing alerts.
type ListAlertsOptions struct {
	Filter AlertFilter
}
