package dispatch

import (
	"escalation-srv/internal/model"
	"escalation-srv/pkg/paginator"
)

// SendOutput reports one delivery attempt.
type SendOutput struct {
	Log     model.DeliveryLog
	Success bool
}

// BatchOutput summarizes a fan-out across several webhook configs.
type BatchOutput struct {
	Sent   int
	Failed int
	Errors []string
}

// RetryOutput summarizes one retry sweep.
type RetryOutput struct {
	Processed int
	Succeeded int
	Exhausted int
}

type CreateConfigInput struct {
	Name               string
	ChannelType        model.ChannelType
	WebhookURL         string
	SlackChannel       string
	SlackMentions      []string
	TeamsTitle         string
	CustomHeaders      map[string]string
	CustomBodyTemplate string
	IncludeDetails     bool
	IsActive           bool
}

type UpdateConfigInput struct {
	ID string
	CreateConfigInput
}

type ListConfigsInput struct {
	ActiveOnly  bool
	ChannelType model.ChannelType
}

type GetLogsInput struct {
	WebhookConfigID string
	RunID           string
	AlertID         string
	SuccessOnly     *bool
	PaginateQuery   paginator.PaginateQuery
}
