package http

import (
	"time"

	"escalation-srv/internal/dispatch"
	"escalation-srv/internal/model"
	"escalation-srv/pkg/paginator"
)

type webhookConfigReq struct {
	Name               string            `json:"name" binding:"required"`
	ChannelType        string            `json:"channelType" binding:"required"`
	WebhookURL         string            `json:"webhookUrl" binding:"required"`
	SlackChannel       string            `json:"slackChannel"`
	SlackMentions      []string          `json:"slackMentions"`
	TeamsTitle         string            `json:"teamsTitle"`
	CustomHeaders      map[string]string `json:"customHeaders"`
	CustomBodyTemplate string            `json:"customBodyTemplate"`
	IncludeDetails     bool              `json:"includeDetails"`
	IsActive           bool              `json:"isActive"`
}

func (req webhookConfigReq) toInput() dispatch.CreateConfigInput {
	return dispatch.CreateConfigInput{
		Name:               req.Name,
		ChannelType:        model.ChannelType(req.ChannelType),
		WebhookURL:         req.WebhookURL,
		SlackChannel:       req.SlackChannel,
		SlackMentions:      req.SlackMentions,
		TeamsTitle:         req.TeamsTitle,
		CustomHeaders:      req.CustomHeaders,
		CustomBodyTemplate: req.CustomBodyTemplate,
		IncludeDetails:     req.IncludeDetails,
		IsActive:           req.IsActive,
	}
}

type webhookConfigResp struct {
	ID                 string            `json:"id"`
	Name               string            `json:"name"`
	ChannelType        string            `json:"channelType"`
	WebhookURL         string            `json:"webhookUrl"`
	SlackChannel       string            `json:"slackChannel,omitempty"`
	SlackMentions      []string          `json:"slackMentions,omitempty"`
	TeamsTitle         string            `json:"teamsTitle,omitempty"`
	CustomHeaders      map[string]string `json:"customHeaders,omitempty"`
	CustomBodyTemplate string            `json:"customBodyTemplate,omitempty"`
	IncludeDetails     bool              `json:"includeDetails"`
	IsActive           bool              `json:"isActive"`
	CreatedAt          time.Time         `json:"createdAt"`
	UpdatedAt          time.Time         `json:"updatedAt"`
}

func newWebhookConfigResp(cfg model.WebhookConfig) webhookConfigResp {
	return webhookConfigResp{
		ID:                 cfg.ID,
		Name:               cfg.Name,
		ChannelType:        string(cfg.ChannelType),
		WebhookURL:         cfg.WebhookURL,
		SlackChannel:       cfg.SlackChannel,
		SlackMentions:      cfg.SlackMentions,
		TeamsTitle:         cfg.TeamsTitle,
		CustomHeaders:      cfg.CustomHeaders,
		CustomBodyTemplate: cfg.CustomBodyTemplate,
		IncludeDetails:     cfg.IncludeDetails,
		IsActive:           cfg.IsActive,
		CreatedAt:          cfg.CreatedAt,
		UpdatedAt:          cfg.UpdatedAt,
	}
}

func newWebhookConfigListResp(cfgs []model.WebhookConfig) []webhookConfigResp {
	res := make([]webhookConfigResp, len(cfgs))
	for i, cfg := range cfgs {
		res[i] = newWebhookConfigResp(cfg)
	}
	return res
}

type testChannelResp struct {
	Success        bool   `json:"success"`
	ResponseStatus *int   `json:"responseStatus,omitempty"`
	ErrorMessage   string `json:"errorMessage,omitempty"`
	DeliveryLogID  string `json:"deliveryLogId"`
}

type deliveryLogResp struct {
	ID              string     `json:"id"`
	WebhookConfigID *string    `json:"webhookConfigId,omitempty"`
	RunID           string     `json:"runId,omitempty"`
	AlertID         string     `json:"alertId,omitempty"`
	ChannelType     string     `json:"channelType"`
	Recipient       string     `json:"recipient,omitempty"`
	AlertType       string     `json:"alertType,omitempty"`
	AlertTitle      string     `json:"alertTitle,omitempty"`
	EscalationLevel int        `json:"escalationLevel,omitempty"`
	ResponseStatus  *int       `json:"responseStatus,omitempty"`
	Success         bool       `json:"success"`
	ErrorMessage    string     `json:"errorMessage,omitempty"`
	RetryCount      int        `json:"retryCount"`
	MaxRetries      int        `json:"maxRetries"`
	NextRetryAt     *time.Time `json:"nextRetryAt,omitempty"`
	LastRetryAt     *time.Time `json:"lastRetryAt,omitempty"`
	RetryStatus     string     `json:"retryStatus"`
	SentAt          time.Time  `json:"sentAt"`
}

type getLogsResp struct {
	Items []deliveryLogResp           `json:"items"`
	Meta  paginator.PaginatorResponse `json:"meta"`
}

func newGetLogsResp(logs []model.DeliveryLog, pag paginator.Paginator) getLogsResp {
	items := make([]deliveryLogResp, len(logs))
	for i, entry := range logs {
		items[i] = deliveryLogResp{
			ID:              entry.ID,
			WebhookConfigID: entry.WebhookConfigID,
			RunID:           entry.RunID,
			AlertID:         entry.AlertID,
			ChannelType:     string(entry.ChannelType),
			Recipient:       entry.Recipient,
			AlertType:       entry.AlertType,
			AlertTitle:      entry.AlertTitle,
			EscalationLevel: entry.EscalationLevel,
			ResponseStatus:  entry.ResponseStatus,
			Success:         entry.Success,
			ErrorMessage:    entry.ErrorMessage,
			RetryCount:      entry.RetryCount,
			MaxRetries:      entry.MaxRetries,
			NextRetryAt:     entry.NextRetryAt,
			LastRetryAt:     entry.LastRetryAt,
			RetryStatus:     string(entry.RetryStatus),
			SentAt:          entry.SentAt,
		}
	}
	return getLogsResp{Items: items, Meta: pag.ToResponse()}
}
