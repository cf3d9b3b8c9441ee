package postgres

import (
	"encoding/json"

	"github.com/aarondl/null/v8"
	"github.com/lib/pq"

	"escalation-srv/internal/model"
)

// webhookConfigRow mirrors the webhook_configs table for Bind.
type webhookConfigRow struct {
	ID                 string         `boil:"id"`
	Name               string         `boil:"name"`
	ChannelType        string         `boil:"channel_type"`
	WebhookURL         string         `boil:"webhook_url"`
	SlackChannel       null.String    `boil:"slack_channel"`
	SlackMentions      pq.StringArray `boil:"slack_mentions"`
	TeamsTitle         null.String    `boil:"teams_title"`
	CustomHeaders      null.JSON      `boil:"custom_headers"`
	CustomBodyTemplate null.String    `boil:"custom_body_template"`
	IncludeDetails     bool           `boil:"include_details"`
	IsActive           bool           `boil:"is_active"`
	CreatedAt          null.Time      `boil:"created_at"`
	UpdatedAt          null.Time      `boil:"updated_at"`
}

func (r webhookConfigRow) toModel() model.WebhookConfig {
	cfg := model.WebhookConfig{
		ID:                 r.ID,
		Name:               r.Name,
		ChannelType:        model.ChannelType(r.ChannelType),
		WebhookURL:         r.WebhookURL,
		SlackChannel:       r.SlackChannel.String,
		SlackMentions:      r.SlackMentions,
		TeamsTitle:         r.TeamsTitle.String,
		CustomBodyTemplate: r.CustomBodyTemplate.String,
		IncludeDetails:     r.IncludeDetails,
		IsActive:           r.IsActive,
		CreatedAt:          r.CreatedAt.Time,
		UpdatedAt:          r.UpdatedAt.Time,
	}
	if r.CustomHeaders.Valid {
		// Malformed header JSON is treated as no headers.
		_ = json.Unmarshal(r.CustomHeaders.JSON, &cfg.CustomHeaders)
	}
	return cfg
}

func marshalHeaders(headers map[string]string) null.JSON {
	if len(headers) == 0 {
		return null.JSON{}
	}
	b, err := json.Marshal(headers)
	if err != nil {
		return null.JSON{}
	}
	return null.JSONFrom(b)
}

// deliveryLogRow mirrors the delivery_logs table for Bind.
type deliveryLogRow struct {
	ID              string      `boil:"id"`
	WebhookConfigID null.String `boil:"webhook_config_id"`
	RunID           null.String `boil:"run_id"`
	AlertID         null.String `boil:"alert_id"`
	ChannelType     string      `boil:"channel_type"`
	Recipient       null.String `boil:"recipient"`
	AlertType       null.String `boil:"alert_type"`
	AlertTitle      null.String `boil:"alert_title"`
	EscalationLevel null.Int    `boil:"escalation_level"`
	RequestPayload  null.String `boil:"request_payload"`
	ResponseStatus  null.Int    `boil:"response_status"`
	ResponseBody    null.String `boil:"response_body"`
	Success         bool        `boil:"success"`
	ErrorMessage    null.String `boil:"error_message"`
	RetryCount      int         `boil:"retry_count"`
	MaxRetries      int         `boil:"max_retries"`
	NextRetryAt     null.Time   `boil:"next_retry_at"`
	LastRetryAt     null.Time   `boil:"last_retry_at"`
	RetryStatus     string      `boil:"retry_status"`
	SentAt          null.Time   `boil:"sent_at"`
}

func (r deliveryLogRow) toModel() model.DeliveryLog {
	entry := model.DeliveryLog{
		ID:              r.ID,
		RunID:           r.RunID.String,
		AlertID:         r.AlertID.String,
		ChannelType:     model.ChannelType(r.ChannelType),
		Recipient:       r.Recipient.String,
		AlertType:       r.AlertType.String,
		AlertTitle:      r.AlertTitle.String,
		EscalationLevel: r.EscalationLevel.Int,
		RequestPayload:  r.RequestPayload.String,
		ResponseBody:    r.ResponseBody.String,
		Success:         r.Success,
		ErrorMessage:    r.ErrorMessage.String,
		RetryCount:      r.RetryCount,
		MaxRetries:      r.MaxRetries,
		RetryStatus:     model.RetryStatus(r.RetryStatus),
		SentAt:          r.SentAt.Time,
	}
	if r.WebhookConfigID.Valid {
		id := r.WebhookConfigID.String
		entry.WebhookConfigID = &id
	}
	if r.ResponseStatus.Valid {
		status := r.ResponseStatus.Int
		entry.ResponseStatus = &status
	}
	if r.NextRetryAt.Valid {
		t := r.NextRetryAt.Time
		entry.NextRetryAt = &t
	}
	if r.LastRetryAt.Valid {
		t := r.LastRetryAt.Time
		entry.LastRetryAt = &t
	}
	return entry
}
