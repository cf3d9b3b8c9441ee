package postgres

import (
	"github.com/aarondl/null/v8"
	"github.com/lib/pq"

	"escalation-srv/internal/model"
)

// reportConfigRow mirrors the report_configs table for Bind.
type reportConfigRow struct {
	ID          string      `boil:"id"`
	Name        string      `boil:"name"`
	Description null.String `boil:"description"`

	Frequency  string      `boil:"frequency"`
	DayOfWeek  null.Int    `boil:"day_of_week"`
	DayOfMonth null.Int    `boil:"day_of_month"`
	TimeOfDay  string      `boil:"time_of_day"`
	Timezone   null.String `boil:"timezone"`

	IncludeStats          bool `boil:"include_stats"`
	IncludeTopAlerts      bool `boil:"include_top_alerts"`
	IncludeResolvedAlerts bool `boil:"include_resolved_alerts"`
	IncludeTrends         bool `boil:"include_trends"`

	EmailRecipients   pq.StringArray `boil:"email_recipients"`
	WebhookConfigIDs  pq.StringArray `boil:"webhook_config_ids"`
	AlertTypes        pq.StringArray `boil:"alert_types"`
	ProductionLineIDs pq.StringArray `boil:"production_line_ids"`

	IsActive  bool      `boil:"is_active"`
	LastRunAt null.Time `boil:"last_run_at"`
	NextRunAt null.Time `boil:"next_run_at"`
	CreatedAt null.Time `boil:"created_at"`
	UpdatedAt null.Time `boil:"updated_at"`
}

func (r reportConfigRow) toModel() model.ReportConfig {
	cfg := model.ReportConfig{
		ID:                    r.ID,
		Name:                  r.Name,
		Description:           r.Description.String,
		Frequency:             model.Frequency(r.Frequency),
		TimeOfDay:             r.TimeOfDay,
		Timezone:              r.Timezone.String,
		IncludeStats:          r.IncludeStats,
		IncludeTopAlerts:      r.IncludeTopAlerts,
		IncludeResolvedAlerts: r.IncludeResolvedAlerts,
		IncludeTrends:         r.IncludeTrends,
		EmailRecipients:       r.EmailRecipients,
		WebhookConfigIDs:      r.WebhookConfigIDs,
		AlertTypes:            r.AlertTypes,
		ProductionLineIDs:     r.ProductionLineIDs,
		IsActive:              r.IsActive,
		CreatedAt:             r.CreatedAt.Time,
		UpdatedAt:             r.UpdatedAt.Time,
	}
	if r.DayOfWeek.Valid {
		d := r.DayOfWeek.Int
		cfg.DayOfWeek = &d
	}
	if r.DayOfMonth.Valid {
		d := r.DayOfMonth.Int
		cfg.DayOfMonth = &d
	}
	if r.LastRunAt.Valid {
		t := r.LastRunAt.Time
		cfg.LastRunAt = &t
	}
	if r.NextRunAt.Valid {
		t := r.NextRunAt.Time
		cfg.NextRunAt = &t
	}
	return cfg
}

// runRecordRow mirrors the report_history table for Bind.
type runRecordRow struct {
	ID       string `boil:"id"`
	ConfigID string `boil:"config_id"`

	PeriodStart null.Time `boil:"period_start"`
	PeriodEnd   null.Time `boil:"period_end"`

	TotalAlerts              int      `boil:"total_alerts"`
	ResolvedAlerts           int      `boil:"resolved_alerts"`
	PendingAlerts            int      `boil:"pending_alerts"`
	AvgResolutionTimeMinutes null.Int `boil:"avg_resolution_time_minutes"`

	EmailsSent   int `boil:"emails_sent"`
	WebhooksSent int `boil:"webhooks_sent"`

	Status       string      `boil:"status"`
	ErrorMessage null.String `boil:"error_message"`
	ReportData   null.String `boil:"report_data"`

	SentAt    null.Time `boil:"sent_at"`
	CreatedAt null.Time `boil:"created_at"`
}

func (r runRecordRow) toModel() model.RunRecord {
	run := model.RunRecord{
		ID:             r.ID,
		ConfigID:       r.ConfigID,
		PeriodStart:    r.PeriodStart.Time,
		PeriodEnd:      r.PeriodEnd.Time,
		TotalAlerts:    r.TotalAlerts,
		ResolvedAlerts: r.ResolvedAlerts,
		PendingAlerts:  r.PendingAlerts,
		EmailsSent:     r.EmailsSent,
		WebhooksSent:   r.WebhooksSent,
		Status:         model.RunStatus(r.Status),
		ErrorMessage:   r.ErrorMessage.String,
		ReportData:     r.ReportData.String,
		SentAt:         r.SentAt.Time,
		CreatedAt:      r.CreatedAt.Time,
	}
	if r.AvgResolutionTimeMinutes.Valid {
		m := r.AvgResolutionTimeMinutes.Int
		run.AvgResolutionTimeMinutes = &m
	}
	return run
}

// escalationAlertRow mirrors the escalation_alerts table for Bind.
type escalationAlertRow struct {
	ID                 string       `boil:"id"`
	AlertType          string       `boil:"alert_type"`
	Title              string       `boil:"title"`
	Message            null.String  `boil:"message"`
	Severity           string       `boil:"severity"`
	EscalationLevel    int          `boil:"escalation_level"`
	Status             string       `boil:"status"`
	ProductionLineID   null.String  `boil:"production_line_id"`
	ProductionLineName null.String  `boil:"production_line_name"`
	MachineName        null.String  `boil:"machine_name"`
	MetricValue        null.Float64 `boil:"metric_value"`
	Threshold          null.Float64 `boil:"threshold"`
	CreatedAt          null.Time    `boil:"created_at"`
	ResolvedAt         null.Time    `boil:"resolved_at"`
	LastEscalatedAt    null.Time    `boil:"last_escalated_at"`
}

func (r escalationAlertRow) toModel() model.EscalationAlert {
	alert := model.EscalationAlert{
		ID:                 r.ID,
		AlertType:          r.AlertType,
		Title:              r.Title,
		Message:            r.Message.String,
		Severity:           model.Severity(r.Severity),
		EscalationLevel:    r.EscalationLevel,
		Status:             model.AlertStatus(r.Status),
		ProductionLineID:   r.ProductionLineID.String,
		ProductionLineName: r.ProductionLineName.String,
		MachineName:        r.MachineName.String,
		CreatedAt:          r.CreatedAt.Time,
	}
	if r.MetricValue.Valid {
		v := r.MetricValue.Float64
		alert.MetricValue = &v
	}
	if r.Threshold.Valid {
		v := r.Threshold.Float64
		alert.Threshold = &v
	}
	if r.ResolvedAt.Valid {
		t := r.ResolvedAt.Time
		alert.ResolvedAt = &t
	}
	if r.LastEscalatedAt.Valid {
		t := r.LastEscalatedAt.Time
		alert.LastEscalatedAt = &t
	}
	return alert
}
