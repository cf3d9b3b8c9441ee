package http

import (
	"time"

	"escalation-srv/internal/model"
	"escalation-srv/internal/report"
	"escalation-srv/pkg/paginator"
)

type reportConfigReq struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`

	Frequency  string `json:"frequency" binding:"required"`
	DayOfWeek  *int   `json:"dayOfWeek"`
	DayOfMonth *int   `json:"dayOfMonth"`
	TimeOfDay  string `json:"timeOfDay" binding:"required"`
	Timezone   string `json:"timezone"`

	IncludeStats          bool `json:"includeStats"`
	IncludeTopAlerts      bool `json:"includeTopAlerts"`
	IncludeResolvedAlerts bool `json:"includeResolvedAlerts"`
	IncludeTrends         bool `json:"includeTrends"`

	EmailRecipients  []string `json:"emailRecipients"`
	WebhookConfigIDs []string `json:"webhookConfigIds"`

	AlertTypes        []string `json:"alertTypes"`
	ProductionLineIDs []string `json:"productionLineIds"`

	IsActive bool `json:"isActive"`
}

func (req reportConfigReq) toInput() report.CreateConfigInput {
	return report.CreateConfigInput{
		Name:                  req.Name,
		Description:           req.Description,
		Frequency:             model.Frequency(req.Frequency),
		DayOfWeek:             req.DayOfWeek,
		DayOfMonth:            req.DayOfMonth,
		TimeOfDay:             req.TimeOfDay,
		Timezone:              req.Timezone,
		IncludeStats:          req.IncludeStats,
		IncludeTopAlerts:      req.IncludeTopAlerts,
		IncludeResolvedAlerts: req.IncludeResolvedAlerts,
		IncludeTrends:         req.IncludeTrends,
		EmailRecipients:       req.EmailRecipients,
		WebhookConfigIDs:      req.WebhookConfigIDs,
		AlertTypes:            req.AlertTypes,
		ProductionLineIDs:     req.ProductionLineIDs,
		IsActive:              req.IsActive,
	}
}

type reportConfigResp struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	Frequency  string `json:"frequency"`
	DayOfWeek  *int   `json:"dayOfWeek,omitempty"`
	DayOfMonth *int   `json:"dayOfMonth,omitempty"`
	TimeOfDay  string `json:"timeOfDay"`
	Timezone   string `json:"timezone,omitempty"`

	IncludeStats          bool `json:"includeStats"`
	IncludeTopAlerts      bool `json:"includeTopAlerts"`
	IncludeResolvedAlerts bool `json:"includeResolvedAlerts"`
	IncludeTrends         bool `json:"includeTrends"`

	EmailRecipients  []string `json:"emailRecipients,omitempty"`
	WebhookConfigIDs []string `json:"webhookConfigIds,omitempty"`

	AlertTypes        []string `json:"alertTypes,omitempty"`
	ProductionLineIDs []string `json:"productionLineIds,omitempty"`

	IsActive  bool       `json:"isActive"`
	LastRunAt *time.Time `json:"lastRunAt,omitempty"`
	NextRunAt *time.Time `json:"nextRunAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func newReportConfigResp(cfg model.ReportConfig) reportConfigResp {
	return reportConfigResp{
		ID:                    cfg.ID,
		Name:                  cfg.Name,
		Description:           cfg.Description,
		Frequency:             string(cfg.Frequency),
		DayOfWeek:             cfg.DayOfWeek,
		DayOfMonth:            cfg.DayOfMonth,
		TimeOfDay:             cfg.TimeOfDay,
		Timezone:              cfg.Timezone,
		IncludeStats:          cfg.IncludeStats,
		IncludeTopAlerts:      cfg.IncludeTopAlerts,
		IncludeResolvedAlerts: cfg.IncludeResolvedAlerts,
		IncludeTrends:         cfg.IncludeTrends,
		EmailRecipients:       cfg.EmailRecipients,
		WebhookConfigIDs:      cfg.WebhookConfigIDs,
		AlertTypes:            cfg.AlertTypes,
		ProductionLineIDs:     cfg.ProductionLineIDs,
		IsActive:              cfg.IsActive,
		LastRunAt:             cfg.LastRunAt,
		NextRunAt:             cfg.NextRunAt,
		CreatedAt:             cfg.CreatedAt,
		UpdatedAt:             cfg.UpdatedAt,
	}
}

func newReportConfigListResp(cfgs []model.ReportConfig) []reportConfigResp {
	res := make([]reportConfigResp, len(cfgs))
	for i, cfg := range cfgs {
		res[i] = newReportConfigResp(cfg)
	}
	return res
}

type runOutcomeResp struct {
	ConfigID     string   `json:"configId"`
	Status       string   `json:"status"`
	EmailsSent   int      `json:"emailsSent"`
	WebhooksSent int      `json:"webhooksSent"`
	Errors       []string `json:"errors,omitempty"`
}

func newRunOutcomeResp(out report.RunOutcome) runOutcomeResp {
	return runOutcomeResp{
		ConfigID:     out.ConfigID,
		Status:       string(out.Status),
		EmailsSent:   out.EmailsSent,
		WebhooksSent: out.WebhooksSent,
		Errors:       out.Errors,
	}
}

type runRecordResp struct {
	ID       string `json:"id"`
	ConfigID string `json:"configId"`

	PeriodStart time.Time `json:"periodStart"`
	PeriodEnd   time.Time `json:"periodEnd"`

	TotalAlerts              int  `json:"totalAlerts"`
	ResolvedAlerts           int  `json:"resolvedAlerts"`
	PendingAlerts            int  `json:"pendingAlerts"`
	AvgResolutionTimeMinutes *int `json:"avgResolutionTimeMinutes,omitempty"`

	EmailsSent   int `json:"emailsSent"`
	WebhooksSent int `json:"webhooksSent"`

	Status       string    `json:"status"`
	ErrorMessage string    `json:"errorMessage,omitempty"`
	SentAt       time.Time `json:"sentAt"`
}

type getHistoryResp struct {
	Items []runRecordResp             `json:"items"`
	Meta  paginator.PaginatorResponse `json:"meta"`
}

func newGetHistoryResp(runs []model.RunRecord, pag paginator.Paginator) getHistoryResp {
	items := make([]runRecordResp, len(runs))
	for i, run := range runs {
		items[i] = runRecordResp{
			ID:                       run.ID,
			ConfigID:                 run.ConfigID,
			PeriodStart:              run.PeriodStart,
			PeriodEnd:                run.PeriodEnd,
			TotalAlerts:              run.TotalAlerts,
			ResolvedAlerts:           run.ResolvedAlerts,
			PendingAlerts:            run.PendingAlerts,
			AvgResolutionTimeMinutes: run.AvgResolutionTimeMinutes,
			EmailsSent:               run.EmailsSent,
			WebhooksSent:             run.WebhooksSent,
			Status:                   string(run.Status),
			ErrorMessage:             run.ErrorMessage,
			SentAt:                   run.SentAt,
		}
	}
	return getHistoryResp{Items: items, Meta: pag.ToResponse()}
}
