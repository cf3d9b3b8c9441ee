package report

import (
	"time"

	"escalation-srv/internal/model"
	"escalation-srv/pkg/paginator"
)

// Stats is the summary block of a report aggregate.
type Stats struct {
	TotalAlerts    int `json:"totalAlerts"`
	ResolvedAlerts int `json:"resolvedAlerts"`
	PendingAlerts  int `json:"pendingAlerts"`
	// AvgResolutionTimeMinutes is nil when no resolved alert in the period
	// carries a resolution timestamp. It is never reported as a false zero.
	AvgResolutionTimeMinutes *int `json:"avgResolutionTimeMinutes"`
}

type TypeCount struct {
	AlertType string `json:"alertType"`
	Count     int    `json:"count"`
}

type SeverityCount struct {
	Severity string `json:"severity"`
	Count    int    `json:"count"`
}

type LevelCount struct {
	Level int `json:"level"`
	Count int `json:"count"`
}

// TrendPoint is one calendar day of the trend series. Days with no alerts
// appear with zero counts.
type TrendPoint struct {
	Date           string `json:"date"` // "2006-01-02"
	TotalAlerts    int    `json:"totalAlerts"`
	ResolvedAlerts int    `json:"resolvedAlerts"`
}

// TopAlert is one unresolved alert selected for the report body.
type TopAlert struct {
	ID              string    `json:"id"`
	AlertType       string    `json:"alertType"`
	Title           string    `json:"title"`
	Severity        string    `json:"severity"`
	Status          string    `json:"status"`
	EscalationLevel int       `json:"escalationLevel"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ResolvedAlert is one recently resolved alert with its resolution time.
type ResolvedAlert struct {
	ID                    string    `json:"id"`
	AlertType             string    `json:"alertType"`
	Title                 string    `json:"title"`
	ResolvedAt            time.Time `json:"resolvedAt"`
	ResolutionTimeMinutes int       `json:"resolutionTimeMinutes"`
}

// ReportData is the full deterministic aggregate over one period.
type ReportData struct {
	PeriodStart time.Time `json:"periodStart"`
	PeriodEnd   time.Time `json:"periodEnd"`

	Stats       Stats           `json:"stats"`
	ByAlertType []TypeCount     `json:"byAlertType"`
	BySeverity  []SeverityCount `json:"bySeverity"`
	ByLevel     []LevelCount    `json:"byLevel"`
	Trends      []TrendPoint    `json:"trends"`

	TopAlerts      []TopAlert      `json:"topAlerts"`
	ResolvedAlerts []ResolvedAlert `json:"resolvedAlerts"`
}

// RunOutcome reports one report run.
type RunOutcome struct {
	ConfigID     string
	Status       model.RunStatus
	EmailsSent   int
	WebhooksSent int
	Errors       []string
}

// RunDueOutput summarizes one RunDue sweep.
type RunDueOutput struct {
	Due     int
	Sent    int
	Partial int
	Failed  int
	Skipped int
}

type PreviewInput struct {
	ConfigID string
	// Optional explicit period; when nil the config's trailing period is
	// used.
	PeriodStart *time.Time
	PeriodEnd   *time.Time
}

// ExportFormat selects the artifact type of an export.
type ExportFormat string

const (
	ExportFormatExcel ExportFormat = "excel"
	ExportFormatHTML  ExportFormat = "html"
)

type ExportInput struct {
	Format            ExportFormat
	PeriodStart       time.Time
	PeriodEnd         time.Time
	AlertTypes        []string
	ProductionLineIDs []string
}

type ExportOutput struct {
	Data        []byte
	ContentType string
	Filename    string
}

type CreateConfigInput struct {
	Name        string
	Description string

	Frequency  model.Frequency
	DayOfWeek  *int
	DayOfMonth *int
	TimeOfDay  string
	Timezone   string

	IncludeStats          bool
	IncludeTopAlerts      bool
	IncludeResolvedAlerts bool
	IncludeTrends         bool

	EmailRecipients  []string
	WebhookConfigIDs []string

	AlertTypes        []string
	ProductionLineIDs []string

	IsActive bool
}

type UpdateConfigInput struct {
	ID string
	CreateConfigInput
}

type ListConfigsInput struct {
	ActiveOnly bool
}

type GetHistoryInput struct {
	ConfigID      string
	PaginateQuery paginator.PaginateQuery
}
