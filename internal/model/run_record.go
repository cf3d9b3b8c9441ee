package model

import "time"

// RunStatus classifies the overall delivery outcome of one report run.
//
//	sent: every attempted delivery succeeded
//	partial: at least one succeeded and at least one failed
//	failed: none succeeded and at least one was attempted
type RunStatus string

const (
	RunStatusSent    RunStatus = "sent"
	RunStatusPartial RunStatus = "partial"
	RunStatusFailed  RunStatus = "failed"
)

// ClassifyRun derives the run status from per-target delivery counts.
func ClassifyRun(succeeded, failed int) RunStatus {
	switch {
	case failed == 0:
		return RunStatusSent
	case succeeded > 0:
		return RunStatusPartial
	default:
		return RunStatusFailed
	}
}

// RunRecord is the append-only history row written after each report run.
// The stats snapshot is frozen at send time and never recomputed. Rows keep
// their ConfigID even after the config is deleted.
type RunRecord struct {
	ID       string
	ConfigID string

	PeriodStart time.Time
	PeriodEnd   time.Time

	TotalAlerts              int
	ResolvedAlerts           int
	PendingAlerts            int
	AvgResolutionTimeMinutes *int

	EmailsSent   int
	WebhooksSent int

	Status       RunStatus
	ErrorMessage string

	// ReportData is the full aggregate serialized as JSON for audit.
	ReportData string

	SentAt    time.Time
	CreatedAt time.Time
}
