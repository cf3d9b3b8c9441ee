package model

import "time"

// Severity classifies how serious an alert is.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// AlertStatus is the lifecycle state of an escalation alert.
// Resolved is terminal; no transition leaves it.
type AlertStatus string

const (
	AlertStatusPending   AlertStatus = "pending"
	AlertStatusEscalated AlertStatus = "escalated"
	AlertStatusResolved  AlertStatus = "resolved"
)

// EscalationAlert is a raised quality/maintenance alert. The alert store is
// append-mostly: this service only reads time ranges and writes escalation
// status updates.
type EscalationAlert struct {
	ID                 string
	AlertType          string
	Title              string
	Message            string
	Severity           Severity
	EscalationLevel    int
	Status             AlertStatus
	ProductionLineID   string
	ProductionLineName string
	MachineName        string
	MetricValue        *float64
	Threshold          *float64
	CreatedAt          time.Time
	ResolvedAt         *time.Time
	LastEscalatedAt    *time.Time
}

// IsResolved reports whether the alert reached its terminal state.
func (a EscalationAlert) IsResolved() bool {
	return a.Status == AlertStatusResolved
}

// ResolutionTime returns the time it took to resolve the alert. It is always
// derived from CreatedAt/ResolvedAt, never stored, so it cannot drift.
// The second return is false for unresolved alerts or alerts missing a
// resolution timestamp.
func (a EscalationAlert) ResolutionTime() (time.Duration, bool) {
	if a.Status != AlertStatusResolved || a.ResolvedAt == nil {
		return 0, false
	}
	return a.ResolvedAt.Sub(a.CreatedAt), true
}

// ResolutionMinutes returns the resolution time rounded to whole minutes.
func (a EscalationAlert) ResolutionMinutes() (int, bool) {
	d, ok := a.ResolutionTime()
	if !ok {
		return 0, false
	}
	return int(d.Round(time.Minute) / time.Minute), true
}
