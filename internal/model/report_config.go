package model

import "time"

// Frequency is how often a recurring report runs.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// IsValidFrequency reports whether f is a known recurrence frequency.
func IsValidFrequency(f Frequency) bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}

// ReportConfig describes one recurring escalation report: when it runs, what
// it contains and who receives it.
//
// NextRunAt is recomputed after every run and after any edit to the
// recurrence fields; once computed it is always strictly in the future
// relative to the moment of computation.
type ReportConfig struct {
	ID          string
	Name        string
	Description string

	// Recurrence
	Frequency  Frequency
	DayOfWeek  *int   // 0-6, only when weekly
	DayOfMonth *int   // 1-31, only when monthly
	TimeOfDay  string // "HH:MM"
	Timezone   string // IANA zone name

	// Content toggles
	IncludeStats          bool
	IncludeTopAlerts      bool
	IncludeResolvedAlerts bool
	IncludeTrends         bool

	// Delivery targets
	EmailRecipients  []string
	WebhookConfigIDs []string

	// Filters (empty = no filter)
	AlertTypes        []string
	ProductionLineIDs []string

	IsActive  bool
	LastRunAt *time.Time
	NextRunAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasRecipients reports whether the config has at least one delivery target.
func (c ReportConfig) HasRecipients() bool {
	return len(c.EmailRecipients) > 0 || len(c.WebhookConfigIDs) > 0
}
