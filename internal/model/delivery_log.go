package model

import "time"

// RetryStatus is the retry-chain state of a delivery log entry.
//
//	none: no retry scheduled (first attempt succeeded, or channel does not retry)
//	pending: a reattempt is scheduled at NextRetryAt
//	exhausted: RetryCount reached MaxRetries, no further attempts
type RetryStatus string

const (
	RetryStatusNone      RetryStatus = "none"
	RetryStatusPending   RetryStatus = "pending"
	RetryStatusExhausted RetryStatus = "exhausted"
)

// DefaultMaxRetries is the retry budget for webhook deliveries.
const DefaultMaxRetries = 5

// Non-webhook channel types, recorded in delivery logs only. These are not
// valid WebhookConfig channel types.
const (
	ChannelEmail ChannelType = "email"
	ChannelSMS   ChannelType = "sms"
	ChannelPush  ChannelType = "push"
)

// DeliveryLog records one delivery attempt through one channel. Every
// attempt, success or failure, is persisted before control returns to the
// caller. Entries are append-only apart from retry bookkeeping.
type DeliveryLog struct {
	ID string

	// WebhookConfigID is nil for email/SMS/push deliveries.
	WebhookConfigID *string
	// RunID links report deliveries to their RunRecord; AlertID links
	// alert notifications to the alert. Either may be empty.
	RunID   string
	AlertID string

	ChannelType     ChannelType
	Recipient       string
	AlertType       string
	AlertTitle      string
	EscalationLevel int

	// RequestPayload keeps the rendered body for audit.
	RequestPayload string
	ResponseStatus *int
	ResponseBody   string
	Success        bool
	ErrorMessage   string

	RetryCount  int
	MaxRetries  int
	NextRetryAt *time.Time
	LastRetryAt *time.Time
	RetryStatus RetryStatus

	SentAt time.Time
}

// RetryExhausted reports whether the retry chain is terminated.
func (d DeliveryLog) RetryExhausted() bool {
	return d.RetryStatus == RetryStatusExhausted
}
