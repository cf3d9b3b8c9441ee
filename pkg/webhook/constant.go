package webhook

import "time"

const (
	// DefaultTimeout bounds one webhook POST end to end.
	DefaultTimeout = 10 * time.Second

	DefaultUserAgent = "SPC-Alert-Bot/1.0"

	// maxResponseBody caps how much of the upstream body is retained for
	// delivery logs.
	maxResponseBody = 4096
)
