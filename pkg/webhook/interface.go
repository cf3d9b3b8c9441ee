package webhook

import "context"

type Sender interface {
	// Send posts the prerendered JSON body to the webhook endpoint and
	// returns the upstream response. A non-2xx status is reported through
	// Result, not through the error: the error covers transport failures
	// only (DNS, dial, timeout).
	Send(ctx context.Context, req Request) (Result, error)
	Close() error
}
