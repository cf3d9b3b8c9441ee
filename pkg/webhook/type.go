package webhook

import (
	"net/http"
	"time"

	"escalation-srv/pkg/log"
)

type Config struct {
	Timeout   time.Duration
	UserAgent string
}

// Request is one outbound webhook delivery.
type Request struct {
	URL     string
	Body    []byte
	Headers map[string]string
}

// Result is the upstream response, kept for delivery bookkeeping.
type Result struct {
	StatusCode int
	Body       string
	Success    bool
}

type implSender struct {
	l      log.Logger
	config Config
	client *http.Client
}
