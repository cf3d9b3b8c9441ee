// Package sms sends text messages through the Twilio REST API.
package sms

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/friendsofgo/errors"

	"escalation-srv/pkg/log"
)

const (
	messagesURLTemplate = "https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json"

	defaultTimeout = 10 * time.Second
)

// New builds a Twilio-backed Sender.
func New(l log.Logger, cfg Config) (Sender, error) {
	if cfg.AccountSID == "" || cfg.AuthToken == "" || cfg.FromNumber == "" {
		return nil, errNotConfigured
	}
	return &implSender{
		l:      l,
		config: cfg,
		client: &http.Client{Timeout: defaultTimeout},
	}, nil
}

func (s *implSender) Send(ctx context.Context, to, body string) error {
	form := url.Values{}
	form.Set("To", to)
	form.Set("From", s.config.FromNumber)
	form.Set("Body", body)

	endpoint := fmt.Sprintf(messagesURLTemplate, s.config.AccountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}
	req.SetBasicAuth(s.config.AccountSID, s.config.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to send request")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		s.l.Errorf(ctx, "pkg.sms.Send: twilio returned status %d: %s", resp.StatusCode, string(respBody))
		return errors.Errorf("twilio returned status %d", resp.StatusCode)
	}

	return nil
}
