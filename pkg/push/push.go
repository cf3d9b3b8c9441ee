// Package push delivers mobile push notifications through FCM topics.
package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/friendsofgo/errors"

	"escalation-srv/pkg/log"
)

const (
	sendURL = "https://fcm.googleapis.com/fcm/send"

	defaultTimeout = 10 * time.Second
)

// New builds an FCM-backed Sender.
func New(l log.Logger, cfg Config) (Sender, error) {
	if cfg.ServerKey == "" {
		return nil, errNotConfigured
	}
	return &implSender{
		l:      l,
		config: cfg,
		client: &http.Client{Timeout: defaultTimeout},
	}, nil
}

func (s *implSender) SendToTopic(ctx context.Context, topic string, msg Message) error {
	payload := fcmPayload{
		To: fmt.Sprintf("/topics/%s", topic),
		Notification: fcmNotification{
			Title: msg.Title,
			Body:  msg.Body,
		},
		Data: msg.Data,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "failed to marshal payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sendURL, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Authorization", "key="+s.config.ServerKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to send request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.l.Errorf(ctx, "pkg.push.SendToTopic: fcm returned status %d", resp.StatusCode)
		return errors.Errorf("fcm returned status %d", resp.StatusCode)
	}

	return nil
}
