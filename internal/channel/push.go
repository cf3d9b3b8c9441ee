package channel

import (
	"fmt"
	"strconv"
	"time"
)

// PushMessage is the channel-neutral mobile push payload handed to the push
// transport.
type PushMessage struct {
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data"`
}

// RenderPush builds the mobile push payload for an alert notification.
func RenderPush(n Notification) PushMessage {
	return PushMessage{
		Title: fmt.Sprintf("%s %s", severityEmoji(n.Severity), levelTitle(n)),
		Body:  messageOrDefault(n),
		Data: map[string]string{
			"alertId":         n.AlertID,
			"alertType":       n.AlertType,
			"severity":        string(n.Severity),
			"escalationLevel": strconv.Itoa(n.EscalationLevel),
			"timestamp":       n.Timestamp.Format(time.RFC3339),
		},
	}
}
