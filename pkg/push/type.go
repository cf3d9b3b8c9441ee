package push

import (
	"net/http"

	"escalation-srv/pkg/log"
)

type Config struct {
	ServerKey string
}

// Message is the notification plus data payload delivered to devices.
type Message struct {
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

type implSender struct {
	l      log.Logger
	config Config
	client *http.Client
}

type fcmPayload struct {
	To           string            `json:"to"`
	Notification fcmNotification   `json:"notification"`
	Data         map[string]string `json:"data,omitempty"`
}

type fcmNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}
