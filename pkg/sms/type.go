package sms

import (
	"net/http"

	"escalation-srv/pkg/log"
)

type Config struct {
	AccountSID string
	AuthToken  string
	FromNumber string
}

type implSender struct {
	l      log.Logger
	config Config
	client *http.Client
}
