package dispatch

import "errors"

var (
	ErrConfigNotFound     = errors.New("webhook config not found")
	ErrConfigInactive     = errors.New("webhook config is inactive")
	ErrInvalidChannelType = errors.New("invalid channel type")
	ErrWebhookURLRequired = errors.New("webhook url is required")
	ErrNameRequired       = errors.New("webhook config name is required")
)
