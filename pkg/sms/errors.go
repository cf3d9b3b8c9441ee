package sms

import "errors"

var errNotConfigured = errors.New("sms sender is not configured")
