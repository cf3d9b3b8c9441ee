package push

import "errors"

var errNotConfigured = errors.New("push sender is not configured")
