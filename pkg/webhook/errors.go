package webhook

import "errors"

var errURLRequired = errors.New("webhook url is required")
