package schedule

import "errors"

// ErrInvalidSpec is returned for malformed recurrence fields.
var ErrInvalidSpec = errors.New("invalid recurrence spec")
