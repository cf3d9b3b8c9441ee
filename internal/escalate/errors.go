package escalate

import "errors"

var (
	ErrLevelNotFound = errors.New("escalation level not found in policy")
	ErrInvalidPolicy = errors.New("invalid escalation policy")
)
