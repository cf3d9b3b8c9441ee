package report

import "errors"

var (
	ErrConfigNotFound  = errors.New("report config not found")
	ErrConfigInactive  = errors.New("report config is inactive")
	ErrNoRecipients    = errors.New("report config has no recipients")
	ErrNameRequired    = errors.New("report config name is required")
	ErrInvalidSchedule = errors.New("invalid report schedule")
	ErrInvalidFormat   = errors.New("invalid export format")
	ErrInvalidPeriod   = errors.New("invalid report period")
	ErrAlreadyRunning  = errors.New("report run already in flight")
)
