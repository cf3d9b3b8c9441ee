package repository

import "time"

// UpdateEscalationOptions raises one alert to a new ladder rung.
type UpdateEscalationOptions struct {
	ID              string
	EscalationLevel int
	LastEscalatedAt time.Time
}
