package repository

import (
	"context"

	"escalation-srv/internal/model"
)

// AlertRepository covers the escalation processor's view of the alert
// store: unresolved alerts in, escalation bookkeeping out.
//
//go:generate mockery --name AlertRepository
type AlertRepository interface {
	// ListUnresolved returns alerts not yet resolved, oldest first.
	ListUnresolved(ctx context.Context) ([]model.EscalationAlert, error)
	UpdateEscalation(ctx context.Context, opts UpdateEscalationOptions) error
}

// PolicyRepository persists the escalation ladder in the settings store.
//
//go:generate mockery --name PolicyRepository
type PolicyRepository interface {
	// Get returns the stored policy; ok is false when none has been
	// saved yet.
	Get(ctx context.Context) (model.EscalationPolicy, bool, error)
	Save(ctx context.Context, policy model.EscalationPolicy) error
}
