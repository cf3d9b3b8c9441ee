package escalate

import (
	"context"
	"time"

	"escalation-srv/internal/model"
)

//go:generate mockery --name UseCase
type UseCase interface {
	// Process walks every unresolved alert and raises those that have
	// outwaited the next ladder rung. Resolved alerts are never touched.
	Process(ctx context.Context, now time.Time) (ProcessOutput, error)

	// TestLevel exercises one rung's notification targets with a
	// synthetic alert so operators can verify the ladder configuration.
	TestLevel(ctx context.Context, level int) (TestOutput, error)

	GetPolicy(ctx context.Context) (model.EscalationPolicy, error)
	UpdatePolicy(ctx context.Context, policy model.EscalationPolicy) (model.EscalationPolicy, error)
}
