package usecase

import (
	"context"

	"escalation-srv/internal/escalate"
	"escalation-srv/internal/model"
)

// GetPolicy returns the stored ladder, falling back to the default one when
// nothing has been saved yet.
func (uc *implUseCase) GetPolicy(ctx context.Context) (model.EscalationPolicy, error) {
	policy, ok, err := uc.policyRepo.Get(ctx)
	if err != nil {
		uc.l.Errorf(ctx, "internal.escalate.usecase.GetPolicy.Get: %v", err)
		return model.EscalationPolicy{}, err
	}
	if !ok {
		return model.DefaultEscalationPolicy(), nil
	}
	return policy, nil
}

func (uc *implUseCase) UpdatePolicy(ctx context.Context, policy model.EscalationPolicy) (model.EscalationPolicy, error) {
	if err := validatePolicy(policy); err != nil {
		return model.EscalationPolicy{}, err
	}
	if err := uc.policyRepo.Save(ctx, policy); err != nil {
		uc.l.Errorf(ctx, "internal.escalate.usecase.UpdatePolicy.Save: %v", err)
		return model.EscalationPolicy{}, err
	}
	return policy, nil
}

// validatePolicy requires a contiguous ladder starting at 1 with positive
// timeouts, so NextLevel can always find the rung above.
func validatePolicy(policy model.EscalationPolicy) error {
	for i, lvl := range policy.Levels {
		if lvl.Level != i+1 {
			return escalate.ErrInvalidPolicy
		}
		if lvl.TimeoutMinutes <= 0 {
			return escalate.ErrInvalidPolicy
		}
	}
	return nil
}
