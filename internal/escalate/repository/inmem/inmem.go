// Package inmem provides in-memory repository implementations used by tests
// and local development.
package inmem

import (
	"context"
	"sort"
	"sync"

	"escalation-srv/internal/escalate/repository"
	"escalation-srv/internal/model"
)

type AlertRepository struct {
	mu     sync.RWMutex
	alerts map[string]model.EscalationAlert
}

var _ repository.AlertRepository = &AlertRepository{}

func NewAlertRepository() *AlertRepository {
	return &AlertRepository{alerts: make(map[string]model.EscalationAlert)}
}

// Seed replaces the stored alert with the same ID, inserting when absent.
func (r *AlertRepository) Seed(alerts ...model.EscalationAlert) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range alerts {
		r.alerts[a.ID] = a
	}
}

// Detail returns the stored alert for test assertions.
func (r *AlertRepository) Detail(id string) (model.EscalationAlert, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.alerts[id]
	return a, ok
}

func (r *AlertRepository) ListUnresolved(_ context.Context) ([]model.EscalationAlert, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var res []model.EscalationAlert
	for _, a := range r.alerts {
		if a.IsResolved() {
			continue
		}
		res = append(res, a)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].CreatedAt.Before(res[j].CreatedAt) })
	return res, nil
}

func (r *AlertRepository) UpdateEscalation(_ context.Context, opts repository.UpdateEscalationOptions) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.alerts[opts.ID]
	if !ok {
		return repository.ErrNotFound
	}
	a.EscalationLevel = opts.EscalationLevel
	a.Status = model.AlertStatusEscalated
	t := opts.LastEscalatedAt
	a.LastEscalatedAt = &t
	r.alerts[opts.ID] = a
	return nil
}

type PolicyRepository struct {
	mu     sync.RWMutex
	policy model.EscalationPolicy
	saved  bool
}

var _ repository.PolicyRepository = &PolicyRepository{}

func NewPolicyRepository() *PolicyRepository {
	return &PolicyRepository{}
}

func (r *PolicyRepository) Get(_ context.Context) (model.EscalationPolicy, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.policy, r.saved, nil
}

func (r *PolicyRepository) Save(_ context.Context, policy model.EscalationPolicy) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.policy = policy
	r.saved = true
	return nil
}
