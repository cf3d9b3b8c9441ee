// Package inmem provides in-memory repository implementations used by tests
// and local development.
package inmem

import (
	"context"
	"sort"
	"sync"
	"time"

	"escalation-srv/internal/model"
	"escalation-srv/internal/report/repository"
	"escalation-srv/pkg/paginator"
)

type ConfigRepository struct {
	mu      sync.RWMutex
	configs map[string]model.ReportConfig
}

var _ repository.ConfigRepository = &ConfigRepository{}

func NewConfigRepository() *ConfigRepository {
	return &ConfigRepository{configs: make(map[string]model.ReportConfig)}
}

func (r *ConfigRepository) Create(_ context.Context, opts repository.CreateConfigOptions) (model.ReportConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.configs[opts.Config.ID] = opts.Config
	return opts.Config, nil
}

func (r *ConfigRepository) Update(_ context.Context, opts repository.UpdateConfigOptions) (model.ReportConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.configs[opts.Config.ID]; !ok {
		return model.ReportConfig{}, repository.ErrNotFound
	}
	r.configs[opts.Config.ID] = opts.Config
	return opts.Config, nil
}

func (r *ConfigRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.configs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.configs, id)
	return nil
}

func (r *ConfigRepository) Detail(_ context.Context, id string) (model.ReportConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg, ok := r.configs[id]
	if !ok {
		return model.ReportConfig{}, repository.ErrNotFound
	}
	return cfg, nil
}

func (r *ConfigRepository) List(_ context.Context, opts repository.ListConfigsOptions) ([]model.ReportConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var res []model.ReportConfig
	for _, cfg := range r.configs {
		if opts.ActiveOnly && !cfg.IsActive {
			continue
		}
		res = append(res, cfg)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].CreatedAt.After(res[j].CreatedAt) })
	return res, nil
}

func (r *ConfigRepository) ListDue(_ context.Context, now time.Time) ([]model.ReportConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var res []model.ReportConfig
	for _, cfg := range r.configs {
		if !cfg.IsActive || cfg.NextRunAt == nil || cfg.NextRunAt.After(now) {
			continue
		}
		res = append(res, cfg)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].NextRunAt.Before(*res[j].NextRunAt) })
	return res, nil
}

func (r *ConfigRepository) MarkRun(_ context.Context, opts repository.MarkRunOptions) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cfg, ok := r.configs[opts.ID]
	if !ok {
		return repository.ErrNotFound
	}
	last := opts.LastRunAt
	next := opts.NextRunAt
	cfg.LastRunAt = &last
	cfg.NextRunAt = &next
	cfg.UpdatedAt = opts.LastRunAt
	r.configs[opts.ID] = cfg
	return nil
}

type HistoryRepository struct {
	mu   sync.RWMutex
	runs []model.RunRecord
}

var _ repository.HistoryRepository = &HistoryRepository{}

func NewHistoryRepository() *HistoryRepository {
	return &HistoryRepository{}
}

func (r *HistoryRepository) Create(_ context.Context, opts repository.CreateRunOptions) (model.RunRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs = append(r.runs, opts.Run)
	return opts.Run, nil
}

func (r *HistoryRepository) Get(_ context.Context, opts repository.GetRunsOptions) ([]model.RunRecord, paginator.Paginator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var res []model.RunRecord
	for _, run := range r.runs {
		if opts.ConfigID != "" && run.ConfigID != opts.ConfigID {
			continue
		}
		res = append(res, run)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].SentAt.After(res[j].SentAt) })

	page, pag := paginator.PaginateSlice(res, opts.PaginateQuery)
	return page, pag, nil
}

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

func (r *AlertRepository) List(_ context.Context, opts repository.ListAlertsOptions) ([]model.EscalationAlert, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f := opts.Filter
	var res []model.EscalationAlert
	for _, a := range r.alerts {
		if f.PeriodStart != nil && a.CreatedAt.Before(*f.PeriodStart) {
			continue
		}
		if f.PeriodEnd != nil && !a.CreatedAt.Before(*f.PeriodEnd) {
			continue
		}
		if len(f.AlertTypes) > 0 && !contains(f.AlertTypes, a.AlertType) {
			continue
		}
		if len(f.ProductionLineIDs) > 0 && !contains(f.ProductionLineIDs, a.ProductionLineID) {
			continue
		}
		res = append(res, a)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].CreatedAt.After(res[j].CreatedAt) })
	return res, nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
