// Package inmem provides in-memory repository implementations used by tests
// and local development.
package inmem

import (
	"context"
	"sort"
	"sync"
	"time"

	"escalation-srv/internal/dispatch/repository"
	"escalation-srv/internal/model"
	"escalation-srv/pkg/paginator"
)

type ConfigRepository struct {
	mu      sync.RWMutex
	configs map[string]model.WebhookConfig
}

var _ repository.WebhookConfigRepository = &ConfigRepository{}

func NewConfigRepository() *ConfigRepository {
	return &ConfigRepository{configs: make(map[string]model.WebhookConfig)}
}

func (r *ConfigRepository) Create(_ context.Context, opts repository.CreateConfigOptions) (model.WebhookConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.configs[opts.Config.ID] = opts.Config
	return opts.Config, nil
}

func (r *ConfigRepository) Update(_ context.Context, opts repository.UpdateConfigOptions) (model.WebhookConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.configs[opts.Config.ID]; !ok {
		return model.WebhookConfig{}, repository.ErrNotFound
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

func (r *ConfigRepository) Detail(_ context.Context, id string) (model.WebhookConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg, ok := r.configs[id]
	if !ok {
		return model.WebhookConfig{}, repository.ErrNotFound
	}
	return cfg, nil
}

func (r *ConfigRepository) List(_ context.Context, opts repository.ListConfigsOptions) ([]model.WebhookConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var res []model.WebhookConfig
	for _, cfg := range r.configs {
		if opts.ActiveOnly && !cfg.IsActive {
			continue
		}
		if opts.ChannelType != "" && cfg.ChannelType != opts.ChannelType {
			continue
		}
		if len(opts.IDs) > 0 && !contains(opts.IDs, cfg.ID) {
			continue
		}
		res = append(res, cfg)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].CreatedAt.After(res[j].CreatedAt) })
	return res, nil
}

type LogRepository struct {
	mu   sync.RWMutex
	logs map[string]model.DeliveryLog
}

var _ repository.DeliveryLogRepository = &LogRepository{}

func NewLogRepository() *LogRepository {
	return &LogRepository{logs: make(map[string]model.DeliveryLog)}
}

func (r *LogRepository) Create(_ context.Context, opts repository.CreateLogOptions) (model.DeliveryLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs[opts.Log.ID] = opts.Log
	return opts.Log, nil
}

func (r *LogRepository) UpdateRetry(_ context.Context, opts repository.UpdateRetryOptions) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.logs[opts.ID]
	if !ok {
		return repository.ErrNotFound
	}

	entry.Success = opts.Success
	entry.RetryCount = opts.RetryCount
	entry.RetryStatus = opts.RetryStatus
	entry.NextRetryAt = opts.NextRetryAt
	last := opts.LastRetryAt
	entry.LastRetryAt = &last
	if opts.ResponseStatus != nil {
		entry.ResponseStatus = opts.ResponseStatus
	}
	if opts.ErrorMessage != "" {
		entry.ErrorMessage = opts.ErrorMessage
	}
	r.logs[opts.ID] = entry
	return nil
}

func (r *LogRepository) ListDue(_ context.Context, now time.Time) ([]model.DeliveryLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var res []model.DeliveryLog
	for _, entry := range r.logs {
		if entry.RetryStatus != model.RetryStatusPending || entry.NextRetryAt == nil {
			continue
		}
		if entry.NextRetryAt.After(now) {
			continue
		}
		res = append(res, entry)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].NextRetryAt.Before(*res[j].NextRetryAt) })
	return res, nil
}

func (r *LogRepository) Get(_ context.Context, opts repository.GetLogsOptions) ([]model.DeliveryLog, paginator.Paginator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var all []model.DeliveryLog
	for _, entry := range r.logs {
		if opts.WebhookConfigID != "" &&
			(entry.WebhookConfigID == nil || *entry.WebhookConfigID != opts.WebhookConfigID) {
			continue
		}
		if opts.RunID != "" && entry.RunID != opts.RunID {
			continue
		}
		if opts.AlertID != "" && entry.AlertID != opts.AlertID {
			continue
		}
		if opts.SuccessOnly != nil && entry.Success != *opts.SuccessOnly {
			continue
		}
		all = append(all, entry)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].SentAt.After(all[j].SentAt) })

	page, pag := paginator.PaginateSlice(all, opts.PaginateQuery)
	return page, pag, nil
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
