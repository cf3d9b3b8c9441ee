package usecase

import (
	"context"

	"github.com/google/uuid"

	"escalation-srv/internal/model"
	"escalation-srv/internal/report"
	"escalation-srv/internal/report/repository"
	"escalation-srv/internal/schedule"
	"escalation-srv/pkg/paginator"
)

func (uc *implUseCase) CreateConfig(ctx context.Context, input report.CreateConfigInput) (model.ReportConfig, error) {
	cfg := configFromInput(input)
	if err := uc.validateConfig(cfg); err != nil {
		return model.ReportConfig{}, err
	}

	now := uc.clock()
	cfg.ID = uuid.NewString()
	cfg.CreatedAt = now
	cfg.UpdatedAt = now

	next := uc.nextRunFor(ctx, cfg, now)
	cfg.NextRunAt = &next

	created, err := uc.configRepo.Create(ctx, repository.CreateConfigOptions{Config: cfg})
	if err != nil {
		uc.l.Errorf(ctx, "internal.report.usecase.CreateConfig.Create: %v", err)
		return model.ReportConfig{}, err
	}
	return created, nil
}

func (uc *implUseCase) UpdateConfig(ctx context.Context, input report.UpdateConfigInput) (model.ReportConfig, error) {
	existing, err := uc.configRepo.Detail(ctx, input.ID)
	if err != nil {
		if err == repository.ErrNotFound {
			return model.ReportConfig{}, report.ErrConfigNotFound
		}
		uc.l.Errorf(ctx, "internal.report.usecase.UpdateConfig.Detail: %v", err)
		return model.ReportConfig{}, err
	}

	cfg := configFromInput(input.CreateConfigInput)
	if err := uc.validateConfig(cfg); err != nil {
		return model.ReportConfig{}, err
	}

	now := uc.clock()
	cfg.ID = existing.ID
	cfg.CreatedAt = existing.CreatedAt
	cfg.LastRunAt = existing.LastRunAt
	cfg.UpdatedAt = now

	// An edit to the recurrence fields invalidates the stored slot.
	if recurrenceChanged(existing, cfg) || existing.NextRunAt == nil {
		next := uc.nextRunFor(ctx, cfg, now)
		cfg.NextRunAt = &next
	} else {
		cfg.NextRunAt = existing.NextRunAt
	}

	updated, err := uc.configRepo.Update(ctx, repository.UpdateConfigOptions{Config: cfg})
	if err != nil {
		if err == repository.ErrNotFound {
			return model.ReportConfig{}, report.ErrConfigNotFound
		}
		uc.l.Errorf(ctx, "internal.report.usecase.UpdateConfig.Update: %v", err)
		return model.ReportConfig{}, err
	}
	return updated, nil
}

func (uc *implUseCase) DeleteConfig(ctx context.Context, id string) error {
	if err := uc.configRepo.Delete(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return report.ErrConfigNotFound
		}
		uc.l.Errorf(ctx, "internal.report.usecase.DeleteConfig.Delete: %v", err)
		return err
	}
	return nil
}

func (uc *implUseCase) DetailConfig(ctx context.Context, id string) (model.ReportConfig, error) {
	cfg, err := uc.configRepo.Detail(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return model.ReportConfig{}, report.ErrConfigNotFound
		}
		uc.l.Errorf(ctx, "internal.report.usecase.DetailConfig.Detail: %v", err)
		return model.ReportConfig{}, err
	}
	return cfg, nil
}

func (uc *implUseCase) ListConfigs(ctx context.Context, input report.ListConfigsInput) ([]model.ReportConfig, error) {
	configs, err := uc.configRepo.List(ctx, repository.ListConfigsOptions{ActiveOnly: input.ActiveOnly})
	if err != nil {
		uc.l.Errorf(ctx, "internal.report.usecase.ListConfigs.List: %v", err)
		return nil, err
	}
	return configs, nil
}

func (uc *implUseCase) GetHistory(ctx context.Context, input report.GetHistoryInput) ([]model.RunRecord, paginator.Paginator, error) {
	runs, pag, err := uc.historyRepo.Get(ctx, repository.GetRunsOptions{
		ConfigID:      input.ConfigID,
		PaginateQuery: input.PaginateQuery,
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.report.usecase.GetHistory.Get: %v", err)
		return nil, paginator.Paginator{}, err
	}
	return runs, pag, nil
}

func configFromInput(input report.CreateConfigInput) model.ReportConfig {
	return model.ReportConfig{
		Name:                  input.Name,
		Description:           input.Description,
		Frequency:             input.Frequency,
		DayOfWeek:             input.DayOfWeek,
		DayOfMonth:            input.DayOfMonth,
		TimeOfDay:             input.TimeOfDay,
		Timezone:              input.Timezone,
		IncludeStats:          input.IncludeStats,
		IncludeTopAlerts:      input.IncludeTopAlerts,
		IncludeResolvedAlerts: input.IncludeResolvedAlerts,
		IncludeTrends:         input.IncludeTrends,
		EmailRecipients:       input.EmailRecipients,
		WebhookConfigIDs:      input.WebhookConfigIDs,
		AlertTypes:            input.AlertTypes,
		ProductionLineIDs:     input.ProductionLineIDs,
		IsActive:              input.IsActive,
	}
}

func (uc *implUseCase) validateConfig(cfg model.ReportConfig) error {
	if cfg.Name == "" {
		return report.ErrNameRequired
	}
	if !cfg.HasRecipients() {
		return report.ErrNoRecipients
	}
	if err := schedule.Validate(schedule.Spec{
		Frequency:  cfg.Frequency,
		DayOfWeek:  cfg.DayOfWeek,
		DayOfMonth: cfg.DayOfMonth,
		TimeOfDay:  cfg.TimeOfDay,
		Timezone:   cfg.Timezone,
	}); err != nil {
		return report.ErrInvalidSchedule
	}
	return nil
}

func recurrenceChanged(a, b model.ReportConfig) bool {
	return a.Frequency != b.Frequency ||
		!intPtrEqual(a.DayOfWeek, b.DayOfWeek) ||
		!intPtrEqual(a.DayOfMonth, b.DayOfMonth) ||
		a.TimeOfDay != b.TimeOfDay ||
		a.Timezone != b.Timezone
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
