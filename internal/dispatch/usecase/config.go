package usecase

import (
	"context"

	"github.com/google/uuid"

	"escalation-srv/internal/dispatch"
	"escalation-srv/internal/dispatch/repository"
	"escalation-srv/internal/model"
	"escalation-srv/pkg/paginator"
)

func validateConfigInput(ip dispatch.CreateConfigInput) error {
	if ip.Name == "" {
		return dispatch.ErrNameRequired
	}
	if !model.IsValidChannelType(ip.ChannelType) {
		return dispatch.ErrInvalidChannelType
	}
	if ip.WebhookURL == "" {
		return dispatch.ErrWebhookURLRequired
	}
	return nil
}

func (uc *implUseCase) CreateConfig(ctx context.Context, ip dispatch.CreateConfigInput) (model.WebhookConfig, error) {
	if err := validateConfigInput(ip); err != nil {
		return model.WebhookConfig{}, err
	}

	now := uc.clock()
	cfg := model.WebhookConfig{
		ID:                 uuid.NewString(),
		Name:               ip.Name,
		ChannelType:        ip.ChannelType,
		WebhookURL:         ip.WebhookURL,
		SlackChannel:       ip.SlackChannel,
		SlackMentions:      ip.SlackMentions,
		TeamsTitle:         ip.TeamsTitle,
		CustomHeaders:      ip.CustomHeaders,
		CustomBodyTemplate: ip.CustomBodyTemplate,
		IncludeDetails:     ip.IncludeDetails,
		IsActive:           ip.IsActive,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	created, err := uc.configRepo.Create(ctx, repository.CreateConfigOptions{Config: cfg})
	if err != nil {
		uc.l.Errorf(ctx, "internal.dispatch.usecase.CreateConfig.Create: %v", err)
		return model.WebhookConfig{}, err
	}

	return created, nil
}

func (uc *implUseCase) UpdateConfig(ctx context.Context, ip dispatch.UpdateConfigInput) (model.WebhookConfig, error) {
	if err := validateConfigInput(ip.CreateConfigInput); err != nil {
		return model.WebhookConfig{}, err
	}

	cur, err := uc.configRepo.Detail(ctx, ip.ID)
	if err != nil {
		if err == repository.ErrNotFound {
			return model.WebhookConfig{}, dispatch.ErrConfigNotFound
		}
		uc.l.Errorf(ctx, "internal.dispatch.usecase.UpdateConfig.Detail: %v", err)
		return model.WebhookConfig{}, err
	}

	cur.Name = ip.Name
	cur.ChannelType = ip.ChannelType
	cur.WebhookURL = ip.WebhookURL
	cur.SlackChannel = ip.SlackChannel
	cur.SlackMentions = ip.SlackMentions
	cur.TeamsTitle = ip.TeamsTitle
	cur.CustomHeaders = ip.CustomHeaders
	cur.CustomBodyTemplate = ip.CustomBodyTemplate
	cur.IncludeDetails = ip.IncludeDetails
	cur.IsActive = ip.IsActive
	cur.UpdatedAt = uc.clock()

	updated, err := uc.configRepo.Update(ctx, repository.UpdateConfigOptions{Config: cur})
	if err != nil {
		if err == repository.ErrNotFound {
			return model.WebhookConfig{}, dispatch.ErrConfigNotFound
		}
		uc.l.Errorf(ctx, "internal.dispatch.usecase.UpdateConfig.Update: %v", err)
		return model.WebhookConfig{}, err
	}

	return updated, nil
}

func (uc *implUseCase) DeleteConfig(ctx context.Context, id string) error {
	if err := uc.configRepo.Delete(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return dispatch.ErrConfigNotFound
		}
		uc.l.Errorf(ctx, "internal.dispatch.usecase.DeleteConfig.Delete: %v", err)
		return err
	}
	return nil
}

func (uc *implUseCase) DetailConfig(ctx context.Context, id string) (model.WebhookConfig, error) {
	cfg, err := uc.configRepo.Detail(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return model.WebhookConfig{}, dispatch.ErrConfigNotFound
		}
		uc.l.Errorf(ctx, "internal.dispatch.usecase.DetailConfig.Detail: %v", err)
		return model.WebhookConfig{}, err
	}
	return cfg, nil
}

func (uc *implUseCase) ListConfigs(ctx context.Context, ip dispatch.ListConfigsInput) ([]model.WebhookConfig, error) {
	cfgs, err := uc.configRepo.List(ctx, repository.ListConfigsOptions{
		ActiveOnly:  ip.ActiveOnly,
		ChannelType: ip.ChannelType,
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.dispatch.usecase.ListConfigs.List: %v", err)
		return nil, err
	}
	return cfgs, nil
}

func (uc *implUseCase) GetDeliveryLogs(ctx context.Context, ip dispatch.GetLogsInput) ([]model.DeliveryLog, paginator.Paginator, error) {
	logs, pag, err := uc.logRepo.Get(ctx, repository.GetLogsOptions{
		WebhookConfigID: ip.WebhookConfigID,
		RunID:           ip.RunID,
		AlertID:         ip.AlertID,
		SuccessOnly:     ip.SuccessOnly,
		PaginateQuery:   ip.PaginateQuery,
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.dispatch.usecase.GetDeliveryLogs.Get: %v", err)
		return nil, paginator.Paginator{}, err
	}
	return logs, pag, nil
}
