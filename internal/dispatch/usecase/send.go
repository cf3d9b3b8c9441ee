package usecase

import (
	"context"

	"github.com/google/uuid"

	"escalation-srv/internal/channel"
	"escalation-srv/internal/dispatch"
	"escalation-srv/internal/dispatch/repository"
	"escalation-srv/internal/model"
	"escalation-srv/pkg/webhook"
)

func (uc *implUseCase) Send(ctx context.Context, webhookConfigID string, note channel.Notification) (dispatch.SendOutput, error) {
	cfg, err := uc.configRepo.Detail(ctx, webhookConfigID)
	if err != nil {
		if err == repository.ErrNotFound {
			return dispatch.SendOutput{}, dispatch.ErrConfigNotFound
		}
		uc.l.Errorf(ctx, "internal.dispatch.usecase.Send.Detail: %v", err)
		return dispatch.SendOutput{}, err
	}

	if !cfg.IsActive {
		return dispatch.SendOutput{}, dispatch.ErrConfigInactive
	}

	return uc.deliver(ctx, cfg, note)
}

// deliver renders, posts and logs one delivery. The delivery log is written
// for both outcomes before control returns.
func (uc *implUseCase) deliver(ctx context.Context, cfg model.WebhookConfig, note channel.Notification) (dispatch.SendOutput, error) {
	body, err := channel.Render(note, cfg)
	if err != nil {
		uc.l.Warnf(ctx, "internal.dispatch.usecase.deliver.Render: %v", err)
		return dispatch.SendOutput{}, err
	}

	now := uc.clock()
	entry := model.DeliveryLog{
		ID:              uuid.NewString(),
		WebhookConfigID: &cfg.ID,
		RunID:           note.RunID,
		AlertID:         note.AlertID,
		ChannelType:     cfg.ChannelType,
		Recipient:       cfg.WebhookURL,
		AlertType:       note.AlertType,
		AlertTitle:      note.Title,
		EscalationLevel: note.EscalationLevel,
		RequestPayload:  string(body),
		MaxRetries:      model.DefaultMaxRetries,
		RetryStatus:     model.RetryStatusNone,
		SentAt:          now,
	}

	result, sendErr := uc.sender.Send(ctx, uc.buildRequest(cfg, body))
	switch {
	case sendErr != nil:
		entry.ErrorMessage = sendErr.Error()
	default:
		entry.ResponseStatus = &result.StatusCode
		entry.ResponseBody = result.Body
		entry.Success = result.Success
		if !result.Success {
			entry.ErrorMessage = result.Body
		}
	}

	if !entry.Success {
		next := now.Add(retryDelay(0))
		entry.NextRetryAt = &next
		entry.RetryStatus = model.RetryStatusPending
		uc.l.Warnf(ctx, "internal.dispatch.usecase.deliver: webhook %s failed, retry scheduled at %s", cfg.ID, next)
	}

	created, err := uc.logRepo.Create(ctx, repository.CreateLogOptions{Log: entry})
	if err != nil {
		uc.l.Errorf(ctx, "internal.dispatch.usecase.deliver.CreateLog: %v", err)
		return dispatch.SendOutput{}, err
	}

	return dispatch.SendOutput{Log: created, Success: created.Success}, nil
}

func (uc *implUseCase) buildRequest(cfg model.WebhookConfig, body []byte) webhook.Request {
	req := webhook.Request{
		URL:  cfg.WebhookURL,
		Body: body,
	}
	if cfg.ChannelType == model.ChannelCustom {
		req.Headers = cfg.CustomHeaders
	}
	return req
}
