package usecase

import (
	"context"
	"time"

	"escalation-srv/internal/dispatch"
	"escalation-srv/internal/dispatch/repository"
	"escalation-srv/internal/model"
	"escalation-srv/pkg/webhook"
)

func (uc *implUseCase) ProcessRetries(ctx context.Context, now time.Time) (dispatch.RetryOutput, error) {
	due, err := uc.logRepo.ListDue(ctx, now)
	if err != nil {
		uc.l.Errorf(ctx, "internal.dispatch.usecase.ProcessRetries.ListDue: %v", err)
		return dispatch.RetryOutput{}, err
	}

	var out dispatch.RetryOutput
	for _, entry := range due {
		out.Processed++

		opts, retried := uc.retryOne(ctx, entry, now)
		if err := uc.logRepo.UpdateRetry(ctx, opts); err != nil {
			uc.l.Errorf(ctx, "internal.dispatch.usecase.ProcessRetries.UpdateRetry: %v", err)
			continue
		}

		if retried && opts.Success {
			out.Succeeded++
		}
		if opts.RetryStatus == model.RetryStatusExhausted {
			out.Exhausted++
		}
	}

	if out.Processed > 0 {
		uc.l.Infof(ctx, "internal.dispatch.usecase.ProcessRetries: processed=%d succeeded=%d exhausted=%d",
			out.Processed, out.Succeeded, out.Exhausted)
	}

	return out, nil
}

// retryOne re-attempts a single delivery and computes its next bookkeeping
// state. The second return reports whether a POST was actually made: a
// delivery whose config vanished or was disabled exhausts without one.
func (uc *implUseCase) retryOne(ctx context.Context, entry model.DeliveryLog, now time.Time) (repository.UpdateRetryOptions, bool) {
	opts := repository.UpdateRetryOptions{
		ID:          entry.ID,
		RetryCount:  entry.RetryCount + 1,
		LastRetryAt: now,
	}

	if entry.WebhookConfigID == nil {
		opts.RetryStatus = model.RetryStatusExhausted
		opts.ErrorMessage = "delivery has no webhook config"
		return opts, false
	}

	cfg, err := uc.configRepo.Detail(ctx, *entry.WebhookConfigID)
	if err != nil || !cfg.IsActive {
		opts.RetryStatus = model.RetryStatusExhausted
		opts.ErrorMessage = "webhook config deleted or disabled"
		uc.l.Warnf(ctx, "internal.dispatch.usecase.retryOne: exhausting %s, config %s unavailable", entry.ID, *entry.WebhookConfigID)
		return opts, false
	}

	result, sendErr := uc.sender.Send(ctx, webhook.Request{
		URL:     cfg.WebhookURL,
		Body:    []byte(entry.RequestPayload),
		Headers: cfg.CustomHeaders,
	})

	if sendErr == nil && result.Success {
		opts.Success = true
		opts.RetryStatus = model.RetryStatusNone
		opts.ResponseStatus = &result.StatusCode
		return opts, true
	}

	if sendErr != nil {
		opts.ErrorMessage = sendErr.Error()
	} else {
		opts.ResponseStatus = &result.StatusCode
		opts.ErrorMessage = result.Body
	}

	if opts.RetryCount >= entry.MaxRetries {
		opts.RetryStatus = model.RetryStatusExhausted
		return opts, true
	}

	next := now.Add(retryDelay(opts.RetryCount))
	opts.RetryStatus = model.RetryStatusPending
	opts.NextRetryAt = &next
	return opts, true
}
