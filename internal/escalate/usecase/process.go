package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"escalation-srv/internal/channel"
	dispatchrepo "escalation-srv/internal/dispatch/repository"
	"escalation-srv/internal/escalate"
	"escalation-srv/internal/escalate/repository"
	"escalation-srv/internal/model"
)

func (uc *implUseCase) Process(ctx context.Context, now time.Time) (escalate.ProcessOutput, error) {
	policy, err := uc.GetPolicy(ctx)
	if err != nil {
		return escalate.ProcessOutput{}, err
	}

	var out escalate.ProcessOutput
	if !policy.Enabled || len(policy.Levels) == 0 {
		return out, nil
	}

	alerts, err := uc.alertRepo.ListUnresolved(ctx)
	if err != nil {
		uc.l.Errorf(ctx, "internal.escalate.usecase.Process.ListUnresolved: %v", err)
		return out, err
	}

	for _, alert := range alerts {
		out.Processed++

		next, ok := policy.NextLevel(alert.EscalationLevel)
		if !ok {
			// Already at the top of the ladder.
			continue
		}

		ref := alert.CreatedAt
		if alert.LastEscalatedAt != nil && alert.LastEscalatedAt.After(ref) {
			ref = *alert.LastEscalatedAt
		}
		if now.Sub(ref) < time.Duration(next.TimeoutMinutes)*time.Minute {
			continue
		}

		if err := uc.escalateOne(ctx, alert, next, now); err != nil {
			out.Errors++
			continue
		}
		out.Escalated++
	}

	if out.Processed > 0 {
		uc.l.Infof(ctx, "internal.escalate.usecase.Process: processed=%d escalated=%d errors=%d",
			out.Processed, out.Escalated, out.Errors)
	}
	return out, nil
}

// escalateOne notifies the rung's targets and then raises the alert. Target
// failures are logged per transport but do not stop the escalation: the
// level advance is the source of truth, not the notifications.
func (uc *implUseCase) escalateOne(ctx context.Context, alert model.EscalationAlert, level model.PolicyLevel, now time.Time) error {
	note := notificationFor(alert, level)

	if len(level.NotifyEmails) > 0 {
		subject, html, err := renderEscalationEmail(alert, level, now)
		if err != nil {
			uc.l.Errorf(ctx, "internal.escalate.usecase.escalateOne.renderEscalationEmail: %v", err)
		} else {
			for _, to := range level.NotifyEmails {
				uc.sendEmail(ctx, alert, level, to, subject, html, now)
			}
		}
	}

	if len(level.NotifyPhones) > 0 {
		body := channel.RenderSMS(note, now)
		for _, phone := range level.NotifyPhones {
			uc.sendSMS(ctx, alert, level, phone, body, now)
		}
	}

	if level.NotifyPush {
		uc.sendPush(ctx, alert, level, note, now)
	}

	if err := uc.alertRepo.UpdateEscalation(ctx, repository.UpdateEscalationOptions{
		ID:              alert.ID,
		EscalationLevel: level.Level,
		LastEscalatedAt: now,
	}); err != nil {
		uc.l.Errorf(ctx, "internal.escalate.usecase.escalateOne.UpdateEscalation: %v", err)
		return err
	}
	return nil
}

func (uc *implUseCase) sendEmail(ctx context.Context, alert model.EscalationAlert, level model.PolicyLevel, to, subject, html string, now time.Time) {
	err := uc.mailer.Send(ctx, mailerMessage(to, subject, html))
	if err != nil {
		uc.l.Warnf(ctx, "internal.escalate.usecase.sendEmail: %s: %v", to, err)
	}
	uc.writeLog(ctx, alert, level, model.ChannelEmail, to, subject, err, now)
}

func (uc *implUseCase) sendSMS(ctx context.Context, alert model.EscalationAlert, level model.PolicyLevel, phone, body string, now time.Time) {
	if uc.sms == nil {
		uc.writeLog(ctx, alert, level, model.ChannelSMS, phone, body, errSMSNotConfigured, now)
		return
	}
	err := uc.sms.Send(ctx, phone, body)
	if err != nil {
		uc.l.Warnf(ctx, "internal.escalate.usecase.sendSMS: %s: %v", phone, err)
	}
	uc.writeLog(ctx, alert, level, model.ChannelSMS, phone, body, err, now)
}

func (uc *implUseCase) sendPush(ctx context.Context, alert model.EscalationAlert, level model.PolicyLevel, note channel.Notification, now time.Time) {
	msg := channel.RenderPush(note)
	if uc.push == nil {
		uc.writeLog(ctx, alert, level, model.ChannelPush, pushTopic, msg.Body, errPushNotConfigured, now)
		return
	}
	err := uc.push.SendToTopic(ctx, pushTopic, pushMessage(msg))
	if err != nil {
		uc.l.Warnf(ctx, "internal.escalate.usecase.sendPush: %v", err)
	}
	uc.writeLog(ctx, alert, level, model.ChannelPush, pushTopic, msg.Body, err, now)
}

// writeLog appends the per-transport delivery record. These channels carry
// no retry chain; failures surface through the next escalation sweep.
func (uc *implUseCase) writeLog(ctx context.Context, alert model.EscalationAlert, level model.PolicyLevel, ch model.ChannelType, recipient, payload string, sendErr error, now time.Time) {
	entry := model.DeliveryLog{
		ID:              uuid.NewString(),
		AlertID:         alert.ID,
		ChannelType:     ch,
		Recipient:       recipient,
		AlertType:       alert.AlertType,
		AlertTitle:      alert.Title,
		EscalationLevel: level.Level,
		RequestPayload:  payload,
		Success:         sendErr == nil,
		RetryStatus:     model.RetryStatusNone,
		SentAt:          now,
	}
	if sendErr != nil {
		entry.ErrorMessage = sendErr.Error()
	}
	if _, err := uc.logRepo.Create(ctx, dispatchrepo.CreateLogOptions{Log: entry}); err != nil {
		uc.l.Errorf(ctx, "internal.escalate.usecase.writeLog.Create: %v", err)
	}
}

func notificationFor(alert model.EscalationAlert, level model.PolicyLevel) channel.Notification {
	return channel.Notification{
		AlertID:            alert.ID,
		AlertType:          alert.AlertType,
		Title:              alert.Title,
		Message:            alert.Message,
		Severity:           alert.Severity,
		EscalationLevel:    level.Level,
		ProductionLineName: alert.ProductionLineName,
		MachineName:        alert.MachineName,
		MetricValue:        alert.MetricValue,
		Threshold:          alert.Threshold,
		Timestamp:          alert.CreatedAt,
	}
}
