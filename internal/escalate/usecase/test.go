package usecase

import (
	"context"

	"escalation-srv/internal/escalate"
	"escalation-srv/internal/model"
)

// TestLevel pushes a synthetic alert through one rung's notification
// targets. The alert store is never touched; only delivery logs are written.
func (uc *implUseCase) TestLevel(ctx context.Context, levelNumber int) (escalate.TestOutput, error) {
	policy, err := uc.GetPolicy(ctx)
	if err != nil {
		return escalate.TestOutput{}, err
	}

	level, ok := policy.LevelByNumber(levelNumber)
	if !ok {
		return escalate.TestOutput{}, escalate.ErrLevelNotFound
	}

	now := uc.clock()
	value := 0.95
	threshold := 1.33
	alert := model.EscalationAlert{
		ID:              "test-" + level.Name,
		AlertType:       "test_alert",
		Title:           "Escalation ladder test",
		Message:         "This is a test escalation. No action needed.",
		Severity:        model.SeverityInfo,
		EscalationLevel: level.Level,
		Status:          model.AlertStatusPending,
		MetricValue:     &value,
		Threshold:       &threshold,
		CreatedAt:       now,
	}

	var out escalate.TestOutput
	note := notificationFor(alert, level)

	if len(level.NotifyEmails) > 0 {
		subject, html, err := renderEscalationEmail(alert, level, now)
		if err != nil {
			uc.l.Errorf(ctx, "internal.escalate.usecase.TestLevel.renderEscalationEmail: %v", err)
		} else {
			for _, to := range level.NotifyEmails {
				uc.sendEmail(ctx, alert, level, to, "[TEST] "+subject, html, now)
				out.EmailsSent++
			}
		}
	}

	if len(level.NotifyPhones) > 0 {
		body := "[TEST] " + "Escalation ladder test for level " + level.Name
		for _, phone := range level.NotifyPhones {
			uc.sendSMS(ctx, alert, level, phone, body, now)
			out.SMSSent++
		}
	}

	if level.NotifyPush {
		uc.sendPush(ctx, alert, level, note, now)
		out.PushSent = true
	}

	return out, nil
}
