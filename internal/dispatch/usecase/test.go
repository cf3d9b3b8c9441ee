package usecase

import (
	"context"

	"github.com/google/uuid"

	"escalation-srv/internal/channel"
	"escalation-srv/internal/dispatch"
	"escalation-srv/internal/model"
)

// TestChannel posts a synthetic alert through the config so operators can
// verify the wiring without waiting for a real escalation.
func (uc *implUseCase) TestChannel(ctx context.Context, webhookConfigID string) (dispatch.SendOutput, error) {
	value := 0.95
	threshold := 1.33
	note := channel.Notification{
		AlertID:            uuid.NewString(),
		AlertType:          "test_alert",
		Title:              "Test Notification",
		Message:            "This is a test message from the escalation service. If you can read this, the channel is wired correctly.",
		Severity:           model.SeverityInfo,
		EscalationLevel:    1,
		ProductionLineName: "Test Line",
		MachineName:        "Test Machine",
		MetricValue:        &value,
		Threshold:          &threshold,
		Timestamp:          uc.clock(),
	}

	return uc.Send(ctx, webhookConfigID, note)
}
