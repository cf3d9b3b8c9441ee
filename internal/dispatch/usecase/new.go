package usecase

import (
	"time"

	"escalation-srv/internal/dispatch"
	"escalation-srv/internal/dispatch/repository"
	"escalation-srv/pkg/log"
	"escalation-srv/pkg/webhook"
)

const defaultFanout = 8

type implUseCase struct {
	l          log.Logger
	sender     webhook.Sender
	configRepo repository.WebhookConfigRepository
	logRepo    repository.DeliveryLogRepository
	fanout     int
	clock      func() time.Time
}

func New(
	l log.Logger,
	sender webhook.Sender,
	configRepo repository.WebhookConfigRepository,
	logRepo repository.DeliveryLogRepository,
	fanout int,
) dispatch.UseCase {
	if fanout <= 0 {
		fanout = defaultFanout
	}
	return &implUseCase{
		l:          l,
		sender:     sender,
		configRepo: configRepo,
		logRepo:    logRepo,
		fanout:     fanout,
		clock:      time.Now,
	}
}
