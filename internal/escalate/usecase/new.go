package usecase

import (
	"errors"
	"time"

	dispatchrepo "escalation-srv/internal/dispatch/repository"
	"escalation-srv/internal/escalate"
	"escalation-srv/internal/escalate/repository"
	"escalation-srv/pkg/log"
	"escalation-srv/pkg/mailer"
	"escalation-srv/pkg/push"
	"escalation-srv/pkg/sms"
)

// pushTopic is the FCM topic every escalation push goes to.
const pushTopic = "escalations"

// Senders are optional; a missing one is recorded as a failed delivery
// instead of blocking the level advance.
var (
	errSMSNotConfigured  = errors.New("sms sender not configured")
	errPushNotConfigured = errors.New("push sender not configured")
)

type implUseCase struct {
	l          log.Logger
	alertRepo  repository.AlertRepository
	policyRepo repository.PolicyRepository
	logRepo    dispatchrepo.DeliveryLogRepository
	mailer     mailer.Mailer
	sms        sms.Sender
	push       push.Sender
	clock      func() time.Time
}

func New(
	l log.Logger,
	alertRepo repository.AlertRepository,
	policyRepo repository.PolicyRepository,
	logRepo dispatchrepo.DeliveryLogRepository,
	m mailer.Mailer,
	smsSender sms.Sender,
	pushSender push.Sender,
) escalate.UseCase {
	return &implUseCase{
		l:          l,
		alertRepo:  alertRepo,
		policyRepo: policyRepo,
		logRepo:    logRepo,
		mailer:     m,
		sms:        smsSender,
		push:       pushSender,
		clock:      time.Now,
	}
}
