package usecase

import (
	"sync"
	"time"

	"escalation-srv/internal/dispatch"
	"escalation-srv/internal/report"
	"escalation-srv/internal/report/repository"
	"escalation-srv/pkg/log"
	"escalation-srv/pkg/mailer"
)

const defaultWorkers = 4

type implUseCase struct {
	l           log.Logger
	configRepo  repository.ConfigRepository
	historyRepo repository.HistoryRepository
	alertRepo   repository.AlertRepository
	dispatchUC  dispatch.UseCase
	mailer      mailer.Mailer
	workers     int
	clock       func() time.Time

	// inflight holds config IDs with a run in progress, so one config is
	// never run twice concurrently.
	inflight sync.Map
}

func New(
	l log.Logger,
	configRepo repository.ConfigRepository,
	historyRepo repository.HistoryRepository,
	alertRepo repository.AlertRepository,
	dispatchUC dispatch.UseCase,
	m mailer.Mailer,
	workers int,
) report.UseCase {
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &implUseCase{
		l:           l,
		configRepo:  configRepo,
		historyRepo: historyRepo,
		alertRepo:   alertRepo,
		dispatchUC:  dispatchUC,
		mailer:      m,
		workers:     workers,
		clock:       time.Now,
	}
}
