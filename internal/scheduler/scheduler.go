// Package scheduler drives the background work of the service: the
// report due-tick, the webhook retry sweep and the escalation sweep.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"escalation-srv/internal/dispatch"
	"escalation-srv/internal/escalate"
	"escalation-srv/internal/report"
	"escalation-srv/pkg/log"
)

// everyMinute matches the original scheduler tick. Sub-minute precision
// buys nothing: NextRunAt and NextRetryAt carry the real schedule.
const everyMinute = "* * * * *"

type Scheduler struct {
	l          log.Logger
	reportUC   report.UseCase
	dispatchUC dispatch.UseCase
	escalateUC escalate.UseCase

	cron *cron.Cron
	wg   sync.WaitGroup
}

func New(l log.Logger, reportUC report.UseCase, dispatchUC dispatch.UseCase, escalateUC escalate.UseCase) *Scheduler {
	return &Scheduler{
		l:          l,
		reportUC:   reportUC,
		dispatchUC: dispatchUC,
		escalateUC: escalateUC,
		cron:       cron.New(),
	}
}

// Start registers the minute tick and starts the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(everyMinute, s.tick); err != nil {
		return err
	}
	s.cron.Start()
	s.l.Infof(context.Background(), "internal.scheduler.Start: running")
	return nil
}

// Stop halts the cron loop and waits for the in-flight tick, bounded by ctx.
func (s *Scheduler) Stop(ctx context.Context) error {
	cronCtx := s.cron.Stop()

	done := make(chan struct{})
	go func() {
		<-cronCtx.Done()
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.l.Infof(ctx, "internal.scheduler.Stop: drained")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// tick runs the three sweeps in order. Each sweep logs and absorbs its own
// errors; a failing sweep never blocks the others.
func (s *Scheduler) tick() {
	s.wg.Add(1)
	defer s.wg.Done()

	ctx := context.Background()
	now := time.Now()

	if out, err := s.reportUC.RunDue(ctx, now); err != nil {
		s.l.Errorf(ctx, "internal.scheduler.tick.RunDue: %v", err)
	} else if out.Due > 0 {
		s.l.Infof(ctx, "internal.scheduler.tick.RunDue: due=%d sent=%d partial=%d failed=%d",
			out.Due, out.Sent, out.Partial, out.Failed)
	}

	if out, err := s.dispatchUC.ProcessRetries(ctx, now); err != nil {
		s.l.Errorf(ctx, "internal.scheduler.tick.ProcessRetries: %v", err)
	} else if out.Processed > 0 {
		s.l.Infof(ctx, "internal.scheduler.tick.ProcessRetries: processed=%d succeeded=%d exhausted=%d",
			out.Processed, out.Succeeded, out.Exhausted)
	}

	if out, err := s.escalateUC.Process(ctx, now); err != nil {
		s.l.Errorf(ctx, "internal.scheduler.tick.Process: %v", err)
	} else if out.Escalated > 0 {
		s.l.Infof(ctx, "internal.scheduler.tick.Process: processed=%d escalated=%d errors=%d",
			out.Processed, out.Escalated, out.Errors)
	}
}
