package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"escalation-srv/internal/channel"
	"escalation-srv/internal/model"
	"escalation-srv/internal/report"
	"escalation-srv/internal/report/repository"
	"escalation-srv/internal/schedule"
)

func (uc *implUseCase) SendNow(ctx context.Context, configID string) (report.RunOutcome, error) {
	cfg, err := uc.configRepo.Detail(ctx, configID)
	if err != nil {
		if err == repository.ErrNotFound {
			return report.RunOutcome{}, report.ErrConfigNotFound
		}
		uc.l.Errorf(ctx, "internal.report.usecase.SendNow.Detail: %v", err)
		return report.RunOutcome{}, err
	}

	if _, loaded := uc.inflight.LoadOrStore(cfg.ID, struct{}{}); loaded {
		return report.RunOutcome{}, report.ErrAlreadyRunning
	}
	defer uc.inflight.Delete(cfg.ID)

	return uc.runConfig(ctx, cfg, uc.clock()), nil
}

func (uc *implUseCase) RunDue(ctx context.Context, now time.Time) (report.RunDueOutput, error) {
	due, err := uc.configRepo.ListDue(ctx, now)
	if err != nil {
		uc.l.Errorf(ctx, "internal.report.usecase.RunDue.ListDue: %v", err)
		return report.RunDueOutput{}, err
	}

	out := report.RunDueOutput{Due: len(due)}
	if len(due) == 0 {
		return out, nil
	}

	results := make([]model.RunStatus, len(due))
	skipped := make([]bool, len(due))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.workers)
	for i, cfg := range due {
		g.Go(func() error {
			// Claim before running: a config already in flight is left
			// for its current run to finish.
			if _, loaded := uc.inflight.LoadOrStore(cfg.ID, struct{}{}); loaded {
				skipped[i] = true
				return nil
			}
			defer uc.inflight.Delete(cfg.ID)

			outcome := uc.runConfig(gctx, cfg, now)
			results[i] = outcome.Status
			return nil
		})
	}
	_ = g.Wait()

	for i := range due {
		switch {
		case skipped[i]:
			out.Skipped++
		case results[i] == model.RunStatusSent:
			out.Sent++
		case results[i] == model.RunStatusPartial:
			out.Partial++
		default:
			out.Failed++
		}
	}

	uc.l.Infof(ctx, "internal.report.usecase.RunDue: due=%d sent=%d partial=%d failed=%d skipped=%d",
		out.Due, out.Sent, out.Partial, out.Failed, out.Skipped)
	return out, nil
}

// runConfig executes one report run end to end: aggregate, deliver, record
// history, advance the schedule. The schedule is advanced whatever the
// outcome, so a failing config cannot wedge the due queue.
func (uc *implUseCase) runConfig(ctx context.Context, cfg model.ReportConfig, now time.Time) report.RunOutcome {
	outcome := report.RunOutcome{ConfigID: cfg.ID}

	// The history row ID is minted up front so webhook delivery logs can
	// carry it before the row itself is written.
	runID := uuid.NewString()

	periodStart, periodEnd := schedule.PeriodFor(cfg.Frequency, now)

	var data report.ReportData
	alerts, err := uc.alertRepo.List(ctx, repository.ListAlertsOptions{Filter: repository.AlertFilter{
		PeriodStart:       &periodStart,
		PeriodEnd:         &periodEnd,
		AlertTypes:        cfg.AlertTypes,
		ProductionLineIDs: cfg.ProductionLineIDs,
	}})
	if err != nil {
		uc.l.Errorf(ctx, "internal.report.usecase.runConfig.ListAlerts: %v", err)
		outcome.Errors = append(outcome.Errors, fmt.Sprintf("load alerts: %v", err))
		data = buildReportData(nil, periodStart, periodEnd)
	} else {
		data = buildReportData(alerts, periodStart, periodEnd)
	}

	if err == nil {
		sent, errs := uc.sendEmails(ctx, cfg, data)
		outcome.EmailsSent = sent
		outcome.Errors = append(outcome.Errors, errs...)

		if len(cfg.WebhookConfigIDs) > 0 {
			batch := uc.dispatchUC.SendToMany(ctx, cfg.WebhookConfigIDs, summaryNote(runID, data, now))
			outcome.WebhooksSent = batch.Sent
			outcome.Errors = append(outcome.Errors, batch.Errors...)
		}
	}

	outcome.Status = model.ClassifyRun(outcome.EmailsSent+outcome.WebhooksSent, len(outcome.Errors))

	uc.recordRun(ctx, runID, cfg, data, &outcome, now)
	uc.advanceSchedule(ctx, cfg, now)

	return outcome
}

// sendEmails fans the rendered report out to every recipient concurrently.
// One undeliverable recipient never blocks the rest.
func (uc *implUseCase) sendEmails(ctx context.Context, cfg model.ReportConfig, data report.ReportData) (int, []string) {
	if len(cfg.EmailRecipients) == 0 {
		return 0, nil
	}

	subject, html, err := renderEmail(cfg, data)
	if err != nil {
		uc.l.Errorf(ctx, "internal.report.usecase.sendEmails.renderEmail: %v", err)
		return 0, []string{fmt.Sprintf("render email: %v", err)}
	}

	errSlots := make([]string, len(cfg.EmailRecipients))
	sent := make([]bool, len(cfg.EmailRecipients))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.workers)
	for i, to := range cfg.EmailRecipients {
		g.Go(func() error {
			if err := uc.mailer.Send(gctx, mailerMessage(to, subject, html)); err != nil {
				errSlots[i] = fmt.Sprintf("email to %s: %v", to, err)
				return nil
			}
			sent[i] = true
			return nil
		})
	}
	_ = g.Wait()

	var count int
	var errs []string
	for i := range cfg.EmailRecipients {
		if sent[i] {
			count++
			continue
		}
		errs = append(errs, errSlots[i])
	}
	return count, errs
}

// summaryNote is the compact webhook rendition of a report: a synthetic
// info-level notification carrying the headline numbers, tagged with the
// run's history row ID.
func summaryNote(runID string, data report.ReportData, now time.Time) channel.Notification {
	return channel.Notification{
		RunID:           runID,
		AlertType:       "escalation_report",
		Title:           "Escalation Report",
		Message:         fmt.Sprintf("Total: %d, Resolved: %d", data.Stats.TotalAlerts, data.Stats.ResolvedAlerts),
		Severity:        model.SeverityInfo,
		EscalationLevel: 0,
		Timestamp:       now,
	}
}

// recordRun appends the history row. A storage failure here is reported in
// the outcome but does not abort the run.
func (uc *implUseCase) recordRun(ctx context.Context, runID string, cfg model.ReportConfig, data report.ReportData, outcome *report.RunOutcome, now time.Time) {
	raw, err := json.Marshal(data)
	if err != nil {
		uc.l.Errorf(ctx, "internal.report.usecase.recordRun.Marshal: %v", err)
		raw = nil
	}

	run := model.RunRecord{
		ID:                       runID,
		ConfigID:                 cfg.ID,
		PeriodStart:              data.PeriodStart,
		PeriodEnd:                data.PeriodEnd,
		TotalAlerts:              data.Stats.TotalAlerts,
		ResolvedAlerts:           data.Stats.ResolvedAlerts,
		PendingAlerts:            data.Stats.PendingAlerts,
		AvgResolutionTimeMinutes: data.Stats.AvgResolutionTimeMinutes,
		EmailsSent:               outcome.EmailsSent,
		WebhooksSent:             outcome.WebhooksSent,
		Status:                   outcome.Status,
		ErrorMessage:             strings.Join(outcome.Errors, "; "),
		ReportData:               string(raw),
		SentAt:                   now,
		CreatedAt:                now,
	}

	if _, err := uc.historyRepo.Create(ctx, repository.CreateRunOptions{Run: run}); err != nil {
		uc.l.Errorf(ctx, "internal.report.usecase.recordRun.Create: %v", err)
		outcome.Errors = append(outcome.Errors, fmt.Sprintf("record history: %v", err))
		outcome.Status = model.ClassifyRun(outcome.EmailsSent+outcome.WebhooksSent, len(outcome.Errors))
	}
}

// advanceSchedule moves LastRunAt/NextRunAt forward. This runs even after a
// failed run so the config never comes due in a tight loop.
func (uc *implUseCase) advanceSchedule(ctx context.Context, cfg model.ReportConfig, now time.Time) {
	next := uc.nextRunFor(ctx, cfg, now)
	if err := uc.configRepo.MarkRun(ctx, repository.MarkRunOptions{
		ID:        cfg.ID,
		LastRunAt: now,
		NextRunAt: next,
	}); err != nil {
		uc.l.Errorf(ctx, "internal.report.usecase.advanceSchedule.MarkRun: %v", err)
	}
}

// nextRunFor computes the next slot in the config's own timezone. A zone
// that no longer loads falls back to UTC with a warning.
func (uc *implUseCase) nextRunFor(ctx context.Context, cfg model.ReportConfig, now time.Time) time.Time {
	spec := schedule.Spec{
		Frequency:  cfg.Frequency,
		DayOfWeek:  cfg.DayOfWeek,
		DayOfMonth: cfg.DayOfMonth,
		TimeOfDay:  cfg.TimeOfDay,
		Timezone:   cfg.Timezone,
	}

	next, err := schedule.NextRun(spec, now)
	if err != nil {
		uc.l.Warnf(ctx, "internal.report.usecase.nextRunFor: %v, falling back to UTC", err)
		spec.Timezone = "UTC"
		next, err = schedule.NextRun(spec, now)
		if err != nil {
			// Recurrence fields themselves are broken; push out a day so
			// the config stops coming due every tick.
			return now.Add(24 * time.Hour)
		}
	}
	return next
}
