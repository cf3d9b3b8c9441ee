package usecase

import (
	"context"

	"escalation-srv/internal/report"
	"escalation-srv/internal/report/repository"
	"escalation-srv/internal/schedule"
)

// Preview aggregates a report for a config without delivering anything or
// touching the schedule.
func (uc *implUseCase) Preview(ctx context.Context, input report.PreviewInput) (report.ReportData, error) {
	cfg, err := uc.configRepo.Detail(ctx, input.ConfigID)
	if err != nil {
		if err == repository.ErrNotFound {
			return report.ReportData{}, report.ErrConfigNotFound
		}
		uc.l.Errorf(ctx, "internal.report.usecase.Preview.Detail: %v", err)
		return report.ReportData{}, err
	}

	periodStart, periodEnd := schedule.PeriodFor(cfg.Frequency, uc.clock())
	if input.PeriodStart != nil && input.PeriodEnd != nil {
		if !input.PeriodEnd.After(*input.PeriodStart) {
			return report.ReportData{}, report.ErrInvalidPeriod
		}
		periodStart, periodEnd = *input.PeriodStart, *input.PeriodEnd
	}

	alerts, err := uc.alertRepo.List(ctx, repository.ListAlertsOptions{Filter: repository.AlertFilter{
		PeriodStart:       &periodStart,
		PeriodEnd:         &periodEnd,
		AlertTypes:        cfg.AlertTypes,
		ProductionLineIDs: cfg.ProductionLineIDs,
	}})
	if err != nil {
		uc.l.Errorf(ctx, "internal.report.usecase.Preview.List: %v", err)
		return report.ReportData{}, err
	}

	return buildReportData(alerts, periodStart, periodEnd), nil
}
