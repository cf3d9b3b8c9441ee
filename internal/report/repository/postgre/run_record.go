package postgres

import (
	"context"
	"fmt"

	"github.com/aarondl/null/v8"
	"github.com/aarondl/sqlboiler/v4/queries"

	"escalation-srv/internal/model"
	"escalation-srv/internal/report/repository"
	"escalation-srv/pkg/paginator"
)

const runRecordColumns = `id, config_id, period_start, period_end, total_alerts, resolved_alerts,
	pending_alerts, avg_resolution_time_minutes, emails_sent, webhooks_sent, status,
	error_message, report_data, sent_at, created_at`

func (r *implHistoryRepository) Create(ctx context.Context, opts repository.CreateRunOptions) (model.RunRecord, error) {
	run := opts.Run
	q := queries.Raw(fmt.Sprintf(`
		INSERT INTO report_history (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		runRecordColumns),
		run.ID, run.ConfigID, run.PeriodStart, run.PeriodEnd,
		run.TotalAlerts, run.ResolvedAlerts, run.PendingAlerts,
		null.IntFromPtr(run.AvgResolutionTimeMinutes),
		run.EmailsSent, run.WebhooksSent,
		string(run.Status),
		null.NewString(run.ErrorMessage, run.ErrorMessage != ""),
		null.NewString(run.ReportData, run.ReportData != ""),
		run.SentAt, run.CreatedAt,
	)
	if _, err := q.ExecContext(ctx, r.db); err != nil {
		r.l.Errorf(ctx, "internal.report.repository.postgres.CreateRun.Exec: %v", err)
		return model.RunRecord{}, err
	}

	return run, nil
}

func (r *implHistoryRepository) Get(ctx context.Context, opts repository.GetRunsOptions) ([]model.RunRecord, paginator.Paginator, error) {
	var (
		where string
		args  []interface{}
	)
	if opts.ConfigID != "" {
		where = ` WHERE config_id = $1`
		args = append(args, opts.ConfigID)
	}

	var total struct {
		Count int64 `boil:"count"`
	}
	if err := queries.Raw(`SELECT COUNT(*) AS count FROM report_history`+where, args...).
		Bind(ctx, r.db, &total); err != nil {
		r.l.Errorf(ctx, "internal.report.repository.postgres.Get.Count: %v", err)
		return nil, paginator.Paginator{}, err
	}

	pq := opts.PaginateQuery
	pq.Adjust()

	query := fmt.Sprintf(`SELECT %s FROM report_history%s ORDER BY sent_at DESC LIMIT %d OFFSET %d`,
		runRecordColumns, where, pq.Limit, pq.Offset())

	var rows []runRecordRow
	if err := queries.Raw(query, args...).Bind(ctx, r.db, &rows); err != nil {
		r.l.Errorf(ctx, "internal.report.repository.postgres.Get.Bind: %v", err)
		return nil, paginator.Paginator{}, err
	}

	res := make([]model.RunRecord, len(rows))
	for i, row := range rows {
		res[i] = row.toModel()
	}

	return res, paginator.Paginator{
		Total:       total.Count,
		Count:       int64(len(res)),
		PerPage:     pq.Limit,
		CurrentPage: pq.Page,
	}, nil
}
