package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/lib/pq"

	"escalation-srv/internal/model"
	"escalation-srv/internal/report/repository"
	postgresPkg "escalation-srv/pkg/postgre"
)

const reportConfigColumns = `id, name, description, frequency, day_of_week, day_of_month,
	time_of_day, timezone, include_stats, include_top_alerts, include_resolved_alerts,
	include_trends, email_recipients, webhook_config_ids, alert_types, production_line_ids,
	is_active, last_run_at, next_run_at, created_at, updated_at`

func (r *implConfigRepository) Create(ctx context.Context, opts repository.CreateConfigOptions) (model.ReportConfig, error) {
	cfg := opts.Config
	q := queries.Raw(fmt.Sprintf(`
		INSERT INTO report_configs (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`,
		reportConfigColumns),
		cfg.ID, cfg.Name,
		null.NewString(cfg.Description, cfg.Description != ""),
		string(cfg.Frequency),
		null.IntFromPtr(cfg.DayOfWeek),
		null.IntFromPtr(cfg.DayOfMonth),
		cfg.TimeOfDay,
		null.NewString(cfg.Timezone, cfg.Timezone != ""),
		cfg.IncludeStats, cfg.IncludeTopAlerts, cfg.IncludeResolvedAlerts, cfg.IncludeTrends,
		pq.StringArray(cfg.EmailRecipients),
		pq.StringArray(cfg.WebhookConfigIDs),
		pq.StringArray(cfg.AlertTypes),
		pq.StringArray(cfg.ProductionLineIDs),
		cfg.IsActive,
		null.TimeFromPtr(cfg.LastRunAt),
		null.TimeFromPtr(cfg.NextRunAt),
		cfg.CreatedAt, cfg.UpdatedAt,
	)
	if _, err := q.ExecContext(ctx, r.db); err != nil {
		r.l.Errorf(ctx, "internal.report.repository.postgres.Create.Exec: %v", err)
		return model.ReportConfig{}, err
	}

	return r.Detail(ctx, cfg.ID)
}

func (r *implConfigRepository) Update(ctx context.Context, opts repository.UpdateConfigOptions) (model.ReportConfig, error) {
	cfg := opts.Config
	result, err := queries.Raw(`
		UPDATE report_configs
		SET name = $2, description = $3, frequency = $4, day_of_week = $5,
			day_of_month = $6, time_of_day = $7, timezone = $8, include_stats = $9,
			include_top_alerts = $10, include_resolved_alerts = $11, include_trends = $12,
			email_recipients = $13, webhook_config_ids = $14, alert_types = $15,
			production_line_ids = $16, is_active = $17, next_run_at = $18, updated_at = $19
		WHERE id = $1`,
		cfg.ID, cfg.Name,
		null.NewString(cfg.Description, cfg.Description != ""),
		string(cfg.Frequency),
		null.IntFromPtr(cfg.DayOfWeek),
		null.IntFromPtr(cfg.DayOfMonth),
		cfg.TimeOfDay,
		null.NewString(cfg.Timezone, cfg.Timezone != ""),
		cfg.IncludeStats, cfg.IncludeTopAlerts, cfg.IncludeResolvedAlerts, cfg.IncludeTrends,
		pq.StringArray(cfg.EmailRecipients),
		pq.StringArray(cfg.WebhookConfigIDs),
		pq.StringArray(cfg.AlertTypes),
		pq.StringArray(cfg.ProductionLineIDs),
		cfg.IsActive,
		null.TimeFromPtr(cfg.NextRunAt),
		cfg.UpdatedAt,
	).ExecContext(ctx, r.db)
	if err != nil {
		r.l.Errorf(ctx, "internal.report.repository.postgres.Update.Exec: %v", err)
		return model.ReportConfig{}, err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return model.ReportConfig{}, repository.ErrNotFound
	}

	return r.Detail(ctx, cfg.ID)
}

func (r *implConfigRepository) Delete(ctx context.Context, id string) error {
	result, err := queries.Raw(`DELETE FROM report_configs WHERE id = $1`, id).ExecContext(ctx, r.db)
	if err != nil {
		r.l.Errorf(ctx, "internal.report.repository.postgres.Delete.Exec: %v", err)
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *implConfigRepository) Detail(ctx context.Context, id string) (model.ReportConfig, error) {
	if err := postgresPkg.IsUUID(id); err != nil {
		r.l.Errorf(ctx, "internal.report.repository.postgres.Detail.IsUUID: %v", err)
		return model.ReportConfig{}, repository.ErrNotFound
	}

	var row reportConfigRow
	err := queries.Raw(fmt.Sprintf(`SELECT %s FROM report_configs WHERE id = $1`, reportConfigColumns), id).
		Bind(ctx, r.db, &row)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.ReportConfig{}, repository.ErrNotFound
		}
		r.l.Errorf(ctx, "internal.report.repository.postgres.Detail.Bind: %v", err)
		return model.ReportConfig{}, err
	}
	return row.toModel(), nil
}

func (r *implConfigRepository) List(ctx context.Context, opts repository.ListConfigsOptions) ([]model.ReportConfig, error) {
	query := fmt.Sprintf(`SELECT %s FROM report_configs`, reportConfigColumns)
	if opts.ActiveOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY created_at DESC`

	var rows []reportConfigRow
	if err := queries.Raw(query).Bind(ctx, r.db, &rows); err != nil {
		r.l.Errorf(ctx, "internal.report.repository.postgres.List.Bind: %v", err)
		return nil, err
	}

	res := make([]model.ReportConfig, len(rows))
	for i, row := range rows {
		res[i] = row.toModel()
	}
	return res, nil
}

func (r *implConfigRepository) ListDue(ctx context.Context, now time.Time) ([]model.ReportConfig, error) {
	var rows []reportConfigRow
	err := queries.Raw(fmt.Sprintf(`
		SELECT %s FROM report_configs
		WHERE is_active = TRUE AND next_run_at IS NOT NULL AND next_run_at <= $1
		ORDER BY next_run_at ASC`, reportConfigColumns), now).
		Bind(ctx, r.db, &rows)
	if err != nil {
		r.l.Errorf(ctx, "internal.report.repository.postgres.ListDue.Bind: %v", err)
		return nil, err
	}

	res := make([]model.ReportConfig, len(rows))
	for i, row := range rows {
		res[i] = row.toModel()
	}
	return res, nil
}

func (r *implConfigRepository) MarkRun(ctx context.Context, opts repository.MarkRunOptions) error {
	result, err := queries.Raw(`
		UPDATE report_configs
		SET last_run_at = $2, next_run_at = $3, updated_at = $2
		WHERE id = $1`,
		opts.ID, opts.LastRunAt, opts.NextRunAt,
	).ExecContext(ctx, r.db)
	if err != nil {
		r.l.Errorf(ctx, "internal.report.repository.postgres.MarkRun.Exec: %v", err)
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}
