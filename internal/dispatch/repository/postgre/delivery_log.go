package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/aarondl/sqlboiler/v4/queries"

	"escalation-srv/internal/dispatch/repository"
	"escalation-srv/internal/model"
	"escalation-srv/pkg/paginator"
)

const deliveryLogColumns = `id, webhook_config_id, run_id, alert_id, channel_type, recipient,
	alert_type, alert_title, escalation_level, request_payload, response_status, response_body,
	success, error_message, retry_count, max_retries, next_retry_at, last_retry_at, retry_status, sent_at`

func (r *implLogRepository) Create(ctx context.Context, opts repository.CreateLogOptions) (model.DeliveryLog, error) {
	entry := opts.Log
	q := queries.Raw(fmt.Sprintf(`
		INSERT INTO delivery_logs (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`,
		deliveryLogColumns),
		entry.ID,
		null.StringFromPtr(entry.WebhookConfigID),
		null.NewString(entry.RunID, entry.RunID != ""),
		null.NewString(entry.AlertID, entry.AlertID != ""),
		string(entry.ChannelType),
		null.NewString(entry.Recipient, entry.Recipient != ""),
		null.NewString(entry.AlertType, entry.AlertType != ""),
		null.NewString(entry.AlertTitle, entry.AlertTitle != ""),
		null.NewInt(entry.EscalationLevel, entry.EscalationLevel != 0),
		null.NewString(entry.RequestPayload, entry.RequestPayload != ""),
		null.IntFromPtr(entry.ResponseStatus),
		null.NewString(entry.ResponseBody, entry.ResponseBody != ""),
		entry.Success,
		null.NewString(entry.ErrorMessage, entry.ErrorMessage != ""),
		entry.RetryCount, entry.MaxRetries,
		null.TimeFromPtr(entry.NextRetryAt),
		null.TimeFromPtr(entry.LastRetryAt),
		string(entry.RetryStatus),
		entry.SentAt,
	)
	if _, err := q.ExecContext(ctx, r.db); err != nil {
		r.l.Errorf(ctx, "internal.dispatch.repository.postgres.CreateLog.Exec: %v", err)
		return model.DeliveryLog{}, err
	}

	return entry, nil
}

func (r *implLogRepository) UpdateRetry(ctx context.Context, opts repository.UpdateRetryOptions) error {
	result, err := queries.Raw(`
		UPDATE delivery_logs
		SET success = $2, retry_count = $3, retry_status = $4, next_retry_at = $5,
			last_retry_at = $6, response_status = $7,
			error_message = NULLIF($8, '')
		WHERE id = $1`,
		opts.ID, opts.Success, opts.RetryCount, string(opts.RetryStatus),
		null.TimeFromPtr(opts.NextRetryAt), opts.LastRetryAt,
		null.IntFromPtr(opts.ResponseStatus), opts.ErrorMessage,
	).ExecContext(ctx, r.db)
	if err != nil {
		r.l.Errorf(ctx, "internal.dispatch.repository.postgres.UpdateRetry.Exec: %v", err)
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *implLogRepository) ListDue(ctx context.Context, now time.Time) ([]model.DeliveryLog, error) {
	var rows []deliveryLogRow
	err := queries.Raw(fmt.Sprintf(`
		SELECT %s FROM delivery_logs
		WHERE retry_status = $1 AND next_retry_at IS NOT NULL AND next_retry_at <= $2
		ORDER BY next_retry_at ASC`, deliveryLogColumns),
		string(model.RetryStatusPending), now,
	).Bind(ctx, r.db, &rows)
	if err != nil {
		r.l.Errorf(ctx, "internal.dispatch.repository.postgres.ListDue.Bind: %v", err)
		return nil, err
	}

	res := make([]model.DeliveryLog, len(rows))
	for i, row := range rows {
		res[i] = row.toModel()
	}
	return res, nil
}

func (r *implLogRepository) Get(ctx context.Context, opts repository.GetLogsOptions) ([]model.DeliveryLog, paginator.Paginator, error) {
	where, args := r.buildLogFilter(opts)

	var total struct {
		Count int64 `boil:"count"`
	}
	if err := queries.Raw(`SELECT COUNT(*) AS count FROM delivery_logs`+where, args...).
		Bind(ctx, r.db, &total); err != nil {
		r.l.Errorf(ctx, "internal.dispatch.repository.postgres.Get.Count: %v", err)
		return nil, paginator.Paginator{}, err
	}

	pq := opts.PaginateQuery
	pq.Adjust()

	query := fmt.Sprintf(`SELECT %s FROM delivery_logs%s ORDER BY sent_at DESC LIMIT %d OFFSET %d`,
		deliveryLogColumns, where, pq.Limit, pq.Offset())

	var rows []deliveryLogRow
	if err := queries.Raw(query, args...).Bind(ctx, r.db, &rows); err != nil {
		r.l.Errorf(ctx, "internal.dispatch.repository.postgres.Get.Bind: %v", err)
		return nil, paginator.Paginator{}, err
	}

	res := make([]model.DeliveryLog, len(rows))
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
