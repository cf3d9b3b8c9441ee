package postgres

import (
	"fmt"
	"strings"

	"escalation-srv/internal/dispatch/repository"
)

func (r *implConfigRepository) buildConfigListQuery(opts repository.ListConfigsOptions) (string, []interface{}) {
	var (
		conds []string
		args  []interface{}
	)

	if len(opts.IDs) > 0 {
		placeholders := make([]string, len(opts.IDs))
		for i, id := range opts.IDs {
			args = append(args, id)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		conds = append(conds, fmt.Sprintf("id IN (%s)", strings.Join(placeholders, ", ")))
	}
	if opts.ActiveOnly {
		conds = append(conds, "is_active = TRUE")
	}
	if opts.ChannelType != "" {
		args = append(args, string(opts.ChannelType))
		conds = append(conds, fmt.Sprintf("channel_type = $%d", len(args)))
	}

	query := fmt.Sprintf(`SELECT %s FROM webhook_configs`, webhookConfigColumns)
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"

	return query, args
}

func (r *implLogRepository) buildLogFilter(opts repository.GetLogsOptions) (string, []interface{}) {
	var (
		conds []string
		args  []interface{}
	)

	if opts.WebhookConfigID != "" {
		args = append(args, opts.WebhookConfigID)
		conds = append(conds, fmt.Sprintf("webhook_config_id = $%d", len(args)))
	}
	if opts.RunID != "" {
		args = append(args, opts.RunID)
		conds = append(conds, fmt.Sprintf("run_id = $%d", len(args)))
	}
	if opts.AlertID != "" {
		args = append(args, opts.AlertID)
		conds = append(conds, fmt.Sprintf("alert_id = $%d", len(args)))
	}
	if opts.SuccessOnly != nil {
		args = append(args, *opts.SuccessOnly)
		conds = append(conds, fmt.Sprintf("success = $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
