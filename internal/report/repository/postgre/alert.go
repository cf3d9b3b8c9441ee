package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/lib/pq"

	"escalation-srv/internal/model"
	"escalation-srv/internal/report/repository"
)

const escalationAlertColumns = `id, alert_type, title, message, severity, escalation_level,
	status, production_line_id, production_line_name, machine_name, metric_value, threshold,
	created_at, resolved_at, last_escalated_at`

func (r *implAlertRepository) List(ctx context.Context, opts repository.ListAlertsOptions) ([]model.EscalationAlert, error) {
	where, args := buildAlertFilter(opts.Filter)

	query := fmt.Sprintf(`SELECT %s FROM escalation_alerts%s ORDER BY created_at DESC`,
		escalationAlertColumns, where)

	var rows []escalationAlertRow
	if err := queries.Raw(query, args...).Bind(ctx, r.db, &rows); err != nil {
		r.l.Errorf(ctx, "internal.report.repository.postgres.ListAlerts.Bind: %v", err)
		return nil, err
	}

	res := make([]model.EscalationAlert, len(rows))
	for i, row := range rows {
		res[i] = row.toModel()
	}
	return res, nil
}

func buildAlertFilter(f repository.AlertFilter) (string, []interface{}) {
	var (
		conds []string
		args  []interface{}
	)

	if f.PeriodStart != nil {
		args = append(args, *f.PeriodStart)
		conds = append(conds, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if f.PeriodEnd != nil {
		args = append(args, *f.PeriodEnd)
		conds = append(conds, fmt.Sprintf("created_at < $%d", len(args)))
	}
	if len(f.AlertTypes) > 0 {
		args = append(args, pq.StringArray(f.AlertTypes))
		conds = append(conds, fmt.Sprintf("alert_type = ANY($%d)", len(args)))
	}
	if len(f.ProductionLineIDs) > 0 {
		args = append(args, pq.StringArray(f.ProductionLineIDs))
		conds = append(conds, fmt.Sprintf("production_line_id = ANY($%d)", len(args)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
