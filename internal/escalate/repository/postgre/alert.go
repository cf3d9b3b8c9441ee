package postgres

import (
	"context"
	"fmt"

	"github.com/aarondl/null/v8"
	"github.com/aarondl/sqlboiler/v4/queries"

	"escalation-srv/internal/escalate/repository"
	"escalation-srv/internal/model"
)

const alertColumns = `id, alert_type, title, message, severity, escalation_level,
	status, production_line_id, production_line_name, machine_name, metric_value, threshold,
	created_at, resolved_at, last_escalated_at`

// alertRow mirrors the escalation_alerts table for Bind.
type alertRow struct {
	ID                 string       `boil:"id"`
	AlertType          string       `boil:"alert_type"`
	Title              string       `boil:"title"`
	Message            null.String  `boil:"message"`
	Severity           string       `boil:"severity"`
	EscalationLevel    int          `boil:"escalation_level"`
	Status             string       `boil:"status"`
	ProductionLineID   null.String  `boil:"production_line_id"`
	ProductionLineName null.String  `boil:"production_line_name"`
	MachineName        null.String  `boil:"machine_name"`
	MetricValue        null.Float64 `boil:"metric_value"`
	Threshold          null.Float64 `boil:"threshold"`
	CreatedAt          null.Time    `boil:"created_at"`
	ResolvedAt         null.Time    `boil:"resolved_at"`
	LastEscalatedAt    null.Time    `boil:"last_escalated_at"`
}

func (r alertRow) toModel() model.EscalationAlert {
	alert := model.EscalationAlert{
		ID:                 r.ID,
		AlertType:          r.AlertType,
		Title:              r.Title,
		Message:            r.Message.String,
		Severity:           model.Severity(r.Severity),
		EscalationLevel:    r.EscalationLevel,
		Status:             model.AlertStatus(r.Status),
		ProductionLineID:   r.ProductionLineID.String,
		ProductionLineName: r.ProductionLineName.String,
		MachineName:        r.MachineName.String,
		CreatedAt:          r.CreatedAt.Time,
	}
	if r.MetricValue.Valid {
		v := r.MetricValue.Float64
		alert.MetricValue = &v
	}
	if r.Threshold.Valid {
		v := r.Threshold.Float64
		alert.Threshold = &v
	}
	if r.ResolvedAt.Valid {
		t := r.ResolvedAt.Time
		alert.ResolvedAt = &t
	}
	if r.LastEscalatedAt.Valid {
		t := r.LastEscalatedAt.Time
		alert.LastEscalatedAt = &t
	}
	return alert
}

func (r *implAlertRepository) ListUnresolved(ctx context.Context) ([]model.EscalationAlert, error) {
	var rows []alertRow
	err := queries.Raw(fmt.Sprintf(`
		SELECT %s FROM escalation_alerts
		WHERE status <> $1
		ORDER BY created_at ASC`, alertColumns),
		string(model.AlertStatusResolved),
	).Bind(ctx, r.db, &rows)
	if err != nil {
		r.l.Errorf(ctx, "internal.escalate.repository.postgres.ListUnresolved.Bind: %v", err)
		return nil, err
	}

	res := make([]model.EscalationAlert, len(rows))
	for i, row := range rows {
		res[i] = row.toModel()
	}
	return res, nil
}

func (r *implAlertRepository) UpdateEscalation(ctx context.Context, opts repository.UpdateEscalationOptions) error {
	result, err := queries.Raw(`
		UPDATE escalation_alerts
		SET escalation_level = $2, status = $3, last_escalated_at = $4
		WHERE id = $1`,
		opts.ID, opts.EscalationLevel, string(model.AlertStatusEscalated), opts.LastEscalatedAt,
	).ExecContext(ctx, r.db)
	if err != nil {
		r.l.Errorf(ctx, "internal.escalate.repository.postgres.UpdateEscalation.Exec: %v", err)
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}
