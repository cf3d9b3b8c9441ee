package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aarondl/null/v8"
	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/lib/pq"

	"escalation-srv/internal/dispatch/repository"
	"escalation-srv/internal/model"
	postgresPkg "escalation-srv/pkg/postgre"
)

const webhookConfigColumns = `id, name, channel_type, webhook_url, slack_channel, slack_mentions,
	teams_title, custom_headers, custom_body_template, include_details, is_active, created_at, updated_at`

func (r *implConfigRepository) Create(ctx context.Context, opts repository.CreateConfigOptions) (model.WebhookConfig, error) {
	cfg := opts.Config
	q := queries.Raw(fmt.Sprintf(`
		INSERT INTO webhook_configs (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`, webhookConfigColumns),
		cfg.ID, cfg.Name, string(cfg.ChannelType), cfg.WebhookURL,
		null.NewString(cfg.SlackChannel, cfg.SlackChannel != ""),
		pq.StringArray(cfg.SlackMentions),
		null.NewString(cfg.TeamsTitle, cfg.TeamsTitle != ""),
		marshalHeaders(cfg.CustomHeaders),
		null.NewString(cfg.CustomBodyTemplate, cfg.CustomBodyTemplate != ""),
		cfg.IncludeDetails, cfg.IsActive, cfg.CreatedAt, cfg.UpdatedAt,
	)
	if _, err := q.ExecContext(ctx, r.db); err != nil {
		r.l.Errorf(ctx, "internal.dispatch.repository.postgres.Create.Exec: %v", err)
		return model.WebhookConfig{}, err
	}

	return r.Detail(ctx, cfg.ID)
}

func (r *implConfigRepository) Update(ctx context.Context, opts repository.UpdateConfigOptions) (model.WebhookConfig, error) {
	cfg := opts.Config
	result, err := queries.Raw(`
		UPDATE webhook_configs
		SET name = $2, channel_type = $3, webhook_url = $4, slack_channel = $5,
			slack_mentions = $6, teams_title = $7, custom_headers = $8,
			custom_body_template = $9, include_details = $10, is_active = $11,
			updated_at = $12
		WHERE id = $1`,
		cfg.ID, cfg.Name, string(cfg.ChannelType), cfg.WebhookURL,
		null.NewString(cfg.SlackChannel, cfg.SlackChannel != ""),
		pq.StringArray(cfg.SlackMentions),
		null.NewString(cfg.TeamsTitle, cfg.TeamsTitle != ""),
		marshalHeaders(cfg.CustomHeaders),
		null.NewString(cfg.CustomBodyTemplate, cfg.CustomBodyTemplate != ""),
		cfg.IncludeDetails, cfg.IsActive, cfg.UpdatedAt,
	).ExecContext(ctx, r.db)
	if err != nil {
		r.l.Errorf(ctx, "internal.dispatch.repository.postgres.Update.Exec: %v", err)
		return model.WebhookConfig{}, err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return model.WebhookConfig{}, repository.ErrNotFound
	}

	return r.Detail(ctx, cfg.ID)
}

func (r *implConfigRepository) Delete(ctx context.Context, id string) error {
	result, err := queries.Raw(`DELETE FROM webhook_configs WHERE id = $1`, id).ExecContext(ctx, r.db)
	if err != nil {
		r.l.Errorf(ctx, "internal.dispatch.repository.postgres.Delete.Exec: %v", err)
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *implConfigRepository) Detail(ctx context.Context, id string) (model.WebhookConfig, error) {
	if err := postgresPkg.IsUUID(id); err != nil {
		r.l.Errorf(ctx, "internal.dispatch.repository.postgres.Detail.IsUUID: %v", err)
		return model.WebhookConfig{}, repository.ErrNotFound
	}

	var row webhookConfigRow
	err := queries.Raw(fmt.Sprintf(`SELECT %s FROM webhook_configs WHERE id = $1`, webhookConfigColumns), id).
		Bind(ctx, r.db, &row)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.WebhookConfig{}, repository.ErrNotFound
		}
		r.l.Errorf(ctx, "internal.dispatch.repository.postgres.Detail.Bind: %v", err)
		return model.WebhookConfig{}, err
	}
	return row.toModel(), nil
}

func (r *implConfigRepository) List(ctx context.Context, opts repository.ListConfigsOptions) ([]model.WebhookConfig, error) {
	if len(opts.IDs) > 0 {
		if err := postgresPkg.ValidateUUIDs(opts.IDs); err != nil {
			r.l.Errorf(ctx, "internal.dispatch.repository.postgres.List.ValidateUUIDs: %v", err)
			return nil, err
		}
	}

	query, args := r.buildConfigListQuery(opts)

	var rows []webhookConfigRow
	if err := queries.Raw(query, args...).Bind(ctx, r.db, &rows); err != nil {
		r.l.Errorf(ctx, "internal.dispatch.repository.postgres.List.Bind: %v", err)
		return nil, err
	}

	res := make([]model.WebhookConfig, len(rows))
	for i, row := range rows {
		res[i] = row.toModel()
	}
	return res, nil
}
