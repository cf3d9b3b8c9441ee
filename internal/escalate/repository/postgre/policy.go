package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/friendsofgo/errors"

	"escalation-srv/internal/model"
)

// Policy storage uses the system_settings key/value table so operators can
// edit the ladder without a schema change.
const (
	settingEnabled = "escalation_enabled"
	settingLevels  = "escalation_config"
)

func (r *implPolicyRepository) Get(ctx context.Context) (model.EscalationPolicy, bool, error) {
	enabledRaw, okEnabled, err := r.getSetting(ctx, settingEnabled)
	if err != nil {
		return model.EscalationPolicy{}, false, err
	}
	levelsRaw, okLevels, err := r.getSetting(ctx, settingLevels)
	if err != nil {
		return model.EscalationPolicy{}, false, err
	}
	if !okEnabled && !okLevels {
		return model.EscalationPolicy{}, false, nil
	}

	policy := model.EscalationPolicy{Enabled: enabledRaw == "true"}
	if okLevels {
		if err := json.Unmarshal([]byte(levelsRaw), &policy.Levels); err != nil {
			return model.EscalationPolicy{}, false, errors.Wrap(err, "decode escalation levels")
		}
	}
	return policy, true, nil
}

func (r *implPolicyRepository) Save(ctx context.Context, policy model.EscalationPolicy) error {
	enabled := "false"
	if policy.Enabled {
		enabled = "true"
	}
	if err := r.putSetting(ctx, settingEnabled, enabled); err != nil {
		return err
	}

	levels, err := json.Marshal(policy.Levels)
	if err != nil {
		return errors.Wrap(err, "encode escalation levels")
	}
	return r.putSetting(ctx, settingLevels, string(levels))
}

func (r *implPolicyRepository) getSetting(ctx context.Context, key string) (string, bool, error) {
	var row struct {
		Value string `boil:"value"`
	}
	err := queries.Raw(`SELECT value FROM system_settings WHERE key = $1`, key).
		Bind(ctx, r.db, &row)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", false, nil
		}
		r.l.Errorf(ctx, "internal.escalate.repository.postgres.getSetting.Bind: %v", err)
		return "", false, err
	}
	return row.Value, true, nil
}

func (r *implPolicyRepository) putSetting(ctx context.Context, key, value string) error {
	_, err := queries.Raw(`
		INSERT INTO system_settings (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		key, value,
	).ExecContext(ctx, r.db)
	if err != nil {
		r.l.Errorf(ctx, "internal.escalate.repository.postgres.putSetting.Exec: %v", err)
		return err
	}
	return nil
}
