package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dispatchrepo "escalation-srv/internal/dispatch/repository"
	dispatchinmem "escalation-srv/internal/dispatch/repository/inmem"
	dispatchuc "escalation-srv/internal/dispatch/usecase"
	"escalation-srv/internal/model"
	"escalation-srv/internal/report"
	"escalation-srv/internal/report/repository"
	"escalation-srv/internal/report/repository/inmem"
	"escalation-srv/pkg/log"
	"escalation-srv/pkg/mailer"
	"escalation-srv/pkg/paginator"
	"escalation-srv/pkg/webhook"
)

// fakeMailer is a programmable mailer.Mailer double.
type fakeMailer struct {
	mu      sync.Mutex
	sent    []mailer.Message
	failFor map[string]error
}

func (f *fakeMailer) Send(_ context.Context, msg mailer.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, to := range msg.To {
		if err, ok := f.failFor[to]; ok {
			return err
		}
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeMailer) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

// fakeSender is a programmable webhook.Sender double.
type fakeSender struct {
	mu       sync.Mutex
	requests []webhook.Request
	status   int
}

func (f *fakeSender) Send(_ context.Context, req webhook.Request) (webhook.Result, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()
	return webhook.Result{
		StatusCode: f.status,
		Success:    f.status >= 200 && f.status < 300,
	}, nil
}

func (f *fakeSender) Close() error { return nil }

func testLogger() log.Logger {
	return log.Init(log.ZapConfig{Level: log.LevelError, Mode: log.ModeDevelopment, Encoding: log.EncodingConsole})
}

type testEnv struct {
	uc          report.UseCase
	configRepo  *inmem.ConfigRepository
	historyRepo *inmem.HistoryRepository
	alertRepo   *inmem.AlertRepository
	logRepo     *dispatchinmem.LogRepository
	mailer      *fakeMailer
	sender      *fakeSender
	now         time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		configRepo:  inmem.NewConfigRepository(),
		historyRepo: inmem.NewHistoryRepository(),
		alertRepo:   inmem.NewAlertRepository(),
		mailer:      &fakeMailer{failFor: map[string]error{}},
		sender:      &fakeSender{status: 200},
		now:         time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC),
	}

	l := testLogger()
	webhookConfigs := dispatchinmem.NewConfigRepository()
	_, err := webhookConfigs.Create(context.Background(), dispatchrepo.CreateConfigOptions{Config: model.WebhookConfig{
		ID:          "wh-1",
		Name:        "line webhook",
		ChannelType: model.ChannelSlack,
		WebhookURL:  "https://hooks.example.com/wh-1",
		IsActive:    true,
		CreatedAt:   env.now,
	}})
	require.NoError(t, err)

	env.logRepo = dispatchinmem.NewLogRepository()
	dispatchUC := dispatchuc.New(l, env.sender, webhookConfigs, env.logRepo, 4)

	uc := New(l, env.configRepo, env.historyRepo, env.alertRepo, dispatchUC, env.mailer, 4)
	impl := uc.(*implUseCase)
	impl.clock = func() time.Time { return env.now }
	env.uc = uc
	return env
}

func (env *testEnv) seedConfig(t *testing.T, id string, mutate func(*model.ReportConfig)) model.ReportConfig {
	t.Helper()
	due := env.now.Add(-time.Minute)
	cfg := model.ReportConfig{
		ID:               id,
		Name:             "daily line report",
		Frequency:        model.FrequencyDaily,
		TimeOfDay:        "08:00",
		Timezone:         "UTC",
		IncludeStats:     true,
		IncludeTrends:    true,
		IncludeTopAlerts: true,
		EmailRecipients:  []string{"qa@plant.example"},
		WebhookConfigIDs: []string{"wh-1"},
		IsActive:         true,
		NextRunAt:        &due,
		CreatedAt:        env.now.Add(-24 * time.Hour),
	}
	if mutate != nil {
		mutate(&cfg)
	}
	created, err := env.configRepo.Create(context.Background(), repository.CreateConfigOptions{Config: cfg})
	require.NoError(t, err)
	return created
}

func (env *testEnv) seedAlerts(count int) {
	for i := 0; i < count; i++ {
		env.alertRepo.Seed(model.EscalationAlert{
			ID:        "alert-" + string(rune('a'+i)),
			AlertType: "cpk_low",
			Title:     "Cpk below threshold",
			Severity:  model.SeverityWarning,
			Status:    model.AlertStatusPending,
			CreatedAt: env.now.Add(-2 * time.Hour),
		})
	}
}

func (env *testEnv) history(t *testing.T, configID string) []model.RunRecord {
	t.Helper()
	runs, _, err := env.historyRepo.Get(context.Background(), repository.GetRunsOptions{
		ConfigID:      configID,
		PaginateQuery: paginator.PaginateQuery{Page: 1, Limit: 50},
	})
	require.NoError(t, err)
	return runs
}

func TestSendNowDeliversAndRecords(t *testing.T) {
	env := newTestEnv(t)
	env.seedConfig(t, "rc-1", nil)
	env.seedAlerts(3)

	out, err := env.uc.SendNow(context.Background(), "rc-1")
	require.NoError(t, err)

	assert.Equal(t, model.RunStatusSent, out.Status)
	assert.Equal(t, 1, out.EmailsSent)
	assert.Equal(t, 1, out.WebhooksSent)
	assert.Empty(t, out.Errors)
	assert.Equal(t, 1, env.mailer.sentCount())

	runs := env.history(t, "rc-1")
	require.Len(t, runs, 1)
	assert.Equal(t, 3, runs[0].TotalAlerts)
	assert.Equal(t, model.RunStatusSent, runs[0].Status)

	var data report.ReportData
	require.NoError(t, json.Unmarshal([]byte(runs[0].ReportData), &data))
	assert.Equal(t, 3, data.Stats.TotalAlerts)

	cfg, err := env.configRepo.Detail(context.Background(), "rc-1")
	require.NoError(t, err)
	require.NotNil(t, cfg.LastRunAt)
	assert.Equal(t, env.now, *cfg.LastRunAt)
	require.NotNil(t, cfg.NextRunAt)
	assert.True(t, cfg.NextRunAt.After(env.now))
}

func TestSendNowUnknownConfig(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.uc.SendNow(context.Background(), "missing")
	assert.ErrorIs(t, err, report.ErrConfigNotFound)
}

func TestSendNowWebhookSummaryNote(t *testing.T) {
	env := newTestEnv(t)
	env.seedConfig(t, "rc-1", func(cfg *model.ReportConfig) {
		cfg.EmailRecipients = nil
	})
	env.seedAlerts(2)

	out, err := env.uc.SendNow(context.Background(), "rc-1")
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusSent, out.Status)

	require.Len(t, env.sender.requests, 1)
	assert.Contains(t, string(env.sender.requests[0].Body), "Total: 2, Resolved: 0")
}

func TestSendNowLinksWebhookLogToRun(t *testing.T) {
	env := newTestEnv(t)
	env.seedConfig(t, "rc-1", nil)
	env.seedAlerts(1)

	_, err := env.uc.SendNow(context.Background(), "rc-1")
	require.NoError(t, err)

	runs := env.history(t, "rc-1")
	require.Len(t, runs, 1)

	logs, _, err := env.logRepo.Get(context.Background(), dispatchrepo.GetLogsOptions{
		RunID:         runs[0].ID,
		PaginateQuery: paginator.PaginateQuery{Page: 1, Limit: 10},
	})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, runs[0].ID, logs[0].RunID)
	assert.True(t, logs[0].Success)
}

func TestRunDuePartialWhenOneEmailFails(t *testing.T) {
	env := newTestEnv(t)
	env.seedConfig(t, "rc-1", func(cfg *model.ReportConfig) {
		cfg.EmailRecipients = []string{"qa@plant.example", "down@plant.example"}
	})
	env.mailer.failFor["down@plant.example"] = assert.AnError

	out, err := env.uc.RunDue(context.Background(), env.now)
	require.NoError(t, err)

	assert.Equal(t, 1, out.Due)
	assert.Equal(t, 1, out.Partial)
	assert.Zero(t, out.Sent)

	runs := env.history(t, "rc-1")
	require.Len(t, runs, 1)
	assert.Equal(t, model.RunStatusPartial, runs[0].Status)
	assert.Contains(t, runs[0].ErrorMessage, "down@plant.example")
}

func TestRunDueAdvancesScheduleOnFailedRun(t *testing.T) {
	env := newTestEnv(t)
	env.seedConfig(t, "rc-1", func(cfg *model.ReportConfig) {
		cfg.EmailRecipients = []string{"down@plant.example"}
		cfg.WebhookConfigIDs = nil
	})
	env.mailer.failFor["down@plant.example"] = assert.AnError

	out, err := env.uc.RunDue(context.Background(), env.now)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Failed)

	// A failed run must still push NextRunAt forward, or the config would
	// come due again on the next tick.
	cfg, err := env.configRepo.Detail(context.Background(), "rc-1")
	require.NoError(t, err)
	require.NotNil(t, cfg.NextRunAt)
	assert.True(t, cfg.NextRunAt.After(env.now))

	runs := env.history(t, "rc-1")
	require.Len(t, runs, 1)
	assert.Equal(t, model.RunStatusFailed, runs[0].Status)
}

func TestRunDueIgnoresNotDueAndInactive(t *testing.T) {
	env := newTestEnv(t)
	env.seedConfig(t, "rc-future", func(cfg *model.ReportConfig) {
		future := env.now.Add(time.Hour)
		cfg.NextRunAt = &future
	})
	env.seedConfig(t, "rc-off", func(cfg *model.ReportConfig) {
		cfg.IsActive = false
	})

	out, err := env.uc.RunDue(context.Background(), env.now)
	require.NoError(t, err)
	assert.Zero(t, out.Due)
	assert.Equal(t, 0, env.mailer.sentCount())
}

func TestRunDueRunsEveryDueConfig(t *testing.T) {
	env := newTestEnv(t)
	for _, id := range []string{"rc-1", "rc-2", "rc-3"} {
		env.seedConfig(t, id, nil)
	}

	out, err := env.uc.RunDue(context.Background(), env.now)
	require.NoError(t, err)

	assert.Equal(t, 3, out.Due)
	assert.Equal(t, 3, out.Sent)
	assert.Equal(t, 3, env.mailer.sentCount())
	for _, id := range []string{"rc-1", "rc-2", "rc-3"} {
		assert.Len(t, env.history(t, id), 1)
	}
}

func TestRunDueTwiceDoesNotDoubleSend(t *testing.T) {
	env := newTestEnv(t)
	env.seedConfig(t, "rc-1", nil)
	env.seedAlerts(2)

	first, err := env.uc.RunDue(context.Background(), env.now)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Due)
	assert.Equal(t, 1, first.Sent)

	// The first sweep advanced NextRunAt past now, so the config is no
	// longer due.
	second, err := env.uc.RunDue(context.Background(), env.now)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Due)
	assert.Equal(t, 0, second.Sent)

	assert.Len(t, env.history(t, "rc-1"), 1)
	assert.Equal(t, 1, env.mailer.sentCount())
	assert.Len(t, env.sender.requests, 1)
}

func TestPreviewLeavesNoTrace(t *testing.T) {
	env := newTestEnv(t)
	env.seedConfig(t, "rc-1", nil)
	env.seedAlerts(2)

	data, err := env.uc.Preview(context.Background(), report.PreviewInput{ConfigID: "rc-1"})
	require.NoError(t, err)
	assert.Equal(t, 2, data.Stats.TotalAlerts)

	assert.Empty(t, env.history(t, "rc-1"))
	assert.Equal(t, 0, env.mailer.sentCount())
	assert.Empty(t, env.sender.requests)

	cfg, err := env.configRepo.Detail(context.Background(), "rc-1")
	require.NoError(t, err)
	assert.Nil(t, cfg.LastRunAt)
}

func TestPreviewMixedSeverityPeriod(t *testing.T) {
	env := newTestEnv(t)
	env.seedConfig(t, "rc-1", func(cfg *model.ReportConfig) {
		cfg.EmailRecipients = []string{"qa@plant.example", "shift-lead@plant.example"}
	})

	resolved := env.now.Add(-time.Hour)
	seed := []struct {
		id       string
		severity model.Severity
		status   model.AlertStatus
	}{
		{"al-1", model.SeverityCritical, model.AlertStatusResolved},
		{"al-2", model.SeverityWarning, model.AlertStatusResolved},
		{"al-3", model.SeverityWarning, model.AlertStatusResolved},
		{"al-4", model.SeverityInfo, model.AlertStatusPending},
		{"al-5", model.SeverityInfo, model.AlertStatusPending},
	}
	for _, s := range seed {
		alert := model.EscalationAlert{
			ID:        s.id,
			AlertType: "cpk_low",
			Title:     "Cpk below threshold",
			Severity:  s.severity,
			Status:    s.status,
			CreatedAt: env.now.Add(-3 * time.Hour),
		}
		if s.status == model.AlertStatusResolved {
			rt := resolved
			alert.ResolvedAt = &rt
		}
		env.alertRepo.Seed(alert)
	}

	data, err := env.uc.Preview(context.Background(), report.PreviewInput{ConfigID: "rc-1"})
	require.NoError(t, err)

	assert.Equal(t, 5, data.Stats.TotalAlerts)
	assert.Equal(t, 3, data.Stats.ResolvedAlerts)
	assert.Equal(t, 2, data.Stats.PendingAlerts)

	sum := 0
	for _, sc := range data.BySeverity {
		sum += sc.Count
	}
	assert.Equal(t, 5, sum)
}

func TestCreateConfigValidation(t *testing.T) {
	env := newTestEnv(t)

	base := report.CreateConfigInput{
		Name:            "daily",
		Frequency:       model.FrequencyDaily,
		TimeOfDay:       "08:00",
		Timezone:        "UTC",
		EmailRecipients: []string{"qa@plant.example"},
		IsActive:        true,
	}

	created, err := env.uc.CreateConfig(context.Background(), base)
	require.NoError(t, err)
	require.NotNil(t, created.NextRunAt)
	assert.True(t, created.NextRunAt.After(env.now))

	noName := base
	noName.Name = ""
	_, err = env.uc.CreateConfig(context.Background(), noName)
	assert.ErrorIs(t, err, report.ErrNameRequired)

	noTargets := base
	noTargets.EmailRecipients = nil
	_, err = env.uc.CreateConfig(context.Background(), noTargets)
	assert.ErrorIs(t, err, report.ErrNoRecipients)

	badTime := base
	badTime.TimeOfDay = "25:99"
	_, err = env.uc.CreateConfig(context.Background(), badTime)
	assert.ErrorIs(t, err, report.ErrInvalidSchedule)
}

func TestUpdateConfigRecomputesNextRunOnRecurrenceChange(t *testing.T) {
	env := newTestEnv(t)
	cfg := env.seedConfig(t, "rc-1", func(cfg *model.ReportConfig) {
		keep := env.now.Add(30 * time.Minute)
		cfg.NextRunAt = &keep
	})

	input := report.UpdateConfigInput{
		ID: cfg.ID,
		CreateConfigInput: report.CreateConfigInput{
			Name:             cfg.Name,
			Frequency:        cfg.Frequency,
			TimeOfDay:        cfg.TimeOfDay,
			Timezone:         cfg.Timezone,
			EmailRecipients:  cfg.EmailRecipients,
			WebhookConfigIDs: cfg.WebhookConfigIDs,
			IsActive:         cfg.IsActive,
		},
	}

	// Unchanged recurrence keeps the stored slot.
	updated, err := env.uc.UpdateConfig(context.Background(), input)
	require.NoError(t, err)
	require.NotNil(t, updated.NextRunAt)
	assert.Equal(t, env.now.Add(30*time.Minute), *updated.NextRunAt)

	// A new time of day invalidates it.
	input.TimeOfDay = "09:30"
	updated, err = env.uc.UpdateConfig(context.Background(), input)
	require.NoError(t, err)
	require.NotNil(t, updated.NextRunAt)
	assert.Equal(t, 9, updated.NextRunAt.UTC().Hour())
	assert.Equal(t, 30, updated.NextRunAt.UTC().Minute())
	assert.True(t, updated.NextRunAt.After(env.now))
}
