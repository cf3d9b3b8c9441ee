package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dispatchinmem "escalation-srv/internal/dispatch/repository/inmem"
	"escalation-srv/internal/escalate"
	"escalation-srv/internal/escalate/repository/inmem"
	"escalation-srv/internal/model"
	"escalation-srv/pkg/log"
	"escalation-srv/pkg/mailer"
	"escalation-srv/pkg/paginator"
	"escalation-srv/pkg/push"

	dispatchrepo "escalation-srv/internal/dispatch/repository"
)

type fakeMailer struct {
	mu   sync.Mutex
	sent []mailer.Message
	err  error
}

func (f *fakeMailer) Send(_ context.Context, msg mailer.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

type fakeSMS struct {
	mu   sync.Mutex
	sent []string
}

func (f *fakeSMS) Send(_ context.Context, to, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, to)
	return nil
}

type fakePush struct {
	mu     sync.Mutex
	topics []string
}

func (f *fakePush) SendToTopic(_ context.Context, topic string, _ push.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.topics = append(f.topics, topic)
	return nil
}

func testLogger() log.Logger {
	return log.Init(log.ZapConfig{Level: log.LevelError, Mode: log.ModeDevelopment, Encoding: log.EncodingConsole})
}

type testEnv struct {
	uc         escalate.UseCase
	alertRepo  *inmem.AlertRepository
	policyRepo *inmem.PolicyRepository
	logRepo    *dispatchinmem.LogRepository
	mailer     *fakeMailer
	sms        *fakeSMS
	push       *fakePush
	now        time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		alertRepo:  inmem.NewAlertRepository(),
		policyRepo: inmem.NewPolicyRepository(),
		logRepo:    dispatchinmem.NewLogRepository(),
		mailer:     &fakeMailer{},
		sms:        &fakeSMS{},
		push:       &fakePush{},
		now:        time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC),
	}

	uc := New(testLogger(), env.alertRepo, env.policyRepo, env.logRepo, env.mailer, env.sms, env.push)
	uc.(*implUseCase).clock = func() time.Time { return env.now }
	env.uc = uc
	return env
}

func (env *testEnv) savePolicy(t *testing.T, policy model.EscalationPolicy) {
	t.Helper()
	require.NoError(t, env.policyRepo.Save(context.Background(), policy))
}

func ladder() model.EscalationPolicy {
	return model.EscalationPolicy{
		Enabled: true,
		Levels: []model.PolicyLevel{
			{Level: 1, Name: "Supervisor", TimeoutMinutes: 15, NotifyEmails: []string{"sup@plant.example"}},
			{Level: 2, Name: "Manager", TimeoutMinutes: 30, NotifyPhones: []string{"+849000001"}, NotifyPush: true},
		},
	}
}

func (env *testEnv) seedAlert(id string, level int, created time.Time, lastEscalated *time.Time) {
	env.alertRepo.Seed(model.EscalationAlert{
		ID:              id,
		AlertType:       "cpk_low",
		Title:           "Cpk below threshold",
		Message:         "Cpk dropped under the configured limit",
		Severity:        model.SeverityWarning,
		EscalationLevel: level,
		Status:          model.AlertStatusPending,
		CreatedAt:       created,
		LastEscalatedAt: lastEscalated,
	})
}

func (env *testEnv) logs(t *testing.T) []model.DeliveryLog {
	t.Helper()
	logs, _, err := env.logRepo.Get(context.Background(), dispatchrepo.GetLogsOptions{
		PaginateQuery: paginator.PaginateQuery{Page: 1, Limit: 50},
	})
	require.NoError(t, err)
	return logs
}

func TestProcessEscalatesAfterTimeout(t *testing.T) {
	env := newTestEnv(t)
	env.savePolicy(t, ladder())
	env.seedAlert("a-1", 0, env.now.Add(-20*time.Minute), nil)

	out, err := env.uc.Process(context.Background(), env.now)
	require.NoError(t, err)

	assert.Equal(t, 1, out.Processed)
	assert.Equal(t, 1, out.Escalated)
	assert.Zero(t, out.Errors)

	alert, ok := env.alertRepo.Detail("a-1")
	require.True(t, ok)
	assert.Equal(t, 1, alert.EscalationLevel)
	assert.Equal(t, model.AlertStatusEscalated, alert.Status)
	require.NotNil(t, alert.LastEscalatedAt)
	assert.Equal(t, env.now, *alert.LastEscalatedAt)

	require.Len(t, env.mailer.sent, 1)
	assert.Equal(t, []string{"sup@plant.example"}, env.mailer.sent[0].To)
	assert.Contains(t, env.mailer.sent[0].Subject, "[ESCALATION L1]")

	logs := env.logs(t)
	require.Len(t, logs, 1)
	assert.Equal(t, model.ChannelEmail, logs[0].ChannelType)
	assert.True(t, logs[0].Success)
	assert.Equal(t, "a-1", logs[0].AlertID)
}

func TestProcessWaitsOutTheTimeout(t *testing.T) {
	env := newTestEnv(t)
	env.savePolicy(t, ladder())
	env.seedAlert("a-1", 0, env.now.Add(-10*time.Minute), nil)

	out, err := env.uc.Process(context.Background(), env.now)
	require.NoError(t, err)

	assert.Equal(t, 1, out.Processed)
	assert.Zero(t, out.Escalated)
	assert.Empty(t, env.mailer.sent)

	alert, _ := env.alertRepo.Detail("a-1")
	assert.Equal(t, 0, alert.EscalationLevel)
}

func TestProcessCountsFromLastEscalation(t *testing.T) {
	env := newTestEnv(t)
	env.savePolicy(t, ladder())

	recently := env.now.Add(-10 * time.Minute)
	env.seedAlert("a-1", 1, env.now.Add(-2*time.Hour), &recently)

	out, err := env.uc.Process(context.Background(), env.now)
	require.NoError(t, err)
	assert.Zero(t, out.Escalated)

	// After the level-2 timeout since the last escalation, it advances and
	// notifies by SMS and push.
	longAgo := env.now.Add(-35 * time.Minute)
	env.seedAlert("a-1", 1, env.now.Add(-2*time.Hour), &longAgo)

	out, err = env.uc.Process(context.Background(), env.now)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Escalated)

	alert, _ := env.alertRepo.Detail("a-1")
	assert.Equal(t, 2, alert.EscalationLevel)
	assert.Equal(t, []string{"+849000001"}, env.sms.sent)
	assert.Equal(t, []string{"escalations"}, env.push.topics)

	logs := env.logs(t)
	require.Len(t, logs, 2)
}

func TestProcessStopsAtTopOfLadder(t *testing.T) {
	env := newTestEnv(t)
	env.savePolicy(t, ladder())
	old := env.now.Add(-5 * time.Hour)
	env.seedAlert("a-1", 2, old, &old)

	out, err := env.uc.Process(context.Background(), env.now)
	require.NoError(t, err)

	assert.Equal(t, 1, out.Processed)
	assert.Zero(t, out.Escalated)
}

func TestProcessDisabledPolicyIsNoOp(t *testing.T) {
	env := newTestEnv(t)
	policy := ladder()
	policy.Enabled = false
	env.savePolicy(t, policy)
	env.seedAlert("a-1", 0, env.now.Add(-5*time.Hour), nil)

	out, err := env.uc.Process(context.Background(), env.now)
	require.NoError(t, err)
	assert.Zero(t, out.Processed)
	assert.Empty(t, env.mailer.sent)
}

func TestProcessIgnoresResolvedAlerts(t *testing.T) {
	env := newTestEnv(t)
	env.savePolicy(t, ladder())

	resolved := env.now.Add(-time.Hour)
	env.alertRepo.Seed(model.EscalationAlert{
		ID:         "done",
		AlertType:  "cpk_low",
		Title:      "Cpk below threshold",
		Status:     model.AlertStatusResolved,
		CreatedAt:  env.now.Add(-5 * time.Hour),
		ResolvedAt: &resolved,
	})

	out, err := env.uc.Process(context.Background(), env.now)
	require.NoError(t, err)
	assert.Zero(t, out.Processed)
}

func TestTestLevelTargetsOneRung(t *testing.T) {
	env := newTestEnv(t)
	env.savePolicy(t, ladder())

	out, err := env.uc.TestLevel(context.Background(), 2)
	require.NoError(t, err)

	assert.Zero(t, out.EmailsSent)
	assert.Equal(t, 1, out.SMSSent)
	assert.True(t, out.PushSent)
	// The alert store stays untouched.
	assert.Zero(t, func() int {
		alerts, _ := env.alertRepo.ListUnresolved(context.Background())
		return len(alerts)
	}())

	_, err = env.uc.TestLevel(context.Background(), 9)
	assert.ErrorIs(t, err, escalate.ErrLevelNotFound)
}

func TestGetPolicyFallsBackToDefault(t *testing.T) {
	env := newTestEnv(t)

	policy, err := env.uc.GetPolicy(context.Background())
	require.NoError(t, err)
	assert.False(t, policy.Enabled)
	require.Len(t, policy.Levels, 3)
	assert.Equal(t, "Supervisor", policy.Levels[0].Name)
	assert.Equal(t, 15, policy.Levels[0].TimeoutMinutes)
}

func TestUpdatePolicyValidation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.uc.UpdatePolicy(context.Background(), model.EscalationPolicy{
		Enabled: true,
		Levels:  []model.PolicyLevel{{Level: 2, Name: "Manager", TimeoutMinutes: 30}},
	})
	assert.ErrorIs(t, err, escalate.ErrInvalidPolicy)

	_, err = env.uc.UpdatePolicy(context.Background(), model.EscalationPolicy{
		Enabled: true,
		Levels:  []model.PolicyLevel{{Level: 1, Name: "Supervisor", TimeoutMinutes: 0}},
	})
	assert.ErrorIs(t, err, escalate.ErrInvalidPolicy)

	saved, err := env.uc.UpdatePolicy(context.Background(), ladder())
	require.NoError(t, err)
	assert.True(t, saved.Enabled)

	got, err := env.uc.GetPolicy(context.Background())
	require.NoError(t, err)
	assert.Equal(t, saved, got)
}
