package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"escalation-srv/internal/channel"
	"escalation-srv/internal/dispatch"
	"escalation-srv/internal/dispatch/repository"
	"escalation-srv/internal/dispatch/repository/inmem"
	"escalation-srv/internal/model"
	"escalation-srv/pkg/log"
	"escalation-srv/pkg/webhook"
)

// fakeSender is a programmable webhook.Sender double.
type fakeSender struct {
	mu       sync.Mutex
	requests []webhook.Request
	status   int
	err      error
}

func (f *fakeSender) Send(_ context.Context, req webhook.Request) (webhook.Result, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()
	if f.err != nil {
		return webhook.Result{}, f.err
	}
	return webhook.Result{
		StatusCode: f.status,
		Success:    f.status >= 200 && f.status < 300,
	}, nil
}

func (f *fakeSender) Close() error { return nil }

func testLogger() log.Logger {
	return log.Init(log.ZapConfig{Level: log.LevelError, Mode: log.ModeDevelopment, Encoding: log.EncodingConsole})
}

func newTestUseCase(t *testing.T, sender *fakeSender) (dispatch.UseCase, *inmem.ConfigRepository, *inmem.LogRepository) {
	t.Helper()
	cfgRepo := inmem.NewConfigRepository()
	logRepo := inmem.NewLogRepository()
	return New(testLogger(), sender, cfgRepo, logRepo, 4), cfgRepo, logRepo
}

func seedConfig(t *testing.T, repo *inmem.ConfigRepository, id string, active bool) {
	t.Helper()
	_, err := repo.Create(context.Background(), repository.CreateConfigOptions{Config: model.WebhookConfig{
		ID:          id,
		Name:        "cfg " + id,
		ChannelType: model.ChannelSlack,
		WebhookURL:  "https://hooks.example.com/" + id,
		IsActive:    active,
		CreatedAt:   time.Now(),
	}})
	require.NoError(t, err)
}

func sampleNote() channel.Notification {
	return channel.Notification{
		AlertID:         "a-1",
		AlertType:       "cpk_low",
		Title:           "CPK below threshold",
		Message:         "CPK dropped",
		Severity:        model.SeverityCritical,
		EscalationLevel: 1,
		Timestamp:       time.Now(),
	}
}

func TestSendSuccess(t *testing.T) {
	sender := &fakeSender{status: 200}
	uc, cfgRepo, _ := newTestUseCase(t, sender)
	seedConfig(t, cfgRepo, "w1", true)

	out, err := uc.Send(context.Background(), "w1", sampleNote())
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, model.RetryStatusNone, out.Log.RetryStatus)
	assert.Nil(t, out.Log.NextRetryAt)
	require.NotNil(t, out.Log.ResponseStatus)
	assert.Equal(t, 200, *out.Log.ResponseStatus)
	assert.NotEmpty(t, out.Log.RequestPayload)
}

func TestSendFailureSchedulesRetry(t *testing.T) {
	sender := &fakeSender{status: 500}
	uc, cfgRepo, _ := newTestUseCase(t, sender)
	seedConfig(t, cfgRepo, "w1", true)

	out, err := uc.Send(context.Background(), "w1", sampleNote())
	require.NoError(t, err)
	assert.False(t, out.Success)
	assert.Equal(t, model.RetryStatusPending, out.Log.RetryStatus)
	require.NotNil(t, out.Log.NextRetryAt)
	assert.WithinDuration(t, out.Log.SentAt.Add(time.Minute), *out.Log.NextRetryAt, time.Second)
}

func TestSendUnknownConfig(t *testing.T) {
	uc, _, _ := newTestUseCase(t, &fakeSender{status: 200})

	_, err := uc.Send(context.Background(), "missing", sampleNote())
	assert.ErrorIs(t, err, dispatch.ErrConfigNotFound)
}

func TestSendInactiveConfig(t *testing.T) {
	sender := &fakeSender{status: 200}
	uc, cfgRepo, _ := newTestUseCase(t, sender)
	seedConfig(t, cfgRepo, "w1", false)

	_, err := uc.Send(context.Background(), "w1", sampleNote())
	assert.ErrorIs(t, err, dispatch.ErrConfigInactive)
	assert.Empty(t, sender.requests)
}

func TestSendToManyIsolation(t *testing.T) {
	sender := &fakeSender{status: 200}
	uc, cfgRepo, _ := newTestUseCase(t, sender)
	seedConfig(t, cfgRepo, "w1", true)
	seedConfig(t, cfgRepo, "w2", false)
	seedConfig(t, cfgRepo, "w3", true)

	out := uc.SendToMany(context.Background(), []string{"w1", "w2", "missing", "w3"}, sampleNote())
	assert.Equal(t, 2, out.Sent)
	assert.Equal(t, 2, out.Failed)
	require.Len(t, out.Errors, 2)
	// Errors stay in input order: inactive w2 first, then the missing id.
	assert.Contains(t, out.Errors[0], "w2")
	assert.Contains(t, out.Errors[1], "missing")
}

func TestProcessRetriesSuccessClearsPending(t *testing.T) {
	sender := &fakeSender{status: 500}
	uc, cfgRepo, logRepo := newTestUseCase(t, sender)
	seedConfig(t, cfgRepo, "w1", true)

	out, err := uc.Send(context.Background(), "w1", sampleNote())
	require.NoError(t, err)
	require.Equal(t, model.RetryStatusPending, out.Log.RetryStatus)

	// Upstream recovers before the retry fires.
	sender.status = 200
	later := out.Log.NextRetryAt.Add(time.Second)
	res, err := uc.ProcessRetries(context.Background(), later)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Processed)
	assert.Equal(t, 1, res.Succeeded)
	assert.Equal(t, 0, res.Exhausted)

	due, err := logRepo.ListDue(context.Background(), later.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, due, "cleared entry must not come due again")
}

func TestProcessRetriesExhaustsAfterMaxRetries(t *testing.T) {
	sender := &fakeSender{status: 500}
	uc, cfgRepo, logRepo := newTestUseCase(t, sender)
	seedConfig(t, cfgRepo, "w1", true)

	out, err := uc.Send(context.Background(), "w1", sampleNote())
	require.NoError(t, err)

	now := *out.Log.NextRetryAt
	for i := 1; i <= model.DefaultMaxRetries; i++ {
		res, err := uc.ProcessRetries(context.Background(), now.Add(time.Second))
		require.NoError(t, err)
		require.Equal(t, 1, res.Processed, "attempt %d", i)

		if i < model.DefaultMaxRetries {
			require.Equal(t, 0, res.Exhausted, "attempt %d", i)
			due, err := logRepo.ListDue(context.Background(), now.Add(24*time.Hour))
			require.NoError(t, err)
			require.Len(t, due, 1)
			now = *due[0].NextRetryAt
		} else {
			require.Equal(t, 1, res.Exhausted, "final attempt must exhaust")
		}
	}

	// Exhausted entries never come due again.
	due, err := logRepo.ListDue(context.Background(), now.Add(240*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, due)
}

func TestProcessRetriesExhaustsWhenConfigDisabled(t *testing.T) {
	sender := &fakeSender{status: 500}
	uc, cfgRepo, _ := newTestUseCase(t, sender)
	seedConfig(t, cfgRepo, "w1", true)

	out, err := uc.Send(context.Background(), "w1", sampleNote())
	require.NoError(t, err)

	require.NoError(t, cfgRepo.Delete(context.Background(), "w1"))

	attempts := len(sender.requests)
	res, err := uc.ProcessRetries(context.Background(), out.Log.NextRetryAt.Add(time.Second))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Exhausted)
	assert.Len(t, sender.requests, attempts, "no POST for a vanished config")
}

func TestRetryDelaySchedule(t *testing.T) {
	want := []time.Duration{time.Minute, 5 * time.Minute, 15 * time.Minute, time.Hour, 2 * time.Hour}
	for i, w := range want {
		assert.Equal(t, w, retryDelay(i))
	}
	// Past the schedule the last delay repeats.
	assert.Equal(t, 2*time.Hour, retryDelay(17))
}

func TestTestChannelWritesLog(t *testing.T) {
	sender := &fakeSender{status: 200}
	uc, cfgRepo, logRepo := newTestUseCase(t, sender)
	seedConfig(t, cfgRepo, "w1", true)

	out, err := uc.TestChannel(context.Background(), "w1")
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, "test_alert", out.Log.AlertType)

	logs, _, err := logRepo.Get(context.Background(), repository.GetLogsOptions{})
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}
