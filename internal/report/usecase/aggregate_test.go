package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"escalation-srv/internal/model"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return ts
}

func resolvedAlert(id string, created, resolved time.Time) model.EscalationAlert {
	return model.EscalationAlert{
		ID:         id,
		AlertType:  "cpk_low",
		Title:      "Cpk below threshold",
		Severity:   model.SeverityWarning,
		Status:     model.AlertStatusResolved,
		CreatedAt:  created,
		ResolvedAt: &resolved,
	}
}

func pendingAlert(id string, created time.Time) model.EscalationAlert {
	return model.EscalationAlert{
		ID:        id,
		AlertType: "spc_violation",
		Title:     "SPC rule violation",
		Severity:  model.SeverityCritical,
		Status:    model.AlertStatusPending,
		CreatedAt: created,
	}
}

func TestBuildReportDataStats(t *testing.T) {
	start := mustTime(t, "2026-03-01T00:00:00Z")
	end := mustTime(t, "2026-03-08T00:00:00Z")

	alerts := []model.EscalationAlert{
		resolvedAlert("a-1", start.Add(1*time.Hour), start.Add(31*time.Minute+1*time.Hour)),
		resolvedAlert("a-2", start.Add(2*time.Hour), start.Add(90*time.Minute+2*time.Hour)),
		pendingAlert("a-3", start.Add(3*time.Hour)),
	}

	data := buildReportData(alerts, start, end)

	assert.Equal(t, 3, data.Stats.TotalAlerts)
	assert.Equal(t, 2, data.Stats.ResolvedAlerts)
	assert.Equal(t, 1, data.Stats.PendingAlerts)
	require.NotNil(t, data.Stats.AvgResolutionTimeMinutes)
	// (31 + 90) / 2 = 60.5, rounded
	assert.Equal(t, 61, *data.Stats.AvgResolutionTimeMinutes)
}

func TestBuildReportDataAvgNilWithoutResolved(t *testing.T) {
	start := mustTime(t, "2026-03-01T00:00:00Z")
	end := mustTime(t, "2026-03-02T00:00:00Z")

	data := buildReportData([]model.EscalationAlert{
		pendingAlert("a-1", start.Add(time.Hour)),
	}, start, end)

	assert.Nil(t, data.Stats.AvgResolutionTimeMinutes)

	empty := buildReportData(nil, start, end)
	assert.Nil(t, empty.Stats.AvgResolutionTimeMinutes)
	assert.Equal(t, 0, empty.Stats.TotalAlerts)
}

func TestBuildReportDataTypeOrdering(t *testing.T) {
	start := mustTime(t, "2026-03-01T00:00:00Z")
	end := mustTime(t, "2026-03-02T00:00:00Z")

	mk := func(id, alertType string) model.EscalationAlert {
		a := pendingAlert(id, start.Add(time.Hour))
		a.AlertType = alertType
		return a
	}
	alerts := []model.EscalationAlert{
		mk("a-1", "cpk_low"),
		mk("a-2", "spc_violation"),
		mk("a-3", "spc_violation"),
		mk("a-4", "downtime"),
	}

	data := buildReportData(alerts, start, end)

	require.Len(t, data.ByAlertType, 3)
	assert.Equal(t, "spc_violation", data.ByAlertType[0].AlertType)
	assert.Equal(t, 2, data.ByAlertType[0].Count)
	// Equal counts tie-break by name so repeated runs agree.
	assert.Equal(t, "cpk_low", data.ByAlertType[1].AlertType)
	assert.Equal(t, "downtime", data.ByAlertType[2].AlertType)
}

func TestBuildReportDataLevelAscending(t *testing.T) {
	start := mustTime(t, "2026-03-01T00:00:00Z")
	end := mustTime(t, "2026-03-02T00:00:00Z")

	mk := func(id string, level int) model.EscalationAlert {
		a := pendingAlert(id, start.Add(time.Hour))
		a.EscalationLevel = level
		return a
	}
	data := buildReportData([]model.EscalationAlert{
		mk("a-1", 3), mk("a-2", 1), mk("a-3", 1), mk("a-4", 0),
	}, start, end)

	require.Len(t, data.ByLevel, 3)
	assert.Equal(t, 0, data.ByLevel[0].Level)
	assert.Equal(t, 1, data.ByLevel[1].Level)
	assert.Equal(t, 2, data.ByLevel[1].Count)
	assert.Equal(t, 3, data.ByLevel[2].Level)
}

func TestBuildReportDataTrendsIncludeZeroDays(t *testing.T) {
	start := mustTime(t, "2026-03-01T00:00:00Z")
	end := mustTime(t, "2026-03-07T23:00:00Z")

	alerts := []model.EscalationAlert{
		pendingAlert("a-1", mustTime(t, "2026-03-01T10:00:00Z")),
		resolvedAlert("a-2", mustTime(t, "2026-03-03T10:00:00Z"), mustTime(t, "2026-03-03T11:00:00Z")),
		pendingAlert("a-3", mustTime(t, "2026-03-03T12:00:00Z")),
	}

	data := buildReportData(alerts, start, end)

	require.Len(t, data.Trends, 7)
	assert.Equal(t, "2026-03-01", data.Trends[0].Date)
	assert.Equal(t, 1, data.Trends[0].TotalAlerts)
	assert.Equal(t, "2026-03-02", data.Trends[1].Date)
	assert.Equal(t, 0, data.Trends[1].TotalAlerts)
	assert.Equal(t, 2, data.Trends[2].TotalAlerts)
	assert.Equal(t, 1, data.Trends[2].ResolvedAlerts)
	assert.Equal(t, "2026-03-07", data.Trends[6].Date)
}

func TestBuildReportDataTopAlertsCapAndOrder(t *testing.T) {
	start := mustTime(t, "2026-03-01T00:00:00Z")
	end := mustTime(t, "2026-03-02T00:00:00Z")

	var alerts []model.EscalationAlert
	for i := 0; i < 15; i++ {
		alerts = append(alerts, pendingAlert(
			string(rune('a'+i))+"-unresolved",
			start.Add(time.Duration(i)*time.Minute),
		))
	}

	data := buildReportData(alerts, start, end)

	require.Len(t, data.TopAlerts, maxTopAlerts)
	// Newest first.
	for i := 1; i < len(data.TopAlerts); i++ {
		assert.False(t, data.TopAlerts[i].CreatedAt.After(data.TopAlerts[i-1].CreatedAt))
	}
}

func TestBuildReportDataResolvedCapAndMinutes(t *testing.T) {
	start := mustTime(t, "2026-03-01T00:00:00Z")
	end := mustTime(t, "2026-03-02T00:00:00Z")

	var alerts []model.EscalationAlert
	for i := 0; i < 12; i++ {
		created := start.Add(time.Duration(i) * time.Minute)
		alerts = append(alerts, resolvedAlert(
			string(rune('a'+i))+"-resolved",
			created,
			created.Add(45*time.Minute),
		))
	}
	// Resolved status without a timestamp carries no resolution time and
	// is excluded from the list.
	broken := pendingAlert("broken", start)
	broken.Status = model.AlertStatusResolved
	alerts = append(alerts, broken)

	data := buildReportData(alerts, start, end)

	require.Len(t, data.ResolvedAlerts, maxResolvedAlerts)
	for _, a := range data.ResolvedAlerts {
		assert.Equal(t, 45, a.ResolutionTimeMinutes)
		assert.NotEqual(t, "broken", a.ID)
	}
	for i := 1; i < len(data.ResolvedAlerts); i++ {
		assert.False(t, data.ResolvedAlerts[i].ResolvedAt.After(data.ResolvedAlerts[i-1].ResolvedAt))
	}
}

func TestBuildReportDataDeterministic(t *testing.T) {
	start := mustTime(t, "2026-03-01T00:00:00Z")
	end := mustTime(t, "2026-03-03T00:00:00Z")

	same := start.Add(time.Hour)
	alerts := []model.EscalationAlert{
		pendingAlert("b", same),
		pendingAlert("a", same),
		pendingAlert("c", same),
	}

	first := buildReportData(alerts, start, end)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, buildReportData(alerts, start, end))
	}
	// Identical timestamps fall back to ID ordering.
	assert.Equal(t, "a", first.TopAlerts[0].ID)
	assert.Equal(t, "b", first.TopAlerts[1].ID)
	assert.Equal(t, "c", first.TopAlerts[2].ID)
}
