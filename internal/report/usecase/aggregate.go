package usecase

import (
	"math"
	"sort"
	"time"

	"escalation-srv/internal/model"
	"escalation-srv/internal/report"
)

const (
	maxTopAlerts      = 10
	maxResolvedAlerts = 10
)

// buildReportData computes the full aggregate over the alert set of one
// period. It is a pure function of its inputs: the same alerts and period
// always produce the same output.
func buildReportData(alerts []model.EscalationAlert, periodStart, periodEnd time.Time) report.ReportData {
	data := report.ReportData{
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
	}

	data.Stats.TotalAlerts = len(alerts)
	for _, a := range alerts {
		if a.IsResolved() {
			data.Stats.ResolvedAlerts++
		}
	}
	data.Stats.PendingAlerts = data.Stats.TotalAlerts - data.Stats.ResolvedAlerts
	data.Stats.AvgResolutionTimeMinutes = avgResolutionMinutes(alerts)

	data.ByAlertType = countByType(alerts)
	data.BySeverity = countBySeverity(alerts)
	data.ByLevel = countByLevel(alerts)
	data.Trends = dailyTrends(alerts, periodStart, periodEnd)
	data.TopAlerts = topAlerts(alerts)
	data.ResolvedAlerts = recentlyResolved(alerts)

	return data
}

// avgResolutionMinutes averages over resolved alerts that carry a resolution
// timestamp. Nil when there is none: the average is unknown, not zero.
func avgResolutionMinutes(alerts []model.EscalationAlert) *int {
	var sum time.Duration
	var n int
	for _, a := range alerts {
		if d, ok := a.ResolutionTime(); ok {
			sum += d
			n++
		}
	}
	if n == 0 {
		return nil
	}
	avg := int(math.Round(sum.Minutes() / float64(n)))
	return &avg
}

func countByType(alerts []model.EscalationAlert) []report.TypeCount {
	counts := make(map[string]int)
	for _, a := range alerts {
		counts[a.AlertType]++
	}

	res := make([]report.TypeCount, 0, len(counts))
	for t, c := range counts {
		res = append(res, report.TypeCount{AlertType: t, Count: c})
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].Count != res[j].Count {
			return res[i].Count > res[j].Count
		}
		return res[i].AlertType < res[j].AlertType
	})
	return res
}

func countBySeverity(alerts []model.EscalationAlert) []report.SeverityCount {
	counts := make(map[string]int)
	for _, a := range alerts {
		counts[string(a.Severity)]++
	}

	res := make([]report.SeverityCount, 0, len(counts))
	for s, c := range counts {
		res = append(res, report.SeverityCount{Severity: s, Count: c})
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].Count != res[j].Count {
			return res[i].Count > res[j].Count
		}
		return res[i].Severity < res[j].Severity
	})
	return res
}

func countByLevel(alerts []model.EscalationAlert) []report.LevelCount {
	counts := make(map[int]int)
	for _, a := range alerts {
		counts[a.EscalationLevel]++
	}

	res := make([]report.LevelCount, 0, len(counts))
	for lvl, c := range counts {
		res = append(res, report.LevelCount{Level: lvl, Count: c})
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Level < res[j].Level })
	return res
}

// dailyTrends buckets alerts per calendar day across the whole period,
// including days with no alerts. Days are taken in the period's location.
func dailyTrends(alerts []model.EscalationAlert, periodStart, periodEnd time.Time) []report.TrendPoint {
	loc := periodStart.Location()
	day := time.Date(periodStart.Year(), periodStart.Month(), periodStart.Day(), 0, 0, 0, 0, loc)
	last := time.Date(periodEnd.Year(), periodEnd.Month(), periodEnd.Day(), 0, 0, 0, 0, loc)

	var points []report.TrendPoint
	for !day.After(last) {
		next := day.AddDate(0, 0, 1)
		point := report.TrendPoint{Date: day.Format("2006-01-02")}
		for _, a := range alerts {
			created := a.CreatedAt.In(loc)
			if created.Before(day) || !created.Before(next) {
				continue
			}
			point.TotalAlerts++
			if a.IsResolved() {
				point.ResolvedAlerts++
			}
		}
		points = append(points, point)
		day = next
	}
	return points
}

func topAlerts(alerts []model.EscalationAlert) []report.TopAlert {
	var open []model.EscalationAlert
	for _, a := range alerts {
		if !a.IsResolved() {
			open = append(open, a)
		}
	}
	sort.Slice(open, func(i, j int) bool {
		if !open[i].CreatedAt.Equal(open[j].CreatedAt) {
			return open[i].CreatedAt.After(open[j].CreatedAt)
		}
		return open[i].ID < open[j].ID
	})
	if len(open) > maxTopAlerts {
		open = open[:maxTopAlerts]
	}

	res := make([]report.TopAlert, len(open))
	for i, a := range open {
		res[i] = report.TopAlert{
			ID:              a.ID,
			AlertType:       a.AlertType,
			Title:           a.Title,
			Severity:        string(a.Severity),
			Status:          string(a.Status),
			EscalationLevel: a.EscalationLevel,
			CreatedAt:       a.CreatedAt,
		}
	}
	return res
}

func recentlyResolved(alerts []model.EscalationAlert) []report.ResolvedAlert {
	var done []model.EscalationAlert
	for _, a := range alerts {
		if _, ok := a.ResolutionTime(); ok {
			done = append(done, a)
		}
	}
	sort.Slice(done, func(i, j int) bool {
		if !done[i].ResolvedAt.Equal(*done[j].ResolvedAt) {
			return done[i].ResolvedAt.After(*done[j].ResolvedAt)
		}
		return done[i].ID < done[j].ID
	})
	if len(done) > maxResolvedAlerts {
		done = done[:maxResolvedAlerts]
	}

	res := make([]report.ResolvedAlert, len(done))
	for i, a := range done {
		minutes, _ := a.ResolutionMinutes()
		res[i] = report.ResolvedAlert{
			ID:                    a.ID,
			AlertType:             a.AlertType,
			Title:                 a.Title,
			ResolvedAt:            *a.ResolvedAt,
			ResolutionTimeMinutes: minutes,
		}
	}
	return res
}
