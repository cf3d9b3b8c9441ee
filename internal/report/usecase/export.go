package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"escalation-srv/internal/report"
	"escalation-srv/internal/report/repository"
)

// Export aggregates an arbitrary period and returns it as a downloadable
// artifact. No config is involved; the caller picks the period and filters.
func (uc *implUseCase) Export(ctx context.Context, input report.ExportInput) (report.ExportOutput, error) {
	if input.Format != report.ExportFormatExcel && input.Format != report.ExportFormatHTML {
		return report.ExportOutput{}, report.ErrInvalidFormat
	}
	if !input.PeriodEnd.After(input.PeriodStart) {
		return report.ExportOutput{}, report.ErrInvalidPeriod
	}

	alerts, err := uc.alertRepo.List(ctx, repository.ListAlertsOptions{Filter: repository.AlertFilter{
		PeriodStart:       &input.PeriodStart,
		PeriodEnd:         &input.PeriodEnd,
		AlertTypes:        input.AlertTypes,
		ProductionLineIDs: input.ProductionLineIDs,
	}})
	if err != nil {
		uc.l.Errorf(ctx, "internal.report.usecase.Export.List: %v", err)
		return report.ExportOutput{}, err
	}

	data := buildReportData(alerts, input.PeriodStart, input.PeriodEnd)
	stamp := input.PeriodEnd.Format("2006-01-02")

	if input.Format == report.ExportFormatHTML {
		html, err := renderExportHTML(data)
		if err != nil {
			uc.l.Errorf(ctx, "internal.report.usecase.Export.renderExportHTML: %v", err)
			return report.ExportOutput{}, err
		}
		return report.ExportOutput{
			Data:        []byte(html),
			ContentType: "text/html; charset=utf-8",
			Filename:    fmt.Sprintf("escalation-report-%s.html", stamp),
		}, nil
	}

	raw, err := buildWorkbook(data)
	if err != nil {
		uc.l.Errorf(ctx, "internal.report.usecase.Export.buildWorkbook: %v", err)
		return report.ExportOutput{}, err
	}
	return report.ExportOutput{
		Data:        raw,
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Filename:    fmt.Sprintf("escalation-report-%s.xlsx", stamp),
	}, nil
}

// renderExportHTML reuses the email template with every section enabled.
func renderExportHTML(data report.ReportData) (string, error) {
	view := emailView{
		Title:                 "Escalation Report",
		PeriodStart:           data.PeriodStart.Format("2006-01-02 15:04"),
		PeriodEnd:             data.PeriodEnd.Format("2006-01-02 15:04"),
		Stats:                 data.Stats,
		AvgResolution:         formatAvgResolution(data.Stats.AvgResolutionTimeMinutes),
		ByAlertType:           data.ByAlertType,
		ByLevel:               data.ByLevel,
		Trends:                data.Trends,
		IncludeStats:          true,
		IncludeTrends:         true,
		IncludeTopAlerts:      true,
		IncludeResolvedAlerts: true,
	}
	for _, a := range data.TopAlerts {
		view.TopAlerts = append(view.TopAlerts, emailTopAlert{
			Title:           a.Title,
			Severity:        a.Severity,
			EscalationLevel: a.EscalationLevel,
			CreatedAt:       a.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	for _, a := range data.ResolvedAlerts {
		view.ResolvedAlerts = append(view.ResolvedAlerts, emailResolvedAlert{
			Title:                 a.Title,
			ResolvedAt:            a.ResolvedAt.Format("2006-01-02 15:04"),
			ResolutionTimeMinutes: a.ResolutionTimeMinutes,
		})
	}

	var buf strings.Builder
	if err := emailTmpl.Execute(&buf, view); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func buildWorkbook(data report.ReportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const summary = "Summary"
	f.SetSheetName("Sheet1", summary)

	writeRow := func(sheet string, row int, values ...interface{}) error {
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
		return nil
	}

	rows := [][]interface{}{
		{"Period Start", data.PeriodStart.Format("2006-01-02 15:04")},
		{"Period End", data.PeriodEnd.Format("2006-01-02 15:04")},
		{"Total Alerts", data.Stats.TotalAlerts},
		{"Resolved Alerts", data.Stats.ResolvedAlerts},
		{"Pending Alerts", data.Stats.PendingAlerts},
		{"Avg Resolution", formatAvgResolution(data.Stats.AvgResolutionTimeMinutes)},
	}
	for i, r := range rows {
		if err := writeRow(summary, i+1, r...); err != nil {
			return nil, err
		}
	}

	row := len(rows) + 2
	if err := writeRow(summary, row, "Alert Type", "Count"); err != nil {
		return nil, err
	}
	for _, tc := range data.ByAlertType {
		row++
		if err := writeRow(summary, row, tc.AlertType, tc.Count); err != nil {
			return nil, err
		}
	}
	row += 2
	if err := writeRow(summary, row, "Escalation Level", "Count"); err != nil {
		return nil, err
	}
	for _, lc := range data.ByLevel {
		row++
		if err := writeRow(summary, row, fmt.Sprintf("L%d", lc.Level), lc.Count); err != nil {
			return nil, err
		}
	}

	const trends = "Trends"
	if _, err := f.NewSheet(trends); err != nil {
		return nil, err
	}
	if err := writeRow(trends, 1, "Date", "Total Alerts", "Resolved Alerts"); err != nil {
		return nil, err
	}
	for i, t := range data.Trends {
		if err := writeRow(trends, i+2, t.Date, t.TotalAlerts, t.ResolvedAlerts); err != nil {
			return nil, err
		}
	}

	const alerts = "Alerts"
	if _, err := f.NewSheet(alerts); err != nil {
		return nil, err
	}
	if err := writeRow(alerts, 1, "Title", "Type", "Severity", "Level", "Status", "Created At"); err != nil {
		return nil, err
	}
	r := 2
	for _, a := range data.TopAlerts {
		if err := writeRow(alerts, r, a.Title, a.AlertType, a.Severity,
			fmt.Sprintf("L%d", a.EscalationLevel), a.Status, a.CreatedAt.Format("2006-01-02 15:04")); err != nil {
			return nil, err
		}
		r++
	}
	for _, a := range data.ResolvedAlerts {
		if err := writeRow(alerts, r, a.Title, a.AlertType, "", "", "resolved",
			a.ResolvedAt.Format("2006-01-02 15:04")); err != nil {
			return nil, err
		}
		r++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
