package usecase

import (
	"fmt"
	"html/template"
	"strings"

	"escalation-srv/internal/model"
	"escalation-srv/internal/report"
	"escalation-srv/pkg/mailer"
)

// emailTemplate is the full report body. Sections are toggled by the
// config's include flags.
const emailTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body style="font-family: Arial, sans-serif; color: #333; max-width: 800px; margin: 0 auto;">
  <h2 style="color: #1a56db;">{{.Title}}</h2>
  <p style="color: #666;">Period: {{.PeriodStart}} &ndash; {{.PeriodEnd}}</p>

  {{if .IncludeStats}}
  <table style="border-collapse: collapse; width: 100%; margin-bottom: 24px;">
    <tr>
      <td style="padding: 12px; background: #f3f4f6; border: 1px solid #e5e7eb;"><b>Total Alerts</b><br>{{.Stats.TotalAlerts}}</td>
      <td style="padding: 12px; background: #f0fdf4; border: 1px solid #e5e7eb;"><b>Resolved</b><br>{{.Stats.ResolvedAlerts}}</td>
      <td style="padding: 12px; background: #fef2f2; border: 1px solid #e5e7eb;"><b>Pending</b><br>{{.Stats.PendingAlerts}}</td>
      <td style="padding: 12px; background: #eff6ff; border: 1px solid #e5e7eb;"><b>Avg Resolution</b><br>{{.AvgResolution}}</td>
    </tr>
  </table>

  {{if .ByAlertType}}
  <h3>Alerts by Type</h3>
  <table style="border-collapse: collapse; width: 100%; margin-bottom: 24px;">
    <tr style="background: #f9fafb;"><th style="padding: 8px; border: 1px solid #e5e7eb; text-align: left;">Type</th><th style="padding: 8px; border: 1px solid #e5e7eb; text-align: right;">Count</th></tr>
    {{range .ByAlertType}}
    <tr><td style="padding: 8px; border: 1px solid #e5e7eb;">{{.AlertType}}</td><td style="padding: 8px; border: 1px solid #e5e7eb; text-align: right;">{{.Count}}</td></tr>
    {{end}}
  </table>
  {{end}}

  {{if .ByLevel}}
  <h3>Alerts by Escalation Level</h3>
  <table style="border-collapse: collapse; width: 100%; margin-bottom: 24px;">
    <tr style="background: #f9fafb;"><th style="padding: 8px; border: 1px solid #e5e7eb; text-align: left;">Level</th><th style="padding: 8px; border: 1px solid #e5e7eb; text-align: right;">Count</th></tr>
    {{range .ByLevel}}
    <tr><td style="padding: 8px; border: 1px solid #e5e7eb;">L{{.Level}}</td><td style="padding: 8px; border: 1px solid #e5e7eb; text-align: right;">{{.Count}}</td></tr>
    {{end}}
  </table>
  {{end}}
  {{end}}

  {{if .IncludeTrends}}{{if .Trends}}
  <h3>Daily Trend</h3>
  <table style="border-collapse: collapse; width: 100%; margin-bottom: 24px;">
    <tr style="background: #f9fafb;"><th style="padding: 8px; border: 1px solid #e5e7eb; text-align: left;">Date</th><th style="padding: 8px; border: 1px solid #e5e7eb; text-align: right;">Total</th><th style="padding: 8px; border: 1px solid #e5e7eb; text-align: right;">Resolved</th></tr>
    {{range .Trends}}
    <tr><td style="padding: 8px; border: 1px solid #e5e7eb;">{{.Date}}</td><td style="padding: 8px; border: 1px solid #e5e7eb; text-align: right;">{{.TotalAlerts}}</td><td style="padding: 8px; border: 1px solid #e5e7eb; text-align: right;">{{.ResolvedAlerts}}</td></tr>
    {{end}}
  </table>
  {{end}}{{end}}

  {{if .IncludeTopAlerts}}{{if .TopAlerts}}
  <h3>Unresolved Alerts</h3>
  <table style="border-collapse: collapse; width: 100%; margin-bottom: 24px;">
    <tr style="background: #f9fafb;"><th style="padding: 8px; border: 1px solid #e5e7eb; text-align: left;">Title</th><th style="padding: 8px; border: 1px solid #e5e7eb; text-align: left;">Severity</th><th style="padding: 8px; border: 1px solid #e5e7eb; text-align: right;">Level</th><th style="padding: 8px; border: 1px solid #e5e7eb; text-align: left;">Created</th></tr>
    {{range .TopAlerts}}
    <tr><td style="padding: 8px; border: 1px solid #e5e7eb;">{{.Title}}</td><td style="padding: 8px; border: 1px solid #e5e7eb;">{{.Severity}}</td><td style="padding: 8px; border: 1px solid #e5e7eb; text-align: right;">L{{.EscalationLevel}}</td><td style="padding: 8px; border: 1px solid #e5e7eb;">{{.CreatedAt}}</td></tr>
    {{end}}
  </table>
  {{end}}{{end}}

  {{if .IncludeResolvedAlerts}}{{if .ResolvedAlerts}}
  <h3>Recently Resolved</h3>
  <table style="border-collapse: collapse; width: 100%; margin-bottom: 24px;">
    <tr style="background: #f9fafb;"><th style="padding: 8px; border: 1px solid #e5e7eb; text-align: left;">Title</th><th style="padding: 8px; border: 1px solid #e5e7eb; text-align: left;">Resolved At</th><th style="padding: 8px; border: 1px solid #e5e7eb; text-align: right;">Minutes</th></tr>
    {{range .ResolvedAlerts}}
    <tr><td style="padding: 8px; border: 1px solid #e5e7eb;">{{.Title}}</td><td style="padding: 8px; border: 1px solid #e5e7eb;">{{.ResolvedAt}}</td><td style="padding: 8px; border: 1px solid #e5e7eb; text-align: right;">{{.ResolutionTimeMinutes}}</td></tr>
    {{end}}
  </table>
  {{end}}{{end}}

  <p style="color: #9ca3af; font-size: 12px;">Generated automatically by the SPC/CPK alerting service.</p>
</body>
</html>`

var emailTmpl = template.Must(template.New("report").Parse(emailTemplate))

type emailTopAlert struct {
	Title           string
	Severity        string
	EscalationLevel int
	CreatedAt       string
}

type emailResolvedAlert struct {
	Title                 string
	ResolvedAt            string
	ResolutionTimeMinutes int
}

type emailView struct {
	Title                 string
	PeriodStart           string
	PeriodEnd             string
	Stats                 report.Stats
	AvgResolution         string
	ByAlertType           []report.TypeCount
	ByLevel               []report.LevelCount
	Trends                []report.TrendPoint
	TopAlerts             []emailTopAlert
	ResolvedAlerts        []emailResolvedAlert
	IncludeStats          bool
	IncludeTrends         bool
	IncludeTopAlerts      bool
	IncludeResolvedAlerts bool
}

// renderEmail produces the subject and HTML body for one report run.
func renderEmail(cfg model.ReportConfig, data report.ReportData) (subject, html string, err error) {
	title := cfg.Name
	if title == "" {
		title = "Escalation Report"
	}

	view := emailView{
		Title:                 title,
		PeriodStart:           data.PeriodStart.Format("2006-01-02 15:04"),
		PeriodEnd:             data.PeriodEnd.Format("2006-01-02 15:04"),
		Stats:                 data.Stats,
		AvgResolution:         formatAvgResolution(data.Stats.AvgResolutionTimeMinutes),
		ByAlertType:           data.ByAlertType,
		ByLevel:               data.ByLevel,
		Trends:                data.Trends,
		IncludeStats:          cfg.IncludeStats,
		IncludeTrends:         cfg.IncludeTrends,
		IncludeTopAlerts:      cfg.IncludeTopAlerts,
		IncludeResolvedAlerts: cfg.IncludeResolvedAlerts,
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
		return "", "", err
	}

	subject = fmt.Sprintf("[SPC/CPK] Escalation Report %s - %s",
		titleFrequency(cfg.Frequency), data.PeriodEnd.Format("2006-01-02"))
	return subject, buf.String(), nil
}

func formatAvgResolution(minutes *int) string {
	if minutes == nil {
		return "n/a"
	}
	return fmt.Sprintf("%d min", *minutes)
}

func titleFrequency(f model.Frequency) string {
	switch f {
	case model.FrequencyDaily:
		return "Daily"
	case model.FrequencyWeekly:
		return "Weekly"
	case model.FrequencyMonthly:
		return "Monthly"
	default:
		return string(f)
	}
}

func mailerMessage(to, subject, html string) mailer.Message {
	return mailer.Message{
		To:       []string{to},
		Subject:  subject,
		HTMLBody: html,
	}
}
