package usecase

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"escalation-srv/internal/channel"
	"escalation-srv/internal/model"
	"escalation-srv/pkg/mailer"
	"escalation-srv/pkg/push"
)

const escalationEmailTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body style="font-family: Arial, sans-serif; color: #333; max-width: 600px; margin: 0 auto;">
  <div style="background: {{.Color}}; color: white; padding: 20px; text-align: center; border-radius: 8px 8px 0 0;">
    <h1 style="margin: 0;">🔺 ESCALATION - Level {{.Level}}</h1>
    <p style="margin: 10px 0 0 0; opacity: 0.9;">{{.LevelName}}</p>
  </div>
  <div style="background: #f9fafb; padding: 20px; border: 1px solid #e5e7eb; border-top: none; border-radius: 0 0 8px 8px;">
    <div style="background: white; padding: 15px; border-radius: 8px; margin: 15px 0; border-left: 4px solid {{.Color}};">
      <div style="color: #6b7280; font-size: 12px; text-transform: uppercase;">Alert Type</div>
      <div style="font-size: 18px; font-weight: bold;">{{.AlertType}}</div>
    </div>
    <div style="background: white; padding: 15px; border-radius: 8px; margin: 15px 0; border-left: 4px solid {{.Color}};">
      <div style="color: #6b7280; font-size: 12px; text-transform: uppercase;">Message</div>
      <div style="font-size: 18px; font-weight: bold;">{{.Message}}</div>
    </div>
    {{if .MetricValue}}
    <div style="background: white; padding: 15px; border-radius: 8px; margin: 15px 0; border-left: 4px solid {{.Color}};">
      <div style="color: #6b7280; font-size: 12px; text-transform: uppercase;">Current Value / Threshold</div>
      <div style="font-size: 18px; font-weight: bold; color: {{.Color}};">{{.MetricValue}}{{if .Threshold}} / {{.Threshold}}{{end}}</div>
    </div>
    {{end}}
    {{if .ProductionLine}}
    <div style="background: white; padding: 15px; border-radius: 8px; margin: 15px 0; border-left: 4px solid {{.Color}};">
      <div style="color: #6b7280; font-size: 12px; text-transform: uppercase;">Production Line</div>
      <div style="font-size: 18px; font-weight: bold;">{{.ProductionLine}}</div>
    </div>
    {{end}}
    <div style="background: white; padding: 15px; border-radius: 8px; margin: 15px 0; border-left: 4px solid {{.Color}};">
      <div style="color: #6b7280; font-size: 12px; text-transform: uppercase;">Waiting Since</div>
      <div style="font-size: 18px; font-weight: bold;">{{.CreatedAt}} ({{.WaitMinutes}} min)</div>
    </div>
  </div>
  <p style="text-align: center; color: #6b7280; font-size: 12px;">
    This alert was escalated to {{.LevelName}} after {{.TimeoutMinutes}} minutes without handling.
  </p>
</body>
</html>`

var escalationEmailTmpl = template.Must(template.New("escalation").Parse(escalationEmailTemplate))

var levelColors = map[int]string{
	1: "#f59e0b",
	2: "#f97316",
	3: "#dc2626",
}

type escalationEmailView struct {
	Color          string
	Level          int
	LevelName      string
	AlertType      string
	Message        string
	MetricValue    string
	Threshold      string
	ProductionLine string
	CreatedAt      string
	WaitMinutes    int
	TimeoutMinutes int
}

func renderEscalationEmail(alert model.EscalationAlert, level model.PolicyLevel, now time.Time) (subject, html string, err error) {
	color, ok := levelColors[level.Level]
	if !ok {
		color = "#dc2626"
	}

	view := escalationEmailView{
		Color:          color,
		Level:          level.Level,
		LevelName:      level.Name,
		AlertType:      alert.AlertType,
		Message:        alert.Message,
		ProductionLine: alert.ProductionLineName,
		CreatedAt:      alert.CreatedAt.Format("2006-01-02 15:04"),
		WaitMinutes:    int(now.Sub(alert.CreatedAt).Round(time.Minute) / time.Minute),
		TimeoutMinutes: level.TimeoutMinutes,
	}
	if alert.MetricValue != nil {
		view.MetricValue = fmt.Sprintf("%.3f", *alert.MetricValue)
	}
	if alert.Threshold != nil {
		view.Threshold = fmt.Sprintf("%.3f", *alert.Threshold)
	}
	if view.Message == "" {
		view.Message = alert.Title
	}

	var buf strings.Builder
	if err := escalationEmailTmpl.Execute(&buf, view); err != nil {
		return "", "", err
	}

	subject = fmt.Sprintf("[ESCALATION L%d] %s - immediate action required", level.Level, alert.AlertType)
	return subject, buf.String(), nil
}

func mailerMessage(to, subject, html string) mailer.Message {
	return mailer.Message{
		To:       []string{to},
		Subject:  subject,
		HTMLBody: html,
	}
}

func pushMessage(msg channel.PushMessage) push.Message {
	return push.Message{
		Title: msg.Title,
		Body:  msg.Body,
		Data:  msg.Data,
	}
}
