package channel

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"escalation-srv/internal/model"
)

func floatPtr(v float64) *float64 { return &v }

func sampleNotification() Notification {
	return Notification{
		AlertID:            "a-1",
		AlertType:          "cpk_low",
		Title:              "CPK below threshold",
		Message:            "CPK dropped to 0.95 on line 2",
		Severity:           model.SeverityCritical,
		EscalationLevel:    2,
		ProductionLineName: "Line 2",
		MachineName:        "AOI-04",
		MetricValue:        floatPtr(0.95),
		Threshold:          floatPtr(1.33),
		Timestamp:          time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC),
	}
}

func TestRenderSlack(t *testing.T) {
	cfg := model.WebhookConfig{
		ChannelType:    model.ChannelSlack,
		SlackChannel:   "#quality",
		SlackMentions:  []string{"U123", "U456"},
		IncludeDetails: true,
	}

	body, err := Render(sampleNotification(), cfg)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	var got slackPayload
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if got.Channel != "#quality" {
		t.Errorf("channel = %q", got.Channel)
	}
	if !strings.HasPrefix(got.Text, "<@U123> <@U456> ") {
		t.Errorf("mentions missing from text: %q", got.Text)
	}
	if len(got.Blocks) != 3 {
		t.Fatalf("blocks = %d, want header + section + fields", len(got.Blocks))
	}
	header := got.Blocks[0].Text.Text
	if !strings.Contains(header, "🔴") || !strings.Contains(header, "Escalation Level 2") {
		t.Errorf("header = %q", header)
	}
	if n := len(got.Blocks[2].Fields); n != 6 {
		t.Errorf("detail fields = %d, want 6", n)
	}
}

func TestRenderSlackWithoutDetails(t *testing.T) {
	cfg := model.WebhookConfig{ChannelType: model.ChannelSlack}
	body, err := Render(sampleNotification(), cfg)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	var got slackPayload
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got.Blocks) != 2 {
		t.Errorf("blocks = %d, want header + section only", len(got.Blocks))
	}
}

func TestRenderTeams(t *testing.T) {
	tests := []struct {
		name      string
		severity  model.Severity
		wantColor string
	}{
		{"critical is red", model.SeverityCritical, "FF0000"},
		{"warning is orange", model.SeverityWarning, "FFA500"},
		{"info is blue", model.SeverityInfo, "0078D7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := sampleNotification()
			n.Severity = tt.severity
			body, err := Render(n, model.WebhookConfig{ChannelType: model.ChannelTeams, IncludeDetails: true})
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			var got teamsPayload
			if err := json.Unmarshal(body, &got); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got.ThemeColor != tt.wantColor {
				t.Errorf("themeColor = %q, want %q", got.ThemeColor, tt.wantColor)
			}
			if got.Type != "MessageCard" {
				t.Errorf("@type = %q", got.Type)
			}
			if len(got.Sections) != 1 || len(got.Sections[0].Facts) == 0 {
				t.Errorf("facts missing with includeDetails")
			}
		})
	}
}

func TestRenderTeamsTitleOverride(t *testing.T) {
	cfg := model.WebhookConfig{ChannelType: model.ChannelTeams, TeamsTitle: "Quality escalations"}
	body, _ := Render(sampleNotification(), cfg)
	var got teamsPayload
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Title != "Quality escalations" {
		t.Errorf("title = %q", got.Title)
	}
}

func TestRenderDiscord(t *testing.T) {
	body, err := Render(sampleNotification(), model.WebhookConfig{ChannelType: model.ChannelDiscord, IncludeDetails: true})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	var got discordPayload
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got.Embeds) != 1 {
		t.Fatalf("embeds = %d", len(got.Embeds))
	}
	e := got.Embeds[0]
	if e.Color != 16711680 {
		t.Errorf("color = %d, want red", e.Color)
	}
	if !strings.Contains(e.Title, "Escalation Level 2") {
		t.Errorf("title = %q", e.Title)
	}
	if e.Timestamp != "2026-03-10T08:00:00Z" {
		t.Errorf("timestamp = %q", e.Timestamp)
	}
	for _, f := range e.Fields {
		if !f.Inline {
			t.Errorf("field %q not inline", f.Name)
		}
	}
}

func TestRenderCustomTemplate(t *testing.T) {
	cfg := model.WebhookConfig{
		ChannelType:        model.ChannelCustom,
		CustomBodyTemplate: `{"sev":"{{severity}}","level":{{escalationLevel}},"line":"{{productionLineName}}"}`,
	}

	body, err := Render(sampleNotification(), cfg)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("substituted template is not valid JSON: %v", err)
	}
	if got["sev"] != "critical" {
		t.Errorf("sev = %v", got["sev"])
	}
	if got["level"] != float64(2) {
		t.Errorf("level = %v", got["level"])
	}
	if got["line"] != "Line 2" {
		t.Errorf("line = %v", got["line"])
	}
}

func TestRenderCustomFallsBackOnBadTemplate(t *testing.T) {
	tests := []struct {
		name string
		tmpl string
	}{
		{"not json after substitution", `severity is {{severity}}`},
		{"truncated json", `{"a": {{escalationLevel}}`},
		{"empty template", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := model.WebhookConfig{ChannelType: model.ChannelCustom, CustomBodyTemplate: tt.tmpl}
			body, err := Render(sampleNotification(), cfg)
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			var got customPayload
			if err := json.Unmarshal(body, &got); err != nil {
				t.Fatalf("fallback payload is not valid JSON: %v", err)
			}
			if got.AlertTitle != "CPK below threshold" || got.EscalationLevel != 2 {
				t.Errorf("fallback payload = %+v", got)
			}
		})
	}
}

func TestDetailPairsCap(t *testing.T) {
	pairs := detailPairs(sampleNotification())
	if len(pairs) > maxDetailFields {
		t.Errorf("detail pairs = %d, cap is %d", len(pairs), maxDetailFields)
	}
	// Absent optionals are skipped entirely.
	sparse := Notification{AlertType: "test", Severity: model.SeverityInfo}
	if got := len(detailPairs(sparse)); got != 2 {
		t.Errorf("sparse detail pairs = %d, want 2", got)
	}
}

func TestRenderSMS(t *testing.T) {
	n := sampleNotification()
	now := n.Timestamp.Add(45 * time.Minute)
	text := RenderSMS(n, now)
	for _, want := range []string{"ESCALATION L2", "cpk_low", "0.95", "1.33", "45 min"} {
		if !strings.Contains(text, want) {
			t.Errorf("sms text missing %q: %q", want, text)
		}
	}
}

func TestRenderPush(t *testing.T) {
	msg := RenderPush(sampleNotification())
	if msg.Data["escalationLevel"] != "2" || msg.Data["severity"] != "critical" {
		t.Errorf("push data = %v", msg.Data)
	}
	if !strings.Contains(msg.Title, "🔴") {
		t.Errorf("push title = %q", msg.Title)
	}
}
