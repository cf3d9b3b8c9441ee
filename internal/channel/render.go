package channel

import (
	"encoding/json"
	"fmt"
	"strconv"

	"escalation-srv/internal/model"
)

// Render produces the JSON body for a webhook channel config. It never
// returns an error for content reasons: a broken custom template degrades to
// the default payload shape. The error return covers marshalling only and is
// not expected in practice.
func Render(n Notification, cfg model.WebhookConfig) ([]byte, error) {
	var payload any
	switch cfg.ChannelType {
	case model.ChannelSlack:
		payload = buildSlack(n, cfg)
	case model.ChannelTeams:
		payload = buildTeams(n, cfg)
	case model.ChannelDiscord:
		payload = buildDiscord(n, cfg)
	default:
		return renderCustom(n, cfg)
	}
	return json.Marshal(payload)
}

// severityEmoji keys the Slack header emoji by severity.
func severityEmoji(s model.Severity) string {
	switch s {
	case model.SeverityCritical:
		return "🔴"
	case model.SeverityWarning:
		return "🟡"
	default:
		return "🔵"
	}
}

// detailPair is one present optional attribute of the notification, in the
// fixed order shared by every channel's detail section.
type detailPair struct {
	name  string
	value string
}

func detailPairs(n Notification) []detailPair {
	var pairs []detailPair
	if n.AlertType != "" {
		pairs = append(pairs, detailPair{"Alert Type", n.AlertType})
	}
	if n.Severity != "" {
		pairs = append(pairs, detailPair{"Severity", string(n.Severity)})
	}
	if n.ProductionLineName != "" {
		pairs = append(pairs, detailPair{"Production Line", n.ProductionLineName})
	}
	if n.MachineName != "" {
		pairs = append(pairs, detailPair{"Machine", n.MachineName})
	}
	if n.MetricValue != nil {
		pairs = append(pairs, detailPair{"Metric Value", formatMetric(*n.MetricValue)})
	}
	if n.Threshold != nil {
		pairs = append(pairs, detailPair{"Threshold", formatMetric(*n.Threshold)})
	}
	if len(pairs) > maxDetailFields {
		pairs = pairs[:maxDetailFields]
	}
	return pairs
}

func formatMetric(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func messageOrDefault(n Notification) string {
	if n.Message == "" {
		return "No message provided"
	}
	return n.Message
}

func levelTitle(n Notification) string {
	return fmt.Sprintf("Escalation Level %d: %s", n.EscalationLevel, n.Title)
}
