package channel

import (
	"fmt"
	"time"

	"escalation-srv/internal/model"
)

func discordColor(s model.Severity) int {
	switch s {
	case model.SeverityCritical:
		return 16711680
	case model.SeverityWarning:
		return 16753920
	default:
		return 3447003
	}
}

func buildDiscord(n Notification, cfg model.WebhookConfig) discordPayload {
	fields := []discordField{}
	if cfg.IncludeDetails {
		for _, p := range detailPairs(n) {
			fields = append(fields, discordField{Name: p.name, Value: p.value, Inline: true})
		}
	}

	return discordPayload{
		Embeds: []discordEmbed{{
			Title:       fmt.Sprintf("🚨 %s", levelTitle(n)),
			Description: n.Message,
			Color:       discordColor(n.Severity),
			Fields:      fields,
			Timestamp:   n.Timestamp.Format(time.RFC3339),
			Footer:      discordFooter{Text: payloadFooter},
		}},
	}
}
