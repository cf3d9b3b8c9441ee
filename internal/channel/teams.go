package channel

import (
	"fmt"
	"time"

	"escalation-srv/internal/model"
)

func teamsThemeColor(s model.Severity) string {
	switch s {
	case model.SeverityCritical:
		return "FF0000"
	case model.SeverityWarning:
		return "FFA500"
	default:
		return "0078D7"
	}
}

func buildTeams(n Notification, cfg model.WebhookConfig) teamsPayload {
	title := cfg.TeamsTitle
	if title == "" {
		title = fmt.Sprintf("🚨 Escalation Level %d", n.EscalationLevel)
	}

	facts := []teamsFact{}
	if cfg.IncludeDetails {
		for _, p := range detailPairs(n) {
			facts = append(facts, teamsFact{Name: p.name, Value: p.value})
		}
	}

	return teamsPayload{
		Type:       "MessageCard",
		Context:    "http://schema.org/extensions",
		ThemeColor: teamsThemeColor(n.Severity),
		Summary:    levelTitle(n),
		Title:      title,
		Sections: []teamsSection{{
			ActivityTitle:    n.Title,
			ActivitySubtitle: n.Timestamp.Format(time.RFC1123),
			Text:             n.Message,
			Facts:            facts,
		}},
	}
}
