package channel

import (
	"fmt"
	"strings"

	"escalation-srv/internal/model"
)

func buildSlack(n Notification, cfg model.WebhookConfig) slackPayload {
	blocks := []slackBlock{
		{
			Type: "header",
			Text: &slackText{
				Type:  "plain_text",
				Text:  fmt.Sprintf("%s %s", severityEmoji(n.Severity), levelTitle(n)),
				Emoji: true,
			},
		},
		{
			Type: "section",
			Text: &slackText{Type: "mrkdwn", Text: messageOrDefault(n)},
		},
	}

	if cfg.IncludeDetails {
		var fields []slackText
		for _, p := range detailPairs(n) {
			fields = append(fields, slackText{
				Type: "mrkdwn",
				Text: fmt.Sprintf("*%s:*\n%s", p.name, p.value),
			})
		}
		if len(fields) > 0 {
			blocks = append(blocks, slackBlock{Type: "section", Fields: fields})
		}
	}

	var mentions strings.Builder
	for _, m := range cfg.SlackMentions {
		mentions.WriteString(fmt.Sprintf("<@%s> ", m))
	}

	return slackPayload{
		Channel: cfg.SlackChannel,
		Text:    mentions.String() + "Escalation Alert: " + n.Title,
		Blocks:  blocks,
	}
}
