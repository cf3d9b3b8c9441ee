// Package channel renders one logical notification into the wire payload of
// each supported channel family. Render functions are pure and never fail the
// dispatch: bad input degrades to a default payload for that channel.
package channel

import (
	"time"

	"escalation-srv/internal/model"
)

// Notification is the channel-independent view of an alert (or of a report
// summary dressed as an alert) handed to the adapters.
type Notification struct {
	AlertID string
	// RunID is set on report-summary notifications so their delivery logs
	// link back to the run's history row.
	RunID              string
	AlertType          string
	Title              string
	Message            string
	Severity           model.Severity
	EscalationLevel    int
	ProductionLineName string
	MachineName        string
	MetricValue        *float64
	Threshold          *float64
	Timestamp          time.Time
}

// slackPayload is the Block Kit message posted to Slack webhooks.
type slackPayload struct {
	Channel string       `json:"channel,omitempty"`
	Text    string       `json:"text"`
	Blocks  []slackBlock `json:"blocks"`
}

type slackBlock struct {
	Type   string      `json:"type"`
	Text   *slackText  `json:"text,omitempty"`
	Fields []slackText `json:"fields,omitempty"`
}

type slackText struct {
	Type  string `json:"type"`
	Text  string `json:"text"`
	Emoji bool   `json:"emoji,omitempty"`
}

// teamsPayload is the legacy MessageCard format accepted by Teams incoming
// webhooks.
type teamsPayload struct {
	Type       string         `json:"@type"`
	Context    string         `json:"@context"`
	ThemeColor string         `json:"themeColor"`
	Summary    string         `json:"summary"`
	Title      string         `json:"title"`
	Sections   []teamsSection `json:"sections"`
}

type teamsSection struct {
	ActivityTitle    string      `json:"activityTitle"`
	ActivitySubtitle string      `json:"activitySubtitle"`
	Text             string      `json:"text"`
	Facts            []teamsFact `json:"facts"`
}

type teamsFact struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// discordPayload wraps a single embed for Discord webhooks.
type discordPayload struct {
	Embeds []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Color       int            `json:"color"`
	Fields      []discordField `json:"fields"`
	Timestamp   string         `json:"timestamp"`
	Footer      discordFooter  `json:"footer"`
}

type discordField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type discordFooter struct {
	Text string `json:"text"`
}

// maxDetailFields caps the detail section of every chat payload.
const maxDetailFields = 10

// payloadFooter appears on rendered chat messages.
const payloadFooter = "SPC/CPK Alert System"
