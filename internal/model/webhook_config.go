package model

import "time"

// ChannelType identifies the wire format a webhook target expects.
type ChannelType string

const (
	ChannelSlack   ChannelType = "slack"
	ChannelTeams   ChannelType = "teams"
	ChannelDiscord ChannelType = "discord"
	ChannelCustom  ChannelType = "custom"
)

// IsValidChannelType reports whether t is a supported webhook channel type.
func IsValidChannelType(t ChannelType) bool {
	switch t {
	case ChannelSlack, ChannelTeams, ChannelDiscord, ChannelCustom:
		return true
	}
	return false
}

// WebhookConfig is one outgoing webhook channel binding. Exactly one
// ChannelType per config; the per-type rendering options are only consulted
// for their own type.
type WebhookConfig struct {
	ID          string
	Name        string
	Description string
	ChannelType ChannelType
	WebhookURL  string

	// Slack
	SlackChannel  string
	SlackMentions []string

	// Teams
	TeamsTitle string

	// Custom: headers merged onto Content-Type: application/json, body
	// template with {{placeholder}} substitution. An empty template falls
	// back to the default JSON shape.
	CustomHeaders      map[string]string
	CustomBodyTemplate string

	IncludeDetails bool
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
