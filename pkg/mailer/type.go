package mailer

import "escalation-srv/pkg/log"

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	// SSL selects implicit TLS (port 465). Off means STARTTLS (port 587).
	SSL bool
}

// Attachment is an in-memory file attached to a message.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

type Message struct {
	To          []string
	Subject     string
	HTMLBody    string
	Attachments []Attachment
}

type implMailer struct {
	l      log.Logger
	config Config
}
