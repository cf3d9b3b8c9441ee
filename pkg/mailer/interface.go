package mailer

import "context"

type Mailer interface {
	// Send delivers one HTML email, optionally with attachments.
	Send(ctx context.Context, msg Message) error
}
