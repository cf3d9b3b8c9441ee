package sms

import "context"

type Sender interface {
	// Send delivers one text message to a phone number in E.164 form.
	Send(ctx context.Context, to, body string) error
}
