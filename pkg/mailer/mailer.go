package mailer

import (
	"bytes"
	"context"
	"io"

	"github.com/friendsofgo/errors"
	"gopkg.in/gomail.v2"

	"escalation-srv/pkg/log"
)

// New builds an SMTP-backed Mailer.
func New(l log.Logger, cfg Config) Mailer {
	return &implMailer{l: l, config: cfg}
}

func (m *implMailer) Send(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return errNoRecipients
	}

	gm := gomail.NewMessage()
	gm.SetHeader("From", m.config.From)
	gm.SetHeader("To", msg.To...)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/html", msg.HTMLBody)

	for _, att := range msg.Attachments {
		data := att.Data
		gm.Attach(att.Filename,
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := io.Copy(w, bytes.NewReader(data))
				return err
			}),
			gomail.SetHeader(map[string][]string{
				"Content-Type": {att.ContentType},
			}),
		)
	}

	d := gomail.NewDialer(m.config.Host, m.config.Port, m.config.Username, m.config.Password)
	d.SSL = m.config.SSL // true = 465 SSL, false = 587 STARTTLS

	if err := d.DialAndSend(gm); err != nil {
		m.l.Errorf(ctx, "pkg.mailer.Send: %v", err)
		return errors.Wrap(err, "failed to send email")
	}

	return nil
}
