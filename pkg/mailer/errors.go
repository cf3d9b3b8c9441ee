package mailer

import "errors"

var errNoRecipients = errors.New("no recipients provided for email")
