package http

import (
	"escalation-srv/internal/dispatch"
	pkgErrors "escalation-srv/pkg/errors"
	"escalation-srv/pkg/response"
)

var errMap = response.ErrorMapping{
	dispatch.ErrConfigNotFound:     pkgErrors.NewNotFoundHTTPError("webhook config not found"),
	dispatch.ErrConfigInactive:     pkgErrors.NewBadRequestHTTPError("webhook config is inactive"),
	dispatch.ErrInvalidChannelType: pkgErrors.NewBadRequestHTTPError("invalid channel type"),
	dispatch.ErrWebhookURLRequired: pkgErrors.NewBadRequestHTTPError("webhook url is required"),
	dispatch.ErrNameRequired:       pkgErrors.NewBadRequestHTTPError("name is required"),
}
