package http

import (
	"net/http"

	"escalation-srv/internal/report"
	pkgErrors "escalation-srv/pkg/errors"
	"escalation-srv/pkg/response"
)

var errMap = response.ErrorMapping{
	report.ErrConfigNotFound:  pkgErrors.NewNotFoundHTTPError("report config not found"),
	report.ErrConfigInactive:  pkgErrors.NewBadRequestHTTPError("report config is inactive"),
	report.ErrNoRecipients:    pkgErrors.NewBadRequestHTTPError("report config has no recipients"),
	report.ErrNameRequired:    pkgErrors.NewBadRequestHTTPError("name is required"),
	report.ErrInvalidSchedule: pkgErrors.NewBadRequestHTTPError("invalid report schedule"),
	report.ErrInvalidFormat:   pkgErrors.NewBadRequestHTTPError("invalid export format"),
	report.ErrInvalidPeriod:   pkgErrors.NewBadRequestHTTPError("invalid report period"),
	report.ErrAlreadyRunning:  pkgErrors.NewHTTPError(http.StatusConflict, "report run already in flight"),
}
