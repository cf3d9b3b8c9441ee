package http

import (
	"escalation-srv/internal/escalate"
	pkgErrors "escalation-srv/pkg/errors"
	"escalation-srv/pkg/response"
)

var errMap = response.ErrorMapping{
	escalate.ErrLevelNotFound: pkgErrors.NewNotFoundHTTPError("escalation level not found"),
	escalate.ErrInvalidPolicy: pkgErrors.NewBadRequestHTTPError("invalid escalation policy"),
}

var (
	errWrongBody  = pkgErrors.NewBadRequestHTTPError("invalid request body")
	errWrongQuery = pkgErrors.NewBadRequestHTTPError("invalid query parameters")
)
