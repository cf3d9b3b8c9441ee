package http

import pkgErrors "escalation-srv/pkg/errors"

var (
	errWrongBody  = pkgErrors.NewBadRequestHTTPError("invalid request body")
	errWrongQuery = pkgErrors.NewBadRequestHTTPError("invalid query parameters")
)
