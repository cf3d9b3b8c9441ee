package errors

// ValidationError describes one invalid field in a request.
type ValidationError struct {
	Code     int
	Field    string
	Messages []string
}

// ValidationErrorCollector accumulates validation errors across fields.
type ValidationErrorCollector struct {
	errors []*ValidationError
}

// HTTPError is an error with an HTTP status attached, used at the delivery
// boundary.
type HTTPError struct {
	Code       int
	Message    string
	StatusCode int
}
