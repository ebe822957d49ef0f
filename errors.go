package endpoint

import "errors"

var (
	// ErrForbidden is returned when a request carries no credential or the
	// credential's role is below the endpoint's requirement.
	ErrForbidden = errors.New("forbidden")
	// ErrBadRequest is returned for malformed or expired credentials and bad input
	ErrBadRequest = errors.New("bad request")
	// ErrNotAllowed is returned when no handler is bound for a method
	ErrNotAllowed = errors.New("method not allowed")
	// ErrGeneric is the catch-all for failures that have no specific mapping
	ErrGeneric = errors.New("internal error")
	// ErrUnexpectedValidation is returned when a schema fails for a reason
	// other than a rule violation.
	ErrUnexpectedValidation = errors.New("unexpected validation error")
)

// ValidationError aggregates every rule violation reported by a schema into
// one human-readable message.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Message
}
