package http

import (
	"errors"
	"net/http"

	"github.com/sagarc03/endpoint"
)

// ErrorKind names a class of failure with a fixed HTTP response.
type ErrorKind int

const (
	// KindGeneric covers unexpected failures; the client gets a 500.
	KindGeneric ErrorKind = iota
	// KindForbidden is a missing credential or insufficient role.
	KindForbidden
	// KindBadRequest is an unverifiable credential or a rejected payload.
	KindBadRequest
	// KindNotAllowed is a method with no bound handler.
	KindNotAllowed
)

func (k ErrorKind) String() string {
	switch k {
	case KindForbidden:
		return "forbidden"
	case KindBadRequest:
		return "bad_request"
	case KindNotAllowed:
		return "not_allowed"
	default:
		return "generic"
	}
}

// KindOf classifies err. Anything outside the endpoint sentinels is generic.
func KindOf(err error) ErrorKind {
	switch {
	case errors.Is(err, endpoint.ErrForbidden):
		return KindForbidden
	case errors.Is(err, endpoint.ErrBadRequest):
		return KindBadRequest
	case errors.Is(err, endpoint.ErrNotAllowed):
		return KindNotAllowed
	default:
		return KindGeneric
	}
}

// ErrorResponder maps an error kind to the response sent to the client.
type ErrorResponder interface {
	Respond(kind ErrorKind) Response
}

// ErrorMapping is the status and JSON body written for one error kind.
type ErrorMapping struct {
	Status  int
	Code    string
	Message string
}

// ErrorTable is an ErrorResponder backed by a lookup table. Kinds missing
// from the table use the KindGeneric entry.
type ErrorTable map[ErrorKind]ErrorMapping

// DefaultErrors returns the table used when no responder is configured.
func DefaultErrors() ErrorTable {
	return ErrorTable{
		KindForbidden:  {Status: http.StatusForbidden, Code: "forbidden", Message: "Forbidden"},
		KindBadRequest: {Status: http.StatusBadRequest, Code: "bad_request", Message: "Bad request"},
		KindNotAllowed: {Status: http.StatusMethodNotAllowed, Code: "method_not_allowed", Message: "Method not allowed"},
		KindGeneric:    {Status: http.StatusInternalServerError, Code: "internal_error", Message: "Internal server error"},
	}
}

// Respond implements ErrorResponder.
func (t ErrorTable) Respond(kind ErrorKind) Response {
	m, ok := t[kind]
	if !ok {
		m, ok = t[KindGeneric]
	}
	if !ok {
		m = ErrorMapping{Status: http.StatusInternalServerError, Code: "internal_error", Message: "Internal server error"}
	}
	return Error(m.Status, m.Code, m.Message)
}
