package http

import (
	"net/http"

	"github.com/sagarc03/endpoint"
)

// Methods lists the HTTP methods a Dispatcher serves.
var Methods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
}

// BodyEncoding selects how a method's request body is decoded. It is either
// JSONBody or FormBody.
type BodyEncoding interface {
	bodyEncoding()
}

// JSONBody decodes the body as JSON and, when Schema is set, validates it.
type JSONBody struct {
	Schema endpoint.SchemaValidator
}

// FormBody decodes the body as a URL-encoded or multipart form. The handler
// receives url.Values.
type FormBody struct{}

func (JSONBody) bodyEncoding() {}
func (FormBody) bodyEncoding() {}

// MethodConfig is the policy applied to one HTTP method.
//
// Role is the minimum role required; endpoint.Anonymous skips the check. Note
// that the zero value requires a valid token, so configs for public methods
// must set Role explicitly or be left out of the map.
type MethodConfig struct {
	Role endpoint.Role
	Body BodyEncoding
}

// DefaultMethodConfig is applied to methods without an explicit config.
func DefaultMethodConfig() MethodConfig {
	return MethodConfig{Role: endpoint.Anonymous, Body: JSONBody{}}
}

func hasBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	default:
		return false
	}
}
