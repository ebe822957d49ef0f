package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sagarc03/endpoint"
)

// HandlerFunc is the route logic for one HTTP method. A returned error is
// translated by the dispatcher's ErrorResponder; a nil Response means 204.
type HandlerFunc func(ctx context.Context, rc *RequestContext, user endpoint.UserData) (Response, error)

// Authenticator checks credentials for the dispatcher. *endpoint.Authenticator
// implements it.
type Authenticator interface {
	GetUserData(token string) endpoint.Identity
	CheckUserPermission(token string, required endpoint.Role) error
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger used for pipeline diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithErrorResponder replaces the default error table.
func WithErrorResponder(responder ErrorResponder) Option {
	return func(d *Dispatcher) {
		if responder != nil {
			d.responder = responder
		}
	}
}

// WithMaxBodyBytes limits the size of request bodies. Zero means no limit.
func WithMaxBodyBytes(n int64) Option {
	return func(d *Dispatcher) {
		d.maxBodyBytes = n
	}
}

// WithExposeValidationErrors answers schema violations with 400 and the
// aggregated message instead of the generic error response.
func WithExposeValidationErrors(expose bool) Option {
	return func(d *Dispatcher) {
		d.exposeValidation = expose
	}
}

// Dispatcher binds per-method policy and handlers for one route and runs the
// request pipeline for each call.
//
// Configs are fixed at construction. Handlers are registered during startup;
// Register must not be called while requests are being served.
type Dispatcher struct {
	configs          map[string]MethodConfig
	handlers         map[string]HandlerFunc
	auth             Authenticator
	responder        ErrorResponder
	logger           *slog.Logger
	maxBodyBytes     int64
	exposeValidation bool
}

// New creates a Dispatcher. Config keys are HTTP methods, case-insensitive;
// methods without a config get DefaultMethodConfig. A nil auth rejects every
// token.
func New(configs map[string]MethodConfig, auth Authenticator, opts ...Option) (*Dispatcher, error) {
	d := &Dispatcher{
		configs:   make(map[string]MethodConfig, len(Methods)),
		handlers:  make(map[string]HandlerFunc, len(Methods)),
		auth:      auth,
		responder: DefaultErrors(),
		logger:    slog.Default(),
	}

	for method, cfg := range configs {
		method = strings.ToUpper(method)
		if !slices.Contains(Methods, method) {
			return nil, fmt.Errorf("new dispatcher: unsupported method %q", method)
		}
		if cfg.Body == nil {
			cfg.Body = JSONBody{}
		}
		d.configs[method] = cfg
	}

	for _, opt := range opts {
		opt(d)
	}

	if d.auth == nil {
		d.auth = endpoint.NewAuthenticator(endpoint.AuthConfig{}, nil, d.logger)
	}

	return d, nil
}

// Register binds fn to method, replacing any previous handler. A nil fn
// unbinds the method so it answers 405 again.
func (d *Dispatcher) Register(method string, fn HandlerFunc) error {
	method = strings.ToUpper(method)
	if !slices.Contains(Methods, method) {
		return fmt.Errorf("register handler: unsupported method %q", method)
	}

	if fn == nil {
		delete(d.handlers, method)
		return nil
	}

	d.handlers[method] = fn
	return nil
}

// Config returns the policy applied to method.
func (d *Dispatcher) Config(method string) MethodConfig {
	if cfg, ok := d.configs[strings.ToUpper(method)]; ok {
		return cfg
	}
	return DefaultMethodConfig()
}

// Bound reports whether a handler is registered for method.
func (d *Dispatcher) Bound(method string) bool {
	_, ok := d.handlers[strings.ToUpper(method)]
	return ok
}

// Handler returns the pipeline-wrapped handler for method, suitable for
// registering with a router. The handler bound at request time is used.
func (d *Dispatcher) Handler(method string) http.HandlerFunc {
	method = strings.ToUpper(method)
	return func(w http.ResponseWriter, r *http.Request) {
		d.serve(method, w, r)
	}
}

// Get returns the pipeline-wrapped GET handler.
func (d *Dispatcher) Get() http.HandlerFunc { return d.Handler(http.MethodGet) }

// Post returns the pipeline-wrapped POST handler.
func (d *Dispatcher) Post() http.HandlerFunc { return d.Handler(http.MethodPost) }

// Put returns the pipeline-wrapped PUT handler.
func (d *Dispatcher) Put() http.HandlerFunc { return d.Handler(http.MethodPut) }

// Patch returns the pipeline-wrapped PATCH handler.
func (d *Dispatcher) Patch() http.HandlerFunc { return d.Handler(http.MethodPatch) }

// Delete returns the pipeline-wrapped DELETE handler.
func (d *Dispatcher) Delete() http.HandlerFunc { return d.Handler(http.MethodDelete) }

// ServeHTTP dispatches on the request method.
func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	d.serve(r.Method, w, r)
}

// Mount registers every supported method for pattern on r.
func (d *Dispatcher) Mount(r chi.Router, pattern string) {
	for _, method := range Methods {
		r.Method(method, pattern, d.Handler(method))
	}
}
