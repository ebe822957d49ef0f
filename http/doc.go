// Package http turns declarative per-method endpoint policy into net/http
// handlers.
//
// A Dispatcher holds, for one route, a MethodConfig per HTTP method (required
// role, body encoding, optional schema) and the handler registered for each
// method. Every call runs the same pipeline:
//
//  1. No handler registered: 405 from the ErrorResponder, nothing else runs
//  2. Permission check when the required role is not endpoint.Anonymous
//  3. Body acquisition for POST, PUT and PATCH (JSON or form), with schema
//     validation for JSON bodies
//  4. RequestContext and UserData assembly
//  5. Handler invocation; returned errors are mapped by kind
//
// Panics are recovered and answered with the generic error response, so every
// failure produces a well-formed JSON body.
//
// # Usage
//
//	notes, err := http.New(map[string]http.MethodConfig{
//	    "GET":  {Role: endpoint.Anonymous},
//	    "POST": {Role: 1, Body: http.JSONBody{Schema: endpoint.NewStructSchema[createNote]()}},
//	}, auth)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	_ = notes.Register("POST", func(ctx context.Context, rc *http.RequestContext, user endpoint.UserData) (http.Response, error) {
//	    in := rc.Body.(createNote)
//	    return http.JSON(201, store.Add(user.Username, in)), nil
//	})
//
//	router := http.NewRouter(corsCfg, http.Route{Pattern: "/notes", Dispatcher: notes})
//
// # Credentials
//
// The token is read from the "token" cookie, falling back to an
// "Authorization: Bearer" header. The optional "personality" cookie is parsed
// as an integer into UserData.Personality.
//
// # Errors
//
// Validation and body failures collapse to the generic response unless
// WithExposeValidationErrors is set. Handlers may return endpoint.ErrForbidden,
// endpoint.ErrBadRequest or endpoint.ErrNotAllowed (wrapped or not) to get
// the matching response; any other error is generic.
package http
