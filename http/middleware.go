package http

import (
	"net/http"

	"github.com/sagarc03/endpoint"
)

// AuthMiddleware gates plain http.Handlers with the same permission check the
// dispatcher applies. endpoint.Anonymous disables the check. A nil auth
// rejects every token, as it does for New.
func AuthMiddleware(auth Authenticator, required endpoint.Role) func(http.Handler) http.Handler {
	if required < 0 {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	if auth == nil {
		auth = endpoint.NewAuthenticator(endpoint.AuthConfig{}, nil, nil)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := auth.CheckUserPermission(tokenFromRequest(r), required); err != nil {
				HandleError(w, r, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
