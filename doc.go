// Package endpoint provides the identity and validation building blocks of a
// declarative HTTP endpoint dispatcher.
//
// Route implementations declare, per HTTP method, the role they require, how
// the request body is encoded and which schema it must satisfy. The http
// subpackage turns those declarations into handlers that authenticate,
// decode, validate and translate errors before the route logic runs.
//
// # Key Components
//
//   - Authenticator: decodes JWT credential tokens into an Identity
//     (GetUserData) and checks role requirements (CheckUserPermission)
//   - SecretStore: resolves signing secrets by key id (see keybackend)
//   - SchemaValidator: parses payloads and reports rule violations as a
//     single *ValidationError; StructSchema implements it with
//     go-playground/validator tags
//
// # Roles
//
// Roles are ordered integers. Anonymous (-1) is both the role of a caller
// without a valid token and, as an endpoint requirement, "no check". A
// requirement of 0 admits any caller with a valid token.
//
// # Example Usage
//
//	store := keybackend.NewMapSecretStore(map[string]string{"default": secret})
//	auth := endpoint.NewAuthenticator(endpoint.AuthConfig{DefaultKeyID: "default"}, store, nil)
//
//	if err := auth.CheckUserPermission(token, 3); err != nil {
//	    // errors.Is(err, endpoint.ErrForbidden) or endpoint.ErrBadRequest
//	}
//
//	user := auth.GetUserData(token) // never fails
package endpoint
