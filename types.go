package endpoint

// Role is a privilege level. Higher values are more privileged.
type Role int

// Anonymous is the role of a caller without a verified identity. As an
// endpoint requirement it disables the permission check.
const Anonymous Role = -1

// Identity is the user record carried by a credential token.
type Identity struct {
	Email       string `json:"email"`
	HashedEmail string `json:"hashedEmail"`
	Role        Role   `json:"role"`
	Username    string `json:"username"`
}

// AnonymousIdentity returns the identity used when no valid token is present.
func AnonymousIdentity() Identity {
	return Identity{Role: Anonymous}
}

// IsAnonymous reports whether the identity has no verified role.
func (i Identity) IsAnonymous() bool {
	return i.Role < 0
}

// UserData is handed to endpoint handlers next to the request context.
type UserData struct {
	Identity
	// Personality is read from the personality cookie; nil when the cookie is
	// absent or not an integer.
	Personality *int `json:"personality,omitempty"`
}
