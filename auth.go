package endpoint

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SigningMethods lists the JWT algorithms accepted by the Authenticator.
var SigningMethods = []string{"HS256", "HS384", "HS512"}

// SecretStore resolves a token-signing secret by key id.
type SecretStore interface {
	Lookup(keyID string) (string, error)
}

// AuthConfig configures token verification.
type AuthConfig struct {
	// DefaultKeyID is used for tokens whose header carries no "kid".
	DefaultKeyID string
	// Leeway is the clock skew tolerated on exp/nbf/iat.
	Leeway time.Duration
}

// Claims is the JWT payload carrying an Identity.
type Claims struct {
	Email       string `json:"email"`
	HashedEmail string `json:"hashedEmail"`
	Role        Role   `json:"role"`
	Username    string `json:"username"`
	jwt.RegisteredClaims
}

// Identity returns the user record carried by the claims.
func (c *Claims) Identity() Identity {
	return Identity{
		Email:       c.Email,
		HashedEmail: c.HashedEmail,
		Role:        c.Role,
		Username:    c.Username,
	}
}

// Authenticator decodes credential tokens into identities and checks role
// requirements against them.
type Authenticator struct {
	config AuthConfig
	store  SecretStore
	parser *jwt.Parser
	logger *slog.Logger
}

// NewAuthenticator creates an Authenticator that resolves signing secrets
// through store. A nil logger falls back to slog.Default().
func NewAuthenticator(cfg AuthConfig, store SecretStore, logger *slog.Logger) *Authenticator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Authenticator{
		config: cfg,
		store:  store,
		parser: jwt.NewParser(
			jwt.WithValidMethods(SigningMethods),
			jwt.WithLeeway(cfg.Leeway),
		),
		logger: logger,
	}
}

// Verify checks the token's signature and registered claims and returns the
// identity it carries.
func (a *Authenticator) Verify(token string) (Identity, error) {
	if token == "" {
		return Identity{}, errors.New("verify token: empty token")
	}

	claims := &Claims{}
	if _, err := a.parser.ParseWithClaims(token, claims, a.keyFunc); err != nil {
		return Identity{}, fmt.Errorf("verify token: %w", err)
	}

	return claims.Identity(), nil
}

// GetUserData returns the identity carried by token. It never fails: an
// absent token yields the anonymous identity, and a token that does not
// verify is logged and also yields the anonymous identity.
func (a *Authenticator) GetUserData(token string) Identity {
	if token == "" {
		return AnonymousIdentity()
	}

	identity, err := a.Verify(token)
	if err != nil {
		a.logger.Warn("invalid credential token", "err", err)
		return AnonymousIdentity()
	}

	return identity
}

// CheckUserPermission returns nil when token is valid and its role is at
// least required. An absent token or an insufficient role yields
// ErrForbidden, a token that fails verification yields ErrBadRequest.
// A negative requirement only checks that the token verifies.
func (a *Authenticator) CheckUserPermission(token string, required Role) error {
	if token == "" {
		return fmt.Errorf("missing credential: %w", ErrForbidden)
	}

	identity, err := a.Verify(token)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBadRequest, err)
	}

	if required >= 0 && identity.Role < required {
		return fmt.Errorf("role %d below required %d: %w", identity.Role, required, ErrForbidden)
	}

	return nil
}

func (a *Authenticator) keyFunc(token *jwt.Token) (any, error) {
	if a.store == nil {
		return nil, errors.New("no secret store configured")
	}

	keyID := a.config.DefaultKeyID
	if kid, ok := token.Header["kid"].(string); ok && kid != "" {
		keyID = kid
	}

	secret, err := a.store.Lookup(keyID)
	if err != nil {
		return nil, fmt.Errorf("lookup signing key %q: %w", keyID, err)
	}

	return []byte(secret), nil
}
