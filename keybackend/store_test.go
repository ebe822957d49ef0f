package keybackend_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sagarc03/endpoint"
	"github.com/sagarc03/endpoint/keybackend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSecretStore_FileOverridesInline(t *testing.T) {
	t.Parallel()

	path := writeKeysFile(t, `[
		{"key_id": "2024-01", "secret": "rotated-secret"},
		{"key_id": "2024-07", "secret": "file-secret"}
	]`)

	store, err := keybackend.NewSecretStore(keybackend.KeysConfig{
		Inline: []keybackend.KeyPair{
			{KeyID: "2024-01", Secret: "inline-secret"},
			{KeyID: "legacy", Secret: "legacy-secret"},
		},
		File: path,
	}, "2024-07")
	require.NoError(t, err)

	assert.Equal(t, 3, store.Len())

	secret, err := store.Lookup("2024-01")
	require.NoError(t, err)
	assert.Equal(t, "rotated-secret", secret)

	secret, err = store.Lookup("legacy")
	require.NoError(t, err)
	assert.Equal(t, "legacy-secret", secret)
}

func TestNewSecretStore_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		cfg          keybackend.KeysConfig
		defaultKeyID string
		wantErr      error
		wantMsg      string
	}{
		{
			name: "duplicate inline key id",
			cfg: keybackend.KeysConfig{Inline: []keybackend.KeyPair{
				{KeyID: "default", Secret: "a"},
				{KeyID: "default", Secret: "b"},
			}},
			defaultKeyID: "default",
			wantErr:      keybackend.ErrDuplicateKeyID,
			wantMsg:      "inline keys",
		},
		{
			name: "incomplete inline key",
			cfg: keybackend.KeysConfig{Inline: []keybackend.KeyPair{
				{KeyID: "default", Secret: "a"},
				{KeyID: "next"},
			}},
			defaultKeyID: "default",
			wantErr:      keybackend.ErrIncompleteKey,
			wantMsg:      "entry 1",
		},
		{
			name: "default key id not configured",
			cfg: keybackend.KeysConfig{Inline: []keybackend.KeyPair{
				{KeyID: "2024-01", Secret: "a"},
			}},
			defaultKeyID: "default",
			wantErr:      keybackend.ErrKeyNotFound,
			wantMsg:      `default key id "default"`,
		},
		{
			name:         "unreadable keys file",
			cfg:          keybackend.KeysConfig{File: "/nonexistent/keys.json"},
			defaultKeyID: "default",
			wantMsg:      "read keys file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := keybackend.NewSecretStore(tt.cfg, tt.defaultKeyID)

			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestNewSecretStore_EmptyConfig(t *testing.T) {
	t.Parallel()

	store, err := keybackend.NewSecretStore(keybackend.KeysConfig{}, "default")
	require.NoError(t, err)

	assert.Equal(t, 0, store.Len())
	_, err = store.Lookup("default")
	assert.ErrorIs(t, err, keybackend.ErrKeyNotFound)
}

func TestNewSecretStore_KeyRotation(t *testing.T) {
	t.Parallel()

	store, err := keybackend.NewSecretStore(keybackend.KeysConfig{
		Inline: []keybackend.KeyPair{
			{KeyID: "2024-01", Secret: "retiring-secret"},
			{KeyID: "2024-07", Secret: "current-secret"},
		},
	}, "2024-07")
	require.NoError(t, err)

	auth := endpoint.NewAuthenticator(
		endpoint.AuthConfig{DefaultKeyID: "2024-07"},
		store,
		slog.New(slog.DiscardHandler),
	)

	tests := []struct {
		name     string
		secret   string
		kid      string
		wantUser string
		wantErr  bool
	}{
		{name: "retiring key by kid", secret: "retiring-secret", kid: "2024-01", wantUser: "old"},
		{name: "current key by kid", secret: "current-secret", kid: "2024-07", wantUser: "new"},
		{name: "no kid uses default key", secret: "current-secret", wantUser: "plain"},
		{name: "no kid signed with retiring key", secret: "retiring-secret", wantErr: true},
		{name: "kid names other key", secret: "current-secret", kid: "2024-01", wantErr: true},
		{name: "unknown kid", secret: "current-secret", kid: "2025-01", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			username := tt.wantUser
			if username == "" {
				username = "someone"
			}
			identity, err := auth.Verify(signWithKey(t, tt.secret, tt.kid, username))

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantUser, identity.Username)
		})
	}
}

// signWithKey signs a one-hour token, naming kid in the header when set.
func signWithKey(t *testing.T, secret, kid, username string) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, endpoint.Claims{
		Username: username,
		Role:     1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	if kid != "" {
		token.Header["kid"] = kid
	}

	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}
