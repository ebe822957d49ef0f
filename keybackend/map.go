// Package keybackend provides SecretStore implementations for token-signing
// secrets.
package keybackend

import (
	"fmt"
)

// MapSecretStore retrieves secrets from an in-memory map.
// Suitable for configuration file-based key storage.
type MapSecretStore struct {
	keys map[string]string
}

// NewMapSecretStore creates a new map-based secret store with the given key id to secret mapping.
func NewMapSecretStore(keys map[string]string) *MapSecretStore {
	return &MapSecretStore{keys: keys}
}

// Lookup retrieves the secret for the given key id from the map.
func (s *MapSecretStore) Lookup(keyID string) (string, error) {
	secret, found := s.keys[keyID]
	if !found {
		return "", fmt.Errorf("key id %q: %w", keyID, ErrKeyNotFound)
	}
	return secret, nil
}

// Has reports whether the store holds a secret for keyID.
func (s *MapSecretStore) Has(keyID string) bool {
	_, found := s.keys[keyID]
	return found
}

// Len returns the number of keys in the store.
func (s *MapSecretStore) Len() int {
	return len(s.keys)
}
