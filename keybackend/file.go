package keybackend

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
)

// KeyPair is a token-signing secret and the key id tokens name it by.
type KeyPair struct {
	KeyID  string `json:"key_id" mapstructure:"key_id" yaml:"key_id"`
	Secret string `json:"secret" mapstructure:"secret" yaml:"secret"`
}

// LoadKeysFromFile loads signing keys from a JSON file.
// The file should contain an array of key pairs:
//
//	[
//	  {"key_id": "2024-01", "secret": "c2VjcmV0..."},
//	  {"key_id": "2024-07", "secret": "bmV3ZXI..."}
//	]
//
// Every entry needs both fields and key ids must be unique within the file.
func LoadKeysFromFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path is from trusted config file
	if err != nil {
		return nil, fmt.Errorf("read keys file: %w", err)
	}

	var pairs []KeyPair
	if err := json.Unmarshal(data, &pairs); err != nil {
		return nil, fmt.Errorf("parse keys file: %w", err)
	}

	keys, err := indexKeys(pairs)
	if err != nil {
		return nil, fmt.Errorf("keys file %s: %w", path, err)
	}
	return keys, nil
}

// indexKeys maps key id to secret, rejecting incomplete and repeated entries.
func indexKeys(pairs []KeyPair) (map[string]string, error) {
	keys := make(map[string]string, len(pairs))
	for i, p := range pairs {
		if p.KeyID == "" || p.Secret == "" {
			return nil, fmt.Errorf("entry %d: %w", i, ErrIncompleteKey)
		}
		if _, ok := keys[p.KeyID]; ok {
			return nil, fmt.Errorf("entry %d: key id %q: %w", i, p.KeyID, ErrDuplicateKeyID)
		}
		keys[p.KeyID] = p.Secret
	}
	return keys, nil
}
