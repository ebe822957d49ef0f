package keybackend

import (
	"fmt"
	"maps"
)

// KeysConfig holds configuration for loading signing keys.
type KeysConfig struct {
	Inline []KeyPair `mapstructure:"inline" yaml:"inline"` // Inline key pairs from config
	File   string    `mapstructure:"file" yaml:"file"`     // Path to JSON file containing key pairs
}

// NewSecretStore creates a MapSecretStore from the inline keys and the keys
// file. A key id present in both takes the file's secret, so a rotated secret
// can be dropped in without editing the config.
//
// Tokens without a "kid" header are verified with defaultKeyID, so once any
// key is configured that id must be among them. An empty store is allowed;
// it rejects every token.
func NewSecretStore(cfg KeysConfig, defaultKeyID string) (*MapSecretStore, error) {
	keys, err := indexKeys(cfg.Inline)
	if err != nil {
		return nil, fmt.Errorf("inline keys: %w", err)
	}

	if cfg.File != "" {
		fileKeys, err := LoadKeysFromFile(cfg.File)
		if err != nil {
			return nil, err
		}
		maps.Copy(keys, fileKeys)
	}

	store := NewMapSecretStore(keys)
	if store.Len() > 0 && !store.Has(defaultKeyID) {
		return nil, fmt.Errorf("default key id %q: %w", defaultKeyID, ErrKeyNotFound)
	}

	return store, nil
}
