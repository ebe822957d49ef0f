package keybackend_test

import (
	"testing"

	"github.com/sagarc03/endpoint"
	"github.com/sagarc03/endpoint/keybackend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapSecretStore_Lookup(t *testing.T) {
	keys := map[string]string{
		"2024-01": "retiring-secret",
		"2024-07": "current-secret",
	}

	tests := []struct {
		name       string
		keys       map[string]string
		keyID      string
		wantSecret string
		wantErr    error
	}{
		{name: "known key id", keys: keys, keyID: "2024-07", wantSecret: "current-secret"},
		{name: "unknown key id", keys: keys, keyID: "2025-01", wantErr: keybackend.ErrKeyNotFound},
		{name: "nil store", keys: nil, keyID: "default", wantErr: keybackend.ErrKeyNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var store endpoint.SecretStore = keybackend.NewMapSecretStore(tt.keys)
			gotSecret, err := store.Lookup(tt.keyID)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Contains(t, err.Error(), tt.keyID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSecret, gotSecret)
		})
	}
}

func TestMapSecretStore_HasAndLen(t *testing.T) {
	store := keybackend.NewMapSecretStore(map[string]string{"a": "1", "b": "2"})
	assert.Equal(t, 2, store.Len())
	assert.True(t, store.Has("a"))
	assert.False(t, store.Has("c"))

	empty := keybackend.NewMapSecretStore(nil)
	assert.Equal(t, 0, empty.Len())
	assert.False(t, empty.Has(""))
}
