package keybackend_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sagarc03/endpoint/keybackend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadKeysFromFile(t *testing.T) {
	t.Parallel()

	path := writeKeysFile(t, `[
		{"key_id": "2024-01", "secret": "first-signing-secret"},
		{"key_id": "2024-07", "secret": "second-signing-secret", "note": "ignored"}
	]`)

	keys, err := keybackend.LoadKeysFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"2024-01": "first-signing-secret",
		"2024-07": "second-signing-secret",
	}, keys)
}

func TestLoadKeysFromFile_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr error
		wantMsg string
	}{
		{
			name:    "repeated key id",
			content: `[{"key_id": "2024-01", "secret": "a"}, {"key_id": "2024-01", "secret": "b"}]`,
			wantErr: keybackend.ErrDuplicateKeyID,
			wantMsg: `entry 1: key id "2024-01"`,
		},
		{
			name:    "entry without secret",
			content: `[{"key_id": "2024-01", "secret": ""}]`,
			wantErr: keybackend.ErrIncompleteKey,
			wantMsg: "entry 0",
		},
		{
			name:    "entry without key id",
			content: `[{"key_id": "2024-01", "secret": "a"}, {"secret": "b"}]`,
			wantErr: keybackend.ErrIncompleteKey,
			wantMsg: "entry 1",
		},
		{
			name:    "object instead of array",
			content: `{"key_id": "2024-01", "secret": "a"}`,
			wantMsg: "parse keys file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := keybackend.LoadKeysFromFile(writeKeysFile(t, tt.content))

			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoadKeysFromFile_FileNotFound(t *testing.T) {
	t.Parallel()

	_, err := keybackend.LoadKeysFromFile(filepath.Join(t.TempDir(), "missing.json"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "read keys file")
}

// writeKeysFile creates a temporary keys file with the given content.
func writeKeysFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "keys.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}
