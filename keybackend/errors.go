package keybackend

import "errors"

var (
	// ErrKeyNotFound is returned when the key id does not exist in the store.
	ErrKeyNotFound = errors.New("signing key not found")

	// ErrDuplicateKeyID is returned when one key source names the same key id twice.
	ErrDuplicateKeyID = errors.New("duplicate signing key id")

	// ErrIncompleteKey is returned for a key entry missing its id or secret.
	ErrIncompleteKey = errors.New("signing key needs key_id and secret")
)
