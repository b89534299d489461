// Package kvstore provides the string keyed persistence used for user scoped
// settings, visit timestamps and calendar snapshots.
package kvstore

import (
	"context"
	"errors"
)

// ErrKeyEmpty is returned when a key is empty.
var ErrKeyEmpty = errors.New("kvstore key can not be empty")

// Store is a key/value persistence provider. Concurrent writers race with
// last-write-wins semantics.
type Store interface {
	// Get returns the stored value and true, or false when the key is absent.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set creates or overwrites the value stored under key.
	Set(ctx context.Context, key, value string) error
}

// Key returns prefix for the global scope, or prefix_scope for a user scope.
func Key(prefix, scope string) string {
	if scope == "" {
		return prefix
	}

	return prefix + "_" + scope
}

// Nop is the store used when no persistence provider is available.
// Every key is absent and writes are discarded.
type Nop struct{}

// Get always reports the key as absent.
func (Nop) Get(_ context.Context, _ string) (string, bool, error) {
	return "", false, nil
}

// Set discards the value.
func (Nop) Set(_ context.Context, _, _ string) error {
	return nil
}
