// Package storage provides the local persistent key-value store used by the
// client to keep its session token, caches, and preferences across runs.
//
// Backends implement Storage and may fail. Callers that treat persistence as
// an optimization wrap a backend in a Persister, which never surfaces
// failures.
package storage

import "errors"

// ErrClosed is returned by backends used after Close.
var ErrClosed = errors.New("storage closed")

// Storage is a synchronous key-value byte store.
type Storage interface {
	// Get returns the value stored under key. ok is false when the key is absent.
	Get(key string) (value []byte, ok bool, err error)
	// Set stores value under key, replacing any previous value.
	Set(key string, value []byte) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(key string) error
}
