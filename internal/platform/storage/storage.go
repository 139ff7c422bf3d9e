// Package storage provides the tab-session-scoped key/value persistence the
// client's stores snapshot into. Entries live for one host session: they
// survive a reload of the same session but are never written to durable
// device storage, which bounds credential exposure to the session's life.
package storage

import "caselink/pkg/platform/sentinel"

// Storage persists opaque snapshots under string keys.
type Storage interface {
	// Load returns the snapshot for key, or sentinel.ErrNotFound.
	Load(key string) ([]byte, error)
	// Save overwrites the snapshot for key.
	Save(key string, value []byte) error
	// Delete removes the snapshot for key. Deleting a missing key is a no-op.
	Delete(key string) error
}

// ErrNotFound re-exports the sentinel so callers needn't import both packages.
var ErrNotFound = sentinel.ErrNotFound
