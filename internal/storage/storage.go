// Package storage provides the local key/value store that holds the account,
// the session flag and the task bundle.
package storage

import (
	"errors"
	"fmt"
)

// Keys used by the application. The names match the browser local-storage
// keys so an exported browser store maps one to one.
const (
	// KeySession holds "true" while a user is logged in.
	KeySession = "isAuthenticated"

	// KeyAccount holds the single account record as JSON.
	KeyAccount = "userAccount"

	// KeyBundle holds the task bundle ({tasks, note}) as JSON.
	KeyBundle = "taskAppData"

	// KeyMirror holds the Google Tasks mirror map as JSON.
	KeyMirror = "googleTasksMirror"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// ErrUnknownBackend is returned by Open for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown storage backend")

// Store is an opaque-blob key/value store.
// Get reports ok=false for a missing key; Delete of a missing key is a no-op.
type Store interface {
	Get(key string) (value []byte, ok bool, err error)
	Set(key string, value []byte) error
	Delete(key string) error
	Close() error
}

// Open returns the backend named kind. dir is the directory for the file
// backend; dbPath is the database file for the sqlite backend.
func Open(kind, dir, dbPath string) (Store, error) {
	switch kind {
	case "", BackendFile:
		return NewFileStore(dir), nil
	case BackendSQLite:
		return NewSQLiteStore(dbPath)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, kind)
	}
}
