package persistence

import (
	"io"

	"github.com/pkg/errors"

	"github.com/talgya/decosim/internal/engine"
)

// Store is a state store that may hold resources.
type Store interface {
	engine.StateStore
	io.Closer
}

// Driver names a store implementation.
const (
	DriverSQLite   = "sqlite"
	DriverSnapshot = "snapshot"
)

// OpenStore opens the store named by driver at path.
func OpenStore(driver, path string) (Store, error) {
	switch driver {
	case DriverSQLite:
		db, err := Open(path)
		if err != nil {
			return nil, err
		}
		return db, nil
	case DriverSnapshot:
		snap, err := NewSnapshot(path)
		if err != nil {
			return nil, err
		}
		return snap, nil
	}
	return nil, errors.Errorf("unknown store driver %q", driver)
}

// Close is a no-op; the snapshot file is not held open.
func (s *Snapshot) Close() error { return nil }
