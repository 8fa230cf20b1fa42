package engine

import "github.com/pkg/errors"

// ErrStateUnavailable is returned when persisted state is missing or cannot
// be decoded. Callers must not treat it as a reason to start from the
// surface: that would erase real decompression obligation.
var ErrStateUnavailable = errors.New("compartment state unavailable")

// StateStore holds the latest State between simulation steps. Save
// replaces whatever was stored before.
type StateStore interface {
	Load() (State, error)
	Save(State) error
}
