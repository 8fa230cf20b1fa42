package persistence

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/talgya/decosim/internal/engine"
	"github.com/talgya/decosim/internal/zhl16"
)

// snapshotVersion is bumped when the record layout changes.
const snapshotVersion = 1

// Snapshot is an engine.StateStore keeping the state in a single msgpack
// file. Writes go to a temp file that is renamed over the old one.
type Snapshot struct {
	path string
}

var _ engine.StateStore = (*Snapshot)(nil)

// NewSnapshot returns a store backed by the file at path. The file need not
// exist yet.
func NewSnapshot(path string) (*Snapshot, error) {
	if path == "" {
		return nil, errors.New("snapshot path is required")
	}
	return &Snapshot{path: path}, nil
}

type snapshotRecord struct {
	Version      int                 `msgpack:"version"`
	Session      string              `msgpack:"session"`
	Revision     string              `msgpack:"revision"`
	Depth        float64             `msgpack:"depth"`
	Elapsed      float64             `msgpack:"elapsed"`
	Compartments []compartmentRecord `msgpack:"compartments"`
}

type compartmentRecord struct {
	ID       string  `msgpack:"id"`
	Nitrogen float64 `msgpack:"p_inert_nitrogen"`
	Helium   float64 `msgpack:"p_inert_helium"`
	Total    float64 `msgpack:"p_total"`
}

// Save replaces the snapshot file.
func (s *Snapshot) Save(st engine.State) error {
	rec := snapshotRecord{
		Version:      snapshotVersion,
		Session:      st.Session.String(),
		Revision:     string(st.Revision),
		Depth:        st.Depth,
		Elapsed:      st.Elapsed,
		Compartments: make([]compartmentRecord, len(st.Compartments)),
	}
	for i, c := range st.Compartments {
		rec.Compartments[i] = compartmentRecord{
			ID:       string(c.ID),
			Nitrogen: c.Nitrogen,
			Helium:   c.Helium,
			Total:    c.Total(),
		}
	}

	data, err := msgpack.Marshal(&rec)
	if err != nil {
		return errors.Wrap(err, "encode snapshot")
	}
	if err := writeFileAtomic(s.path, data, 0o644); err != nil {
		return errors.Wrap(err, "write snapshot")
	}
	return nil
}

// Load reads the snapshot file. A missing or undecodable file is reported
// as engine.ErrStateUnavailable.
func (s *Snapshot) Load() (engine.State, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return engine.State{}, errors.Wrapf(engine.ErrStateUnavailable, "read %s: %v", s.path, err)
	}

	var rec snapshotRecord
	if err := msgpack.Unmarshal(data, &rec); err != nil {
		return engine.State{}, errors.Wrapf(engine.ErrStateUnavailable, "decode %s: %v", s.path, err)
	}
	if rec.Version != snapshotVersion {
		return engine.State{}, errors.Wrapf(engine.ErrStateUnavailable, "snapshot version %d", rec.Version)
	}
	if len(rec.Compartments) == 0 {
		return engine.State{}, errors.Wrap(engine.ErrStateUnavailable, "snapshot has no compartments")
	}

	session, err := uuid.Parse(rec.Session)
	if err != nil {
		return engine.State{}, errors.Wrapf(engine.ErrStateUnavailable, "session: %v", err)
	}

	st := engine.State{
		Session:      session,
		Revision:     zhl16.Revision(rec.Revision),
		Depth:        rec.Depth,
		Elapsed:      rec.Elapsed,
		Compartments: make([]engine.CompartmentState, len(rec.Compartments)),
	}
	for i, c := range rec.Compartments {
		st.Compartments[i] = engine.CompartmentState{
			ID:       zhl16.CompartmentID(c.ID),
			Nitrogen: c.Nitrogen,
			Helium:   c.Helium,
		}
	}
	return st, nil
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	committed = true
	return nil
}
