// Package persistence provides durable storage for compartment state.
package persistence

import (
	"database/sql"
	"strconv"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/talgya/decosim/internal/engine"
	"github.com/talgya/decosim/internal/zhl16"
)

// DB is a SQLite-backed engine.StateStore. It holds one state snapshot plus
// a log of the segments that produced it.
type DB struct {
	conn *sqlx.DB
}

var _ engine.StateStore = (*DB)(nil)

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, errors.Wrap(err, "open db")
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "migrate")
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS compartments (
		id TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		p_inert_nitrogen REAL NOT NULL,
		p_inert_helium REAL NOT NULL,
		p_total REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS segments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session TEXT NOT NULL,
		kind TEXT NOT NULL,
		start_depth REAL NOT NULL,
		end_depth REAL NOT NULL,
		rate REAL NOT NULL,
		duration REAL NOT NULL,
		elapsed REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS dive_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_segments_session ON segments(session);
	`
	_, err := db.conn.Exec(schema)
	return err
}

const (
	metaSession  = "session"
	metaRevision = "revision"
	metaDepth    = "depth"
	metaElapsed  = "elapsed"
)

type compartmentRow struct {
	ID       string  `db:"id"`
	Position int     `db:"position"`
	Nitrogen float64 `db:"p_inert_nitrogen"`
	Helium   float64 `db:"p_inert_helium"`
	Total    float64 `db:"p_total"`
}

// Save replaces the stored state.
func (db *DB) Save(s engine.State) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM compartments"); err != nil {
		return err
	}

	stmt, err := tx.Preparex(`INSERT INTO compartments
		(id, position, p_inert_nitrogen, p_inert_helium, p_total)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, c := range s.Compartments {
		if _, err := stmt.Exec(string(c.ID), i, c.Nitrogen, c.Helium, c.Total()); err != nil {
			return errors.Wrapf(err, "insert compartment %s", c.ID)
		}
	}

	meta := map[string]string{
		metaSession:  s.Session.String(),
		metaRevision: string(s.Revision),
		metaDepth:    formatFloat(s.Depth),
		metaElapsed:  formatFloat(s.Elapsed),
	}
	for k, v := range meta {
		if _, err := tx.Exec("INSERT OR REPLACE INTO dive_meta (key, value) VALUES (?, ?)", k, v); err != nil {
			return errors.Wrapf(err, "save meta %s", k)
		}
	}

	return tx.Commit()
}

// HasState reports whether a state snapshot has been saved.
func (db *DB) HasState() bool {
	var count int
	if err := db.conn.Get(&count, "SELECT COUNT(*) FROM compartments"); err != nil {
		return false
	}
	_, err := db.getMeta(metaSession)
	return count > 0 && err == nil
}

// Load returns the stored state. A missing or unreadable snapshot is
// reported as engine.ErrStateUnavailable.
func (db *DB) Load() (engine.State, error) {
	var rows []compartmentRow
	if err := db.conn.Select(&rows,
		"SELECT id, position, p_inert_nitrogen, p_inert_helium, p_total FROM compartments ORDER BY position",
	); err != nil {
		return engine.State{}, errors.Wrapf(engine.ErrStateUnavailable, "select compartments: %v", err)
	}
	if len(rows) == 0 {
		return engine.State{}, errors.Wrap(engine.ErrStateUnavailable, "no compartments saved")
	}

	meta := make(map[string]string, 4)
	for _, k := range []string{metaSession, metaRevision, metaDepth, metaElapsed} {
		v, err := db.getMeta(k)
		if err != nil {
			return engine.State{}, errors.Wrapf(engine.ErrStateUnavailable, "meta %s: %v", k, err)
		}
		meta[k] = v
	}

	s := engine.State{
		Revision:     zhl16.Revision(meta[metaRevision]),
		Compartments: make([]engine.CompartmentState, 0, len(rows)),
	}
	var err error
	if s.Session, err = uuid.Parse(meta[metaSession]); err != nil {
		return engine.State{}, errors.Wrapf(engine.ErrStateUnavailable, "session: %v", err)
	}
	if s.Depth, err = strconv.ParseFloat(meta[metaDepth], 64); err != nil {
		return engine.State{}, errors.Wrapf(engine.ErrStateUnavailable, "depth: %v", err)
	}
	if s.Elapsed, err = strconv.ParseFloat(meta[metaElapsed], 64); err != nil {
		return engine.State{}, errors.Wrapf(engine.ErrStateUnavailable, "elapsed: %v", err)
	}

	for _, r := range rows {
		s.Compartments = append(s.Compartments, engine.CompartmentState{
			ID:       zhl16.CompartmentID(r.ID),
			Nitrogen: r.Nitrogen,
			Helium:   r.Helium,
		})
	}
	return s, nil
}

func (db *DB) getMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM dive_meta WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", errors.Errorf("%s not saved", key)
	}
	return value, err
}

// SegmentRecord is one logged segment.
type SegmentRecord struct {
	Session    string  `db:"session"`
	Kind       string  `db:"kind"`
	StartDepth float64 `db:"start_depth"`
	EndDepth   float64 `db:"end_depth"`
	Rate       float64 `db:"rate"`
	Duration   float64 `db:"duration"`
	Elapsed    float64 `db:"elapsed"` // run time at the end of the segment
}

// LogSegment appends a segment to the log. It is meant to be wired to
// engine.Engine.OnSegment.
func (db *DB) LogSegment(r engine.SegmentReport) error {
	_, err := db.conn.Exec(`INSERT INTO segments
		(session, kind, start_depth, end_depth, rate, duration, elapsed)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.State.Session.String(), r.Segment.Kind.String(),
		r.Segment.StartDepth, r.Segment.EndDepth, r.Segment.Rate, r.Segment.Duration,
		r.State.Elapsed,
	)
	return err
}

// RecentSegments returns the most recent segments of a session, newest first.
func (db *DB) RecentSegments(session uuid.UUID, limit int) ([]SegmentRecord, error) {
	var out []SegmentRecord
	err := db.conn.Select(&out,
		`SELECT session, kind, start_depth, end_depth, rate, duration, elapsed
		 FROM segments WHERE session = ? ORDER BY id DESC LIMIT ?`,
		session.String(), limit,
	)
	return out, err
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
