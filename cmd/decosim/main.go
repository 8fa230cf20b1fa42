// Command decosim advances a diver's tissue state by one step and prints
// the resulting ceiling.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/talgya/decosim/internal/config"
	"github.com/talgya/decosim/internal/engine"
	"github.com/talgya/decosim/internal/log"
	"github.com/talgya/decosim/internal/persistence"
)

func main() {
	var (
		configPath = flag.String("config", "decosim.yaml", "path to the YAML configuration")
		depth      = flag.Float64("depth", -1, "target depth in metres; negative stays at the current depth")
		rate       = flag.Float64("rate", 10, "descent/ascent rate in metres per minute")
		hold       = flag.Float64("hold", 0, "minutes to stay at the target depth")
		reset      = flag.Bool("reset", false, "discard saved state and start at surface equilibrium")
		history    = flag.Int("history", 0, "print the last N logged segments (sqlite store only)")
		debug      = flag.Bool("debug", false, "log every compartment update")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if err := log.Init(cfg.Debug || *debug); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	eng, variant, err := cfg.Engine()
	if err != nil {
		log.Fatalw("invalid engine settings", "error", err)
	}

	// ── State store ──────────────────────────────────────────────────
	if err := os.MkdirAll(filepath.Dir(cfg.Store.Path), 0755); err != nil {
		log.Fatalw("failed to create state directory", "path", cfg.Store.Path, "error", err)
	}
	store, err := persistence.OpenStore(cfg.Store.Driver, cfg.Store.Path)
	if err != nil {
		log.Fatalw("failed to open state store", "driver", cfg.Store.Driver, "error", err)
	}
	defer store.Close()
	db, _ := store.(*persistence.DB)
	eng.Store = store

	// ── Hooks ────────────────────────────────────────────────────────
	eng.Options.OnCompartment = func(tr engine.CompartmentTrace) {
		log.Debugw("compartment",
			"segment", tr.Segment.Kind.String(),
			"id", tr.ID,
			"halftime", tr.HalfTime,
			"p_begin", tr.Begin,
			"p_end", tr.End,
		)
	}
	eng.OnSegment = func(r engine.SegmentReport) {
		log.Infow("segment complete",
			"session", r.State.Session,
			"segment", r.Segment.String(),
			"runtime", engine.RunTime(r.State.Elapsed),
		)
		if db != nil {
			if err := db.LogSegment(r); err != nil {
				log.Warnw("failed to log segment", "error", err)
			}
		}
	}

	// ── Load or reset ────────────────────────────────────────────────
	if *reset {
		st, err := eng.Reset()
		if err != nil {
			log.Fatalw("reset failed", "error", err)
		}
		log.Infow("state reset to surface equilibrium", "session", st.Session, "revision", st.Revision)
	}

	state, err := store.Load()
	if errors.Is(err, engine.ErrStateUnavailable) {
		log.Fatalw("no usable saved state; run with -reset to start a new dive", "error", err)
	} else if err != nil {
		log.Fatalw("failed to load state", "error", err)
	}

	profile, err := buildProfile(state.Depth, *depth, *rate, *hold)
	if err != nil {
		log.Fatalw("invalid segment", "error", err)
	}

	// ── Simulate ─────────────────────────────────────────────────────
	state, err = eng.Run(state, profile)
	if err != nil {
		log.Fatalw("simulation failed", "error", err)
	}

	ceiling, err := engine.CeilingFor(state, eng.Table, variant)
	if err != nil {
		log.Fatalw("ceiling calculation failed", "error", err)
	}
	printReport(os.Stdout, state, ceiling)

	if *history > 0 && db != nil {
		records, err := db.RecentSegments(state.Session, *history)
		if err != nil {
			log.Fatalw("failed to read segment log", "error", err)
		}
		printHistory(os.Stdout, records)
	}
}

// buildProfile turns the command-line request into segments starting at the
// current depth.
func buildProfile(current, target, rate, hold float64) ([]engine.Segment, error) {
	var profile []engine.Segment
	end := current

	if target >= 0 && target != current {
		seg, err := engine.Travel(current, target, rate)
		if err != nil {
			return nil, err
		}
		profile = append(profile, seg)
		end = target
	}
	if hold > 0 {
		seg, err := engine.NewHold(end, hold)
		if err != nil {
			return nil, err
		}
		profile = append(profile, seg)
	}
	return profile, nil
}
