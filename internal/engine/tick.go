package engine

import (
	"fmt"
	"math"

	"github.com/pkg/errors"

	"github.com/talgya/decosim/internal/zhl16"
)

// depthTolerance is how far a segment may start from where the previous one
// ended before the profile is rejected as discontinuous.
const depthTolerance = 1e-9

// SegmentReport is passed to OnSegment after each segment.
type SegmentReport struct {
	Index   int
	Segment Segment
	State   State
}

// Engine chains segments over a state, saving after each one when a store
// is set.
type Engine struct {
	Table   *zhl16.Table
	Gas     GasMix
	Options Options
	Store   StateStore // optional for Run, required for Step and Reset

	// Called after each segment, once the state has been saved.
	OnSegment func(SegmentReport)
}

// NewEngine creates an engine breathing air with the standard water vapour
// pressure.
func NewEngine(table *zhl16.Table, m Model) *Engine {
	return &Engine{
		Table:   table,
		Gas:     Air(),
		Options: DefaultOptions(m),
	}
}

// Run applies profile to state in order. Each segment must start at the
// depth the previous one ended at.
func (e *Engine) Run(state State, profile []Segment) (State, error) {
	for i, seg := range profile {
		if math.Abs(seg.StartDepth-state.Depth) > depthTolerance {
			return state, errors.Wrapf(zhl16.ErrDomain,
				"segment %d starts at %g m, state is at %g m", i, seg.StartDepth, state.Depth)
		}

		next, err := RunSegment(state, seg, e.Gas, e.Table, e.Options)
		if err != nil {
			return state, errors.Wrapf(err, "segment %d", i)
		}

		if e.Store != nil {
			if err := e.Store.Save(next); err != nil {
				return state, errors.Wrapf(err, "save after segment %d", i)
			}
		}
		state = next

		if e.OnSegment != nil {
			e.OnSegment(SegmentReport{Index: i, Segment: seg, State: state})
		}
	}
	return state, nil
}

// Step loads the stored state, applies profile and saves the result.
func (e *Engine) Step(profile ...Segment) (State, error) {
	if e.Store == nil {
		return State{}, errors.Wrap(ErrStateUnavailable, "no state store configured")
	}
	state, err := e.Store.Load()
	if err != nil {
		return State{}, err
	}
	if state.Revision != e.Table.Revision() {
		return State{}, errors.Wrapf(zhl16.ErrUnknownCompartment,
			"stored state uses %s table, engine uses %s", state.Revision, e.Table.Revision())
	}
	return e.Run(state, profile)
}

// Reset stores a fresh surface-equilibrium state, discarding any saved one.
func (e *Engine) Reset() (State, error) {
	if e.Store == nil {
		return State{}, errors.Wrap(ErrStateUnavailable, "no state store configured")
	}
	state, err := NewSurfaceState(e.Table, e.Gas, e.Options.WaterVapor)
	if err != nil {
		return State{}, err
	}
	if err := e.Store.Save(state); err != nil {
		return State{}, errors.Wrap(err, "save surface state")
	}
	return state, nil
}

// RunTime formats elapsed minutes as m:ss.
func RunTime(minutes float64) string {
	total := int64(math.Round(minutes * 60))
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
