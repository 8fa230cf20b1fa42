// Package engine advances compartment state across a dive profile.
package engine

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/talgya/decosim/internal/zhl16"
)

// Model selects the gas loading formula. The zero value is not a model;
// callers must pick one.
type Model uint8

const (
	ModelUnset Model = iota
	// ModelSchreiner integrates linear depth changes exactly.
	ModelSchreiner
	// ModelInstantaneous applies each segment as a step to its end depth.
	ModelInstantaneous
)

func (m Model) String() string {
	switch m {
	case ModelSchreiner:
		return "schreiner"
	case ModelInstantaneous:
		return "instantaneous"
	}
	return "unset"
}

// ParseModel accepts "schreiner" or "instantaneous".
func ParseModel(s string) (Model, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "schreiner":
		return ModelSchreiner, nil
	case "instantaneous":
		return ModelInstantaneous, nil
	}
	return ModelUnset, errors.Errorf("unknown loading model %q", s)
}

// CompartmentTrace describes one compartment update.
type CompartmentTrace struct {
	Segment  Segment
	ID       zhl16.CompartmentID
	HalfTime float64
	Begin    float64 // nitrogen pressure entering the segment
	End      float64
}

// Options configures RunSegment.
type Options struct {
	Model      Model
	WaterVapor float64

	// OnCompartment, if set, is called after each compartment update.
	OnCompartment func(CompartmentTrace)
}

// DefaultOptions uses the given model with the standard water vapour
// pressure.
func DefaultOptions(m Model) Options {
	return Options{Model: m, WaterVapor: zhl16.WaterVaporPressure}
}

// RunSegment applies one segment to every compartment of prev and returns
// the new state. prev is not modified.
func RunSegment(prev State, seg Segment, gas GasMix, table *zhl16.Table, opts Options) (State, error) {
	if err := seg.Validate(); err != nil {
		return State{}, err
	}
	if err := gas.Validate(); err != nil {
		return State{}, err
	}
	if err := validateWaterVapor(opts.WaterVapor); err != nil {
		return State{}, err
	}
	if opts.Model != ModelSchreiner && opts.Model != ModelInstantaneous {
		return State{}, errors.Wrapf(zhl16.ErrDomain, "loading model %s", opts.Model)
	}
	if err := prev.Validate(table); err != nil {
		return State{}, err
	}

	// Inspired nitrogen at the start of the segment and its rate of change.
	pAmbient := zhl16.InspiredPressure(zhl16.DepthToAmbientPressure(seg.StartDepth), gas.Nitrogen, opts.WaterVapor)
	rate := seg.PressureRate() * gas.Nitrogen

	next := prev.Clone()
	for i := range next.Compartments {
		cs := &next.Compartments[i]

		c, err := table.Lookup(cs.ID)
		if err != nil {
			return State{}, err
		}
		k, err := c.DecayConstant()
		if err != nil {
			return State{}, err
		}

		begin := cs.Nitrogen
		switch opts.Model {
		case ModelSchreiner:
			cs.Nitrogen = zhl16.SchreinerLoading(begin, seg.Duration, rate, k, pAmbient)
		case ModelInstantaneous:
			cs.Nitrogen = zhl16.Round(zhl16.InstantaneousLoading(begin, gas.Nitrogen, seg.Duration, c.HalfTime, seg.EndDepth))
		}

		if opts.OnCompartment != nil {
			opts.OnCompartment(CompartmentTrace{
				Segment:  seg,
				ID:       c.ID,
				HalfTime: c.HalfTime,
				Begin:    begin,
				End:      cs.Nitrogen,
			})
		}
	}

	next.Depth = seg.EndDepth
	next.Elapsed += seg.Duration
	return next, nil
}

// CeilingFor computes the per-compartment and governing ceiling of state.
func CeilingFor(state State, table *zhl16.Table, v zhl16.Variant) (zhl16.Ceiling, error) {
	if err := state.Validate(table); err != nil {
		return zhl16.Ceiling{}, err
	}
	return table.ComputeCeiling(v, state.Pressures())
}
