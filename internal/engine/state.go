package engine

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/talgya/decosim/internal/zhl16"
)

// CompartmentState is the dissolved inert gas held by one compartment.
type CompartmentState struct {
	ID       zhl16.CompartmentID `json:"id"`
	Nitrogen float64             `json:"p_inert_nitrogen"`
	Helium   float64             `json:"p_inert_helium"`
}

// Total returns the summed inert gas pressure. It is derived, never stored
// as the source of truth.
func (c CompartmentState) Total() float64 {
	return c.Nitrogen + c.Helium
}

// State is the full tissue state of a diver between segments.
type State struct {
	Session      uuid.UUID          `json:"session"`
	Revision     zhl16.Revision     `json:"revision"`
	Depth        float64            `json:"depth"`   // metres, where the last segment ended
	Elapsed      float64            `json:"elapsed"` // run time in minutes
	Compartments []CompartmentState `json:"compartments"`
}

// NewSurfaceState returns a fresh session with every compartment of table at
// surface equilibrium for gas.
func NewSurfaceState(table *zhl16.Table, gas GasMix, waterVapor float64) (State, error) {
	if err := gas.Validate(); err != nil {
		return State{}, err
	}
	if err := validateWaterVapor(waterVapor); err != nil {
		return State{}, err
	}

	pN2 := zhl16.SurfaceEquilibrium(gas.Nitrogen, waterVapor)
	s := State{
		Session:      uuid.New(),
		Revision:     table.Revision(),
		Compartments: make([]CompartmentState, 0, table.Len()),
	}
	for _, id := range table.IDs() {
		s.Compartments = append(s.Compartments, CompartmentState{ID: id, Nitrogen: pN2})
	}
	return s, nil
}

// Clone returns a deep copy.
func (s State) Clone() State {
	out := s
	out.Compartments = make([]CompartmentState, len(s.Compartments))
	copy(out.Compartments, s.Compartments)
	return out
}

// Lookup returns the state of one compartment.
func (s State) Lookup(id zhl16.CompartmentID) (CompartmentState, error) {
	for _, c := range s.Compartments {
		if c.ID == id {
			return c, nil
		}
	}
	return CompartmentState{}, errors.Wrapf(zhl16.ErrUnknownCompartment, "id %q not in state", string(id))
}

// Pressures returns nitrogen pressure keyed by compartment id.
func (s State) Pressures() map[zhl16.CompartmentID]float64 {
	out := make(map[zhl16.CompartmentID]float64, len(s.Compartments))
	for _, c := range s.Compartments {
		out[c.ID] = c.Nitrogen
	}
	return out
}

// Validate checks that s holds exactly the compartments of table, once each,
// with non-negative pressures.
func (s State) Validate(table *zhl16.Table) error {
	if len(s.Compartments) != table.Len() {
		return errors.Wrapf(zhl16.ErrUnknownCompartment,
			"state has %d compartments, %s table has %d", len(s.Compartments), table.Revision(), table.Len())
	}

	seen := make(map[zhl16.CompartmentID]bool, len(s.Compartments))
	for _, c := range s.Compartments {
		if _, err := table.Lookup(c.ID); err != nil {
			return err
		}
		if seen[c.ID] {
			return errors.Wrapf(zhl16.ErrUnknownCompartment, "compartment %s repeated", c.ID)
		}
		seen[c.ID] = true

		if c.Nitrogen < 0 || c.Helium < 0 {
			return errors.Wrapf(zhl16.ErrDomain, "compartment %s has negative pressure", c.ID)
		}
	}
	return nil
}
