package zhl16

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// ToleratedAmbientPressure is the lowest ambient pressure a compartment
// holding pComp can be brought to without exceeding its supersaturation
// limit.
func ToleratedAmbientPressure(a, b, pComp float64) float64 {
	return (pComp - a) * b
}

// CompartmentCeiling is one compartment's tolerated ambient pressure.
type CompartmentCeiling struct {
	ID                CompartmentID
	Pressure          float64 // inert gas pressure in the compartment
	ToleratedPressure float64
}

// Ceiling is the tolerated ambient pressure of every compartment and the
// binding one among them.
type Ceiling struct {
	Variant      Variant
	Compartments []CompartmentCeiling
	Governing    CompartmentCeiling
}

// Pressure returns the governing tolerated ambient pressure.
func (c Ceiling) Pressure() float64 {
	return c.Governing.ToleratedPressure
}

// Depth returns the governing ceiling as a depth, zero when the diver may
// surface.
func (c Ceiling) Depth() float64 {
	d := AmbientPressureToDepth(c.Governing.ToleratedPressure)
	if d < 0 {
		return 0
	}
	return d
}

// MandatoryStop reports whether the governing ceiling lies below the surface.
func (c Ceiling) MandatoryStop() bool {
	return c.Governing.ToleratedPressure > SurfacePressure
}

// ComputeCeiling evaluates ToleratedAmbientPressure for each compartment
// pressure in pressures (keyed by id) and picks the maximum. Every table
// compartment must have a pressure.
func (t *Table) ComputeCeiling(v Variant, pressures map[CompartmentID]float64) (Ceiling, error) {
	if _, err := v.index(); err != nil {
		return Ceiling{}, err
	}
	if len(t.compartments) == 0 {
		return Ceiling{}, errors.New("empty compartment table")
	}

	out := Ceiling{
		Variant:      v,
		Compartments: make([]CompartmentCeiling, 0, len(t.compartments)),
	}
	tolerated := make([]float64, 0, len(t.compartments))
	for _, c := range t.compartments {
		p, ok := pressures[c.ID]
		if !ok {
			return Ceiling{}, errors.Wrapf(ErrUnknownCompartment, "no pressure for compartment %s", c.ID)
		}
		a, _ := c.A(v)
		tp := ToleratedAmbientPressure(a, c.B, p)
		out.Compartments = append(out.Compartments, CompartmentCeiling{
			ID:                c.ID,
			Pressure:          p,
			ToleratedPressure: tp,
		})
		tolerated = append(tolerated, tp)
	}
	out.Governing = out.Compartments[floats.MaxIdx(tolerated)]
	return out, nil
}
