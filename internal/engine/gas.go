package engine

import (
	"github.com/pkg/errors"

	"github.com/talgya/decosim/internal/zhl16"
)

// GasMix is the breathed gas, as inert gas fractions.
type GasMix struct {
	Nitrogen float64 `json:"nitrogen" yaml:"nitrogen"`
	Helium   float64 `json:"helium" yaml:"helium"`
}

// Air is 79% nitrogen.
func Air() GasMix {
	return GasMix{Nitrogen: zhl16.AirNitrogenFraction}
}

// Validate rejects fractions outside (0, 1] for nitrogen and mixes whose
// inert fractions sum above 1.
func (g GasMix) Validate() error {
	if !(g.Nitrogen > 0 && g.Nitrogen <= 1) {
		return errors.Wrapf(zhl16.ErrDomain, "nitrogen fraction %g", g.Nitrogen)
	}
	if g.Helium < 0 || g.Nitrogen+g.Helium > 1 {
		return errors.Wrapf(zhl16.ErrDomain, "helium fraction %g", g.Helium)
	}
	return nil
}

func validateWaterVapor(p float64) error {
	if !(p >= 0 && p < zhl16.SurfacePressure) {
		return errors.Wrapf(zhl16.ErrDomain, "water vapour pressure %g", p)
	}
	return nil
}
