// Package zhl16 provides the Bühlmann ZH-L16 compartment table and the pure
// formulas that operate on it: depth/pressure conversion, inert gas loading
// and tolerated ambient pressure.
//
// All pressures are in atmospheres (1 atm treated as 1 bar), depths in metres
// of sea water and times in minutes.
package zhl16

// Surface and breathing-gas constants.
const (
	// SurfacePressure is the ambient pressure at sea level.
	SurfacePressure = 1.0

	// MetresPerAtmosphere is the depth of sea water adding one atmosphere.
	MetresPerAtmosphere = 10.0

	// WaterVaporPressure is the alveolar water vapour pressure subtracted from
	// ambient pressure before the inspired inert gas fraction is applied.
	WaterVaporPressure = 0.0567

	// AirNitrogenFraction is the nitrogen fraction of air.
	AirNitrogenFraction = 0.79
)

// Precision is the number of decimal places compartment pressures are
// rounded to. It is a reproducibility resolution, not an accuracy claim.
const Precision = 4
