package zhl16

import "gonum.org/v1/gonum/floats/scalar"

// DepthToAmbientPressure converts a depth in metres to absolute ambient
// pressure. Negative depths are not rejected.
func DepthToAmbientPressure(depth float64) float64 {
	return depth/MetresPerAtmosphere + SurfacePressure
}

// AmbientPressureToDepth is the inverse of DepthToAmbientPressure. Pressures
// below the surface pressure give negative depths.
func AmbientPressureToDepth(pressure float64) float64 {
	return (pressure - SurfacePressure) * MetresPerAtmosphere
}

// InspiredPressure returns the inert gas pressure delivered to the lungs at
// the given ambient pressure, after water vapour is removed.
func InspiredPressure(ambient, fraction, waterVapor float64) float64 {
	return (ambient - waterVapor) * fraction
}

// SurfaceEquilibrium is the steady-state compartment pressure for a diver
// breathing the given fraction at the surface, rounded to Precision.
func SurfaceEquilibrium(fraction, waterVapor float64) float64 {
	return Round(InspiredPressure(SurfacePressure, fraction, waterVapor))
}

// Round rounds x to Precision decimal places.
func Round(x float64) float64 {
	return scalar.Round(x, Precision)
}
