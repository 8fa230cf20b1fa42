package zhl16

import (
	"math"

	"github.com/pkg/errors"
)

// DecayConstant returns ln(2) / halfTime.
func DecayConstant(halfTime float64) (float64, error) {
	if !(halfTime > 0) {
		return 0, errors.Wrapf(ErrDomain, "half-time %g", halfTime)
	}
	return math.Ln2 / halfTime, nil
}

// InstantaneousLoading is the Haldane equation for a compartment exposed to
// a fixed depth for t minutes:
//
//	p = pBegin + (ppGasmix*ambient(depth) - pBegin) * (1 - 2^(-t/halfTime))
//
// It treats any depth change as a step at the start of the exposure, so it
// underestimates uptake on descents and overestimates it on ascents.
// ppGasmix is the breathed inert gas fraction; water vapour is not removed.
func InstantaneousLoading(pBegin, ppGasmix, t, halfTime, depth float64) float64 {
	pGas := ppGasmix * DepthToAmbientPressure(depth)
	return pBegin + (pGas-pBegin)*(1-math.Pow(2, -t/halfTime))
}

// SchreinerLoading integrates compartment loading over t minutes while the
// inspired inert gas pressure changes linearly from pAmbient at rate
// atm/min. k is the compartment decay constant. The result is rounded to
// Precision.
//
// With rate == 0 it reduces to the exponential approach of
// InstantaneousLoading towards pAmbient.
func SchreinerLoading(pComp, t, rate, k, pAmbient float64) float64 {
	x1 := rate * (t - 1/k)
	x2 := pAmbient - pComp - rate/k
	x3 := math.Exp(-k * t)
	return Round(pAmbient + x1 - x2*x3)
}
