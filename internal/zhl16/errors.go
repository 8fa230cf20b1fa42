package zhl16

import "github.com/pkg/errors"

var (
	// ErrUnknownCompartment is returned when a compartment id or variant tag
	// is not present in the table in use. It usually means the persisted
	// state was written with a different table revision.
	ErrUnknownCompartment = errors.New("unknown compartment")

	// ErrDomain is returned for inputs where the model is undefined:
	// non-positive half-times, rates or durations, and gas fractions outside (0, 1].
	ErrDomain = errors.New("value outside model domain")
)
