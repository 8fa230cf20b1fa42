package engine

import (
	"fmt"
	"math"

	"github.com/pkg/errors"

	"github.com/talgya/decosim/internal/zhl16"
)

// SegmentKind is the shape of a profile segment.
type SegmentKind uint8

const (
	Descent SegmentKind = iota + 1
	Ascent
	Hold // constant depth
)

func (k SegmentKind) String() string {
	switch k {
	case Descent:
		return "descent"
	case Ascent:
		return "ascent"
	case Hold:
		return "hold"
	}
	return fmt.Sprintf("SegmentKind(%d)", uint8(k))
}

// Segment is one leg of a dive profile.
type Segment struct {
	Kind       SegmentKind
	StartDepth float64 // metres
	EndDepth   float64 // metres
	Rate       float64 // metres per minute, zero for holds
	Duration   float64 // minutes
}

// Travel builds a descent or ascent between two depths at rate metres per
// minute. The duration is derived from the depth change.
func Travel(from, to, rate float64) (Segment, error) {
	s := Segment{StartDepth: from, EndDepth: to, Rate: rate}
	switch {
	case to > from:
		s.Kind = Descent
	case to < from:
		s.Kind = Ascent
	default:
		return Segment{}, errors.Wrapf(zhl16.ErrDomain, "travel from %g m to the same depth", from)
	}
	if !(rate > 0) {
		return Segment{}, errors.Wrapf(zhl16.ErrDomain, "travel rate %g m/min", rate)
	}
	s.Duration = math.Abs(to-from) / rate
	return s, s.Validate()
}

// NewDescent builds a descent from one depth to a deeper one.
func NewDescent(from, to, rate float64) (Segment, error) {
	if !(to > from) {
		return Segment{}, errors.Wrapf(zhl16.ErrDomain, "descent from %g m to %g m", from, to)
	}
	return Travel(from, to, rate)
}

// NewAscent builds an ascent from one depth to a shallower one.
func NewAscent(from, to, rate float64) (Segment, error) {
	if !(to < from) {
		return Segment{}, errors.Wrapf(zhl16.ErrDomain, "ascent from %g m to %g m", from, to)
	}
	return Travel(from, to, rate)
}

// NewHold builds a constant-depth segment.
func NewHold(depth, minutes float64) (Segment, error) {
	s := Segment{Kind: Hold, StartDepth: depth, EndDepth: depth, Duration: minutes}
	return s, s.Validate()
}

// Validate checks the segment is internally consistent.
func (s Segment) Validate() error {
	if s.StartDepth < 0 || s.EndDepth < 0 {
		return errors.Wrapf(zhl16.ErrDomain, "negative depth in %s", s)
	}
	if !(s.Duration > 0) || math.IsInf(s.Duration, 0) {
		return errors.Wrapf(zhl16.ErrDomain, "duration %g min in %s", s.Duration, s)
	}

	switch s.Kind {
	case Descent:
		if !(s.EndDepth > s.StartDepth) {
			return errors.Wrapf(zhl16.ErrDomain, "descent does not go deeper: %s", s)
		}
	case Ascent:
		if !(s.EndDepth < s.StartDepth) {
			return errors.Wrapf(zhl16.ErrDomain, "ascent does not go shallower: %s", s)
		}
	case Hold:
		if s.StartDepth != s.EndDepth {
			return errors.Wrapf(zhl16.ErrDomain, "hold changes depth: %s", s)
		}
	default:
		return errors.Wrapf(zhl16.ErrDomain, "unknown segment kind %d", uint8(s.Kind))
	}
	return nil
}

// PressureRate is the signed change of ambient pressure in atm per minute.
func (s Segment) PressureRate() float64 {
	return (s.EndDepth - s.StartDepth) / zhl16.MetresPerAtmosphere / s.Duration
}

func (s Segment) String() string {
	return fmt.Sprintf("%s %gm->%gm over %.2fmin", s.Kind, s.StartDepth, s.EndDepth, s.Duration)
}
