package engine

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/decosim/internal/zhl16"
)

func TestTravel(t *testing.T) {
	tests := []struct {
		name     string
		from, to float64
		rate     float64
		kind     SegmentKind
		duration float64
		pRate    float64
	}{
		{name: "descent", from: 0, to: 10, rate: 30, kind: Descent, duration: 1.0 / 3, pRate: 3},
		{name: "ascent", from: 30, to: 0, rate: 10, kind: Ascent, duration: 3, pRate: -1},
		{name: "deco stop step", from: 6, to: 3, rate: 3, kind: Ascent, duration: 1, pRate: -0.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Travel(tt.from, tt.to, tt.rate)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, s.Kind)
			assert.InDelta(t, tt.duration, s.Duration, 1e-12)
			assert.InDelta(t, tt.pRate, s.PressureRate(), 1e-12)
		})
	}
}

func TestSegmentErrors(t *testing.T) {
	tests := []struct {
		name string
		make func() (Segment, error)
	}{
		{name: "zero rate", make: func() (Segment, error) { return Travel(0, 10, 0) }},
		{name: "negative rate", make: func() (Segment, error) { return Travel(0, 10, -5) }},
		{name: "same depth", make: func() (Segment, error) { return Travel(10, 10, 10) }},
		{name: "descent upwards", make: func() (Segment, error) { return NewDescent(10, 5, 10) }},
		{name: "ascent downwards", make: func() (Segment, error) { return NewAscent(5, 10, 10) }},
		{name: "negative depth", make: func() (Segment, error) { return NewHold(-1, 10) }},
		{name: "zero hold", make: func() (Segment, error) { return NewHold(10, 0) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.make()
			assert.True(t, errors.Is(err, zhl16.ErrDomain), "got %v", err)
		})
	}
}

func TestSegmentValidateKinds(t *testing.T) {
	assert.Error(t, Segment{Kind: Hold, StartDepth: 1, EndDepth: 2, Duration: 1}.Validate())
	assert.Error(t, Segment{Kind: 9, Duration: 1}.Validate())
	assert.NoError(t, Segment{Kind: Descent, StartDepth: 0, EndDepth: 5, Rate: 10, Duration: 0.5}.Validate())
}

func TestSegmentKindString(t *testing.T) {
	assert.Equal(t, "descent", Descent.String())
	assert.Equal(t, "hold", Hold.String())
	assert.Equal(t, "SegmentKind(0)", SegmentKind(0).String())
}

func TestGasMixValidate(t *testing.T) {
	assert.NoError(t, Air().Validate())
	assert.NoError(t, GasMix{Nitrogen: 0.21, Helium: 0.35}.Validate())
	assert.Error(t, GasMix{Nitrogen: 1.2}.Validate())
	assert.Error(t, GasMix{Nitrogen: 0.5, Helium: -0.1}.Validate())
}
