package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/decosim/internal/engine"
	"github.com/talgya/decosim/internal/persistence"
	"github.com/talgya/decosim/internal/zhl16"
)

func TestBuildProfile(t *testing.T) {
	tests := []struct {
		name    string
		current float64
		target  float64
		hold    float64
		kinds   []engine.SegmentKind
	}{
		{name: "descent only", current: 0, target: 10, kinds: []engine.SegmentKind{engine.Descent}},
		{name: "descent and hold", current: 0, target: 30, hold: 20, kinds: []engine.SegmentKind{engine.Descent, engine.Hold}},
		{name: "ascent", current: 30, target: 6, kinds: []engine.SegmentKind{engine.Ascent}},
		{name: "hold in place", current: 6, target: -1, hold: 3, kinds: []engine.SegmentKind{engine.Hold}},
		{name: "nothing", current: 6, target: 6, kinds: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile, err := buildProfile(tt.current, tt.target, 10, tt.hold)
			require.NoError(t, err)

			var kinds []engine.SegmentKind
			for _, s := range profile {
				kinds = append(kinds, s.Kind)
			}
			assert.Equal(t, tt.kinds, kinds)
			if len(profile) > 0 {
				assert.Equal(t, tt.current, profile[0].StartDepth)
			}
		})
	}

	_, err := buildProfile(0, 10, 0, 0)
	assert.Error(t, err)
}

func TestPrintReport(t *testing.T) {
	table := zhl16.StandardTable()
	state, err := engine.NewSurfaceState(table, engine.Air(), zhl16.WaterVaporPressure)
	require.NoError(t, err)

	seg, err := engine.NewDescent(0, 10, 30)
	require.NoError(t, err)
	state, err = engine.RunSegment(state, seg, engine.Air(), table, engine.DefaultOptions(engine.ModelSchreiner))
	require.NoError(t, err)

	ceiling, err := engine.CeilingFor(state, table, zhl16.VariantC)
	require.NoError(t, err)

	var buf bytes.Buffer
	printReport(&buf, state, ceiling)
	out := buf.String()

	assert.Contains(t, out, state.Session.String())
	assert.Contains(t, out, "0.7676")
	assert.Contains(t, out, "Runtime: 0:20")
	assert.Contains(t, out, "No ceiling")

	buf.Reset()
	printHistory(&buf, []persistence.SegmentRecord{{Kind: "descent", EndDepth: 10, Duration: 1.0 / 3, Elapsed: 1.0 / 3}})
	assert.Contains(t, buf.String(), "descent")
	assert.Contains(t, buf.String(), "0.33")
}
