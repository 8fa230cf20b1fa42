package zhl16

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTable(t *testing.T) {
	tests := []struct {
		name     string
		revision Revision
		wantLen  int
		has1b    bool
	}{
		{name: "standard", revision: RevisionStandard, wantLen: 16, has1b: false},
		{name: "with 1b", revision: RevisionWith1b, wantLen: 17, has1b: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := NewTable(tt.revision)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLen, table.Len())
			assert.Equal(t, tt.revision, table.Revision())

			_, err = table.Lookup(Compartment1b)
			if tt.has1b {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.Is(err, ErrUnknownCompartment))
			}

			ids := table.IDs()
			assert.Equal(t, CompartmentID("1"), ids[0])
			assert.Equal(t, CompartmentID("16"), ids[len(ids)-1])
		})
	}
}

func TestNewTableUnknownRevision(t *testing.T) {
	_, err := NewTable("zh-l12")
	assert.Error(t, err)
}

func TestHalfTimesIncrease(t *testing.T) {
	table, err := NewTable(RevisionWith1b)
	require.NoError(t, err)

	prev := 0.0
	for _, c := range table.Compartments() {
		assert.Greater(t, c.HalfTime, prev, "compartment %s", c.ID)
		prev = c.HalfTime
	}
}

func TestLookup(t *testing.T) {
	table := StandardTable()

	c, err := table.Lookup("6")
	require.NoError(t, err)
	assert.Equal(t, 38.3, c.HalfTime)
	assert.Equal(t, 0.8434, c.B)

	for v, want := range map[Variant]float64{VariantA: 0.5933, VariantB: 0.56, VariantC: 0.5043} {
		a, err := c.A(v)
		require.NoError(t, err)
		assert.Equal(t, want, a, "variant %s", v)
	}

	_, err = c.A("D")
	assert.True(t, errors.Is(err, ErrUnknownCompartment))

	_, err = table.Lookup("17")
	assert.True(t, errors.Is(err, ErrUnknownCompartment))
}

func TestCompartmentsIsACopy(t *testing.T) {
	table := StandardTable()
	cs := table.Compartments()
	cs[0].HalfTime = 99

	c, err := table.Lookup("1")
	require.NoError(t, err)
	assert.Equal(t, 4.0, c.HalfTime)
}

func TestParseVariant(t *testing.T) {
	v, err := ParseVariant(" b ")
	require.NoError(t, err)
	assert.Equal(t, VariantB, v)

	_, err = ParseVariant("x")
	assert.Error(t, err)
}

func TestParseRevision(t *testing.T) {
	r, err := ParseRevision("With-1B")
	require.NoError(t, err)
	assert.Equal(t, RevisionWith1b, r)

	_, err = ParseRevision("")
	assert.Error(t, err)
}
