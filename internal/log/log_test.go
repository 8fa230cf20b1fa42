package log

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	require.NoError(t, Init(true))
	Debugw("compartment updated", "id", "1", "p_end", 0.7676)
	Infow("segment complete", "depth", 10.0)
	Sync()
}
