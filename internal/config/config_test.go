package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/decosim/internal/engine"
	"github.com/talgya/decosim/internal/zhl16"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "decosim.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "model: schreiner\n"))
	require.NoError(t, err)

	assert.Equal(t, "C", cfg.Variant)
	assert.Equal(t, "standard", cfg.Revision)
	assert.Equal(t, engine.Air(), cfg.Gas)
	assert.Equal(t, zhl16.WaterVaporPressure, cfg.WaterVapor)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.False(t, cfg.Debug)
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
model: instantaneous
variant: b
revision: with-1b
gas:
  nitrogen: 0.64
water_vapor: 0.0493
store:
  driver: snapshot
  path: /tmp/tissues.msgpack
debug: true
`))
	require.NoError(t, err)

	assert.Equal(t, 0.64, cfg.Gas.Nitrogen)
	assert.Equal(t, 0.0, cfg.Gas.Helium)
	assert.Equal(t, "snapshot", cfg.Store.Driver)
	assert.True(t, cfg.Debug)

	eng, v, err := cfg.Engine()
	require.NoError(t, err)
	assert.Equal(t, zhl16.VariantB, v)
	assert.Equal(t, engine.ModelInstantaneous, eng.Options.Model)
	assert.Equal(t, 0.0493, eng.Options.WaterVapor)
	assert.Equal(t, 17, eng.Table.Len())
	assert.Equal(t, 0.64, eng.Gas.Nitrogen)
	assert.Nil(t, eng.Store)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "model required", body: "variant: A\n"},
		{name: "unknown model", body: "model: vpm\n"},
		{name: "unknown variant", body: "model: schreiner\nvariant: D\n"},
		{name: "unknown revision", body: "model: schreiner\nrevision: zh-l12\n"},
		{name: "bad nitrogen", body: "model: schreiner\ngas:\n  nitrogen: 1.5\n"},
		{name: "bad water vapour", body: "model: schreiner\nwater_vapor: 2\n"},
		{name: "unknown driver", body: "model: schreiner\nstore:\n  driver: postgres\n"},
		{name: "empty path", body: "model: schreiner\nstore:\n  path: \"\"\n"},
		{name: "unknown key", body: "model: schreiner\nascent_rate: 9\n"},
		{name: "not yaml", body: "model: [schreiner\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
