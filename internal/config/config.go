// Package config loads decosim settings from a YAML file.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/talgya/decosim/internal/engine"
	"github.com/talgya/decosim/internal/persistence"
	"github.com/talgya/decosim/internal/zhl16"
)

// Config holds everything needed to build an engine and its store.
type Config struct {
	Model      string        `yaml:"model"`
	Variant    string        `yaml:"variant"`
	Revision   string        `yaml:"revision"`
	Gas        engine.GasMix `yaml:"gas"`
	WaterVapor float64       `yaml:"water_vapor"`
	Store      StoreConfig   `yaml:"store"`
	Debug      bool          `yaml:"debug"`
}

// StoreConfig selects the state store.
type StoreConfig struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
}

// Default returns the defaults. Model is left empty: it must be chosen.
func Default() Config {
	return Config{
		Variant:    string(zhl16.VariantC),
		Revision:   string(zhl16.RevisionStandard),
		Gas:        engine.Air(),
		WaterVapor: zhl16.WaterVaporPressure,
		Store: StoreConfig{
			Driver: persistence.DriverSQLite,
			Path:   "data/tissues.db",
		},
	}
}

// Load reads filename over the defaults and validates the result.
func Load(filename string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, errors.Wrap(err, "read config")
	}
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "parse %s", filename)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrapf(err, "invalid config %s", filename)
	}
	return cfg, nil
}

// Validate checks every field can be turned into engine settings.
func (c Config) Validate() error {
	if _, err := engine.ParseModel(c.Model); err != nil {
		return err
	}
	if _, err := zhl16.ParseVariant(c.Variant); err != nil {
		return err
	}
	if _, err := zhl16.ParseRevision(c.Revision); err != nil {
		return err
	}
	if err := c.Gas.Validate(); err != nil {
		return err
	}
	if !(c.WaterVapor >= 0 && c.WaterVapor < zhl16.SurfacePressure) {
		return errors.Wrapf(zhl16.ErrDomain, "water_vapor %g", c.WaterVapor)
	}
	switch c.Store.Driver {
	case persistence.DriverSQLite, persistence.DriverSnapshot:
	default:
		return errors.Errorf("unknown store driver %q", c.Store.Driver)
	}
	if c.Store.Path == "" {
		return errors.New("store path is required")
	}
	return nil
}

// Engine builds an engine from the configuration. The store is not
// attached.
func (c Config) Engine() (*engine.Engine, zhl16.Variant, error) {
	m, err := engine.ParseModel(c.Model)
	if err != nil {
		return nil, "", err
	}
	v, err := zhl16.ParseVariant(c.Variant)
	if err != nil {
		return nil, "", err
	}
	rev, err := zhl16.ParseRevision(c.Revision)
	if err != nil {
		return nil, "", err
	}
	table, err := zhl16.NewTable(rev)
	if err != nil {
		return nil, "", err
	}

	eng := engine.NewEngine(table, m)
	eng.Gas = c.Gas
	eng.Options.WaterVapor = c.WaterVapor
	return eng, v, nil
}
