package buem

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ControlMode selects the demand solver.
type ControlMode int

const (
	// ModeBand is the causal two-point controller holding the comfort band
	// hour by hour.
	ModeBand ControlMode = iota

	// ModeHorizon is the anticipative optimizer minimizing energy (and
	// optionally peak power) over rolling windows.
	ModeHorizon
)

func (m ControlMode) String() string {
	return [...]string{"band", "horizon"}[m]
}

func ControlModeFromString(s string) ControlMode {
	return map[string]ControlMode{
		"band":    ModeBand,
		"horizon": ModeHorizon,
	}[s]
}

// RunConfig is the YAML run configuration shared by all buildings of a batch.
type RunConfig struct {
	// Mode selects the demand solver: "band" or "horizon".
	Mode string `yaml:"mode"`

	// Comfort band, degree C.
	ComfortLower float64 `yaml:"comfort_lower"`
	ComfortUpper float64 `yaml:"comfort_upper"`

	// InitialTemperature is the mass node temperature before step 0,
	// degree C. Nil starts at the comfort band midpoint.
	InitialTemperature *float64 `yaml:"initial_temperature"`

	// Equipment capacities, W. Zero means unlimited.
	HeatingCapacity float64 `yaml:"heating_capacity"`
	CoolingCapacity float64 `yaml:"cooling_capacity"`

	// Horizon optimizer settings, ignored in band mode.
	WindowLength int     `yaml:"window_length"`
	Overlap      int     `yaml:"overlap"`
	EnergyWeight float64 `yaml:"energy_weight"`
	PeakWeight   float64 `yaml:"peak_weight"`

	// Workers is the number of buildings solved concurrently in a batch.
	// Zero means one worker per CPU.
	Workers int `yaml:"workers"`
}

// DefaultRunConfig returns a band-control run with a 20-26 degree C band.
func DefaultRunConfig() RunConfig {
	opt := DefaultHorizonOptions()
	return RunConfig{
		Mode:         ModeBand.String(),
		ComfortLower: 20.0,
		ComfortUpper: 26.0,
		WindowLength: opt.WindowLength,
		Overlap:      opt.Overlap,
		EnergyWeight: opt.EnergyWeight,
		PeakWeight:   opt.PeakWeight,
	}
}

/*
Load a run configuration from a YAML file.

Args:

	file_path: path of the configuration file

Returns:

	RunConfig with defaults applied for absent keys

Notes:

	Unknown keys are rejected so a typo in the file fails loudly instead
	of silently running with the default.
*/
func LoadRunConfig(file_path string) (RunConfig, error) {
	cfg := DefaultRunConfig()

	raw, err := os.ReadFile(file_path)
	if err != nil {
		return cfg, fmt.Errorf("read run configuration: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parse run configuration %s: %w", file_path, err)
	}
	return cfg, cfg.validate()
}

func (c RunConfig) validate() error {
	if c.Mode != ControlModeFromString(c.Mode).String() {
		return newConfigurationError("", "", "unknown control mode %q", c.Mode)
	}
	if c.HeatingCapacity < 0.0 || c.CoolingCapacity < 0.0 {
		return newConfigurationError("", "", "equipment capacities must be non-negative")
	}
	if c.Workers < 0 {
		return newConfigurationError("", "", "workers must be non-negative, got %d", c.Workers)
	}
	if _, err := NewConstantComfortBand(c.ComfortLower, c.ComfortUpper); err != nil {
		return err
	}
	return nil
}

// limits returns the equipment limits of the run.
func (c RunConfig) limits() EquipmentLimits {
	return EquipmentLimits{
		HeatingCapacity: c.HeatingCapacity,
		CoolingCapacity: c.CoolingCapacity,
	}
}

// horizonOptions returns the optimizer options of the run.
func (c RunConfig) horizonOptions() HorizonOptions {
	return HorizonOptions{
		WindowLength: c.WindowLength,
		Overlap:      c.Overlap,
		EnergyWeight: c.EnergyWeight,
		PeakWeight:   c.PeakWeight,
	}
}
