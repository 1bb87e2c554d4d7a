package buem

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gonum.org/v1/gonum/floats"
)

// winter_profile builds n hours of a cold day-night temperature swing.
func winter_profile(n int) []float64 {
	theta_o_ns := make([]float64, n)
	for i := range theta_o_ns {
		theta_o_ns[i] = 2.0 + 6.0*math.Sin(2.0*math.Pi*float64(i%24)/24.0)
	}
	return theta_o_ns
}

func TestHorizonNeverBeatenByBandControl(t *testing.T) {
	nw := NewThermalNetwork(reference_envelope(t))
	n := 48

	theta_o_ns := winter_profile(n)
	band, err := NewConstantComfortBand(20.0, 24.0)
	require.NoError(t, err)

	opt := DefaultHorizonOptions()
	opt.WindowLength = n
	opt.Overlap = 0

	phi_band, _, err := run_band_control(
		nw, theta_o_ns, make([]float64, n), zero_solar(n), band, EquipmentLimits{}, 22.0)
	require.NoError(t, err)

	phi_opt, _, err := run_horizon(
		nw, theta_o_ns, make([]float64, n), zero_solar(n), band, EquipmentLimits{}, 22.0,
		opt, NewSimplexBackend())
	require.NoError(t, err)

	// the band trajectory is a feasible point of the program, so the
	// optimum cannot cost more
	energy := func(phi_ns []float64) float64 {
		var e float64
		for _, phi := range phi_ns {
			e += math.Abs(phi)
		}
		return e
	}
	assert.LessOrEqual(t, energy(phi_opt), energy(phi_band)+1.0)
}

func TestHorizonHoldsComfortBand(t *testing.T) {
	nw := NewThermalNetwork(reference_envelope(t))
	n := 48

	theta_o_ns := winter_profile(n)
	band, err := NewConstantComfortBand(20.0, 24.0)
	require.NoError(t, err)

	opt := DefaultHorizonOptions()
	opt.WindowLength = 24
	opt.Overlap = 6

	_, res_ns, err := run_horizon(
		nw, theta_o_ns, make([]float64, n), zero_solar(n), band, EquipmentLimits{}, 22.0,
		opt, NewSimplexBackend())
	require.NoError(t, err)

	for i, r := range res_ns {
		assert.GreaterOrEqual(t, r.AirTemperature(), 20.0-1e-6, "step %d", i)
		assert.LessOrEqual(t, r.AirTemperature(), 24.0+1e-6, "step %d", i)
	}
}

func TestHorizonNeverHeatsAndCoolsTheSameHour(t *testing.T) {
	nw := NewThermalNetwork(reference_envelope(t))
	n := 48

	// swings across the band so both heating and cooling hours occur
	theta_o_ns := make([]float64, n)
	q_int_ns := make([]float64, n)
	for i := range theta_o_ns {
		theta_o_ns[i] = 15.0 + 20.0*math.Sin(2.0*math.Pi*float64(i%24)/24.0)
		q_int_ns[i] = 300.0
	}
	band, err := NewConstantComfortBand(20.0, 23.0)
	require.NoError(t, err)

	opt := DefaultHorizonOptions()
	opt.WindowLength = n
	opt.Overlap = 0

	x, err := solve_window(
		nw, theta_o_ns, q_int_ns, zero_solar(n), band, EquipmentLimits{}, 21.5,
		0, n, opt, NewSimplexBackend())
	require.NoError(t, err)

	// both powers carry positive cost, so the optimum pays for at most
	// one of them per hour
	assert.Greater(t, floats.Max(x.q_h), 0.0)
	assert.Greater(t, floats.Max(x.q_c), 0.0)
	for i := 0; i < n; i++ {
		assert.InDelta(t, 0.0, math.Min(x.q_h[i], x.q_c[i]), 1e-6, "step %d", i)
	}
}

func TestHorizonSolutionReplaysThroughStep(t *testing.T) {
	nw := NewThermalNetwork(reference_envelope(t))
	n := 24

	theta_o_ns := winter_profile(n)
	band, err := NewConstantComfortBand(20.0, 24.0)
	require.NoError(t, err)

	opt := DefaultHorizonOptions()
	opt.WindowLength = n
	opt.Overlap = 0

	phi_hc_ns, res_ns, err := run_horizon(
		nw, theta_o_ns, make([]float64, n), zero_solar(n), band, EquipmentLimits{}, 22.0,
		opt, NewSimplexBackend())
	require.NoError(t, err)

	// the program rows are the Step balance, so replaying the powers must
	// reproduce the reported temperatures
	theta_m := 22.0
	for i := 0; i < n; i++ {
		r := nw.Step(theta_m, theta_o_ns[i], 0.0, 0.0, phi_hc_ns[i])
		assert.InDelta(t, r.AirTemperature(), res_ns[i].AirTemperature(), 1e-6, "step %d", i)
		assert.InDelta(t, r.MassTemperature(), res_ns[i].MassTemperature(), 1e-6, "step %d", i)
		theta_m = r.MassTemperature()
	}
}

func TestHorizonInfeasibleCapacity(t *testing.T) {
	nw := NewThermalNetwork(reference_envelope(t))
	n := 24

	w := constant_weather(t, n, -10.0)
	band, err := NewConstantComfortBand(20.0, 26.0)
	require.NoError(t, err)

	opt := DefaultHorizonOptions()
	opt.WindowLength = n
	opt.Overlap = 0

	// roughly 6900 W are needed against -10 degrees outdoors
	limits := EquipmentLimits{HeatingCapacity: 100.0}
	_, _, err = run_horizon(
		nw, w.OutdoorTemperature(), make([]float64, n), zero_solar(n), band, limits, 23.0,
		opt, NewSimplexBackend())

	var inf_err *SolverInfeasibleError
	require.ErrorAs(t, err, &inf_err)
	assert.Equal(t, 0, inf_err.WindowStart)
	assert.Equal(t, n, inf_err.WindowEnd)
}

func TestHorizonPeakWeightReducesPeakPower(t *testing.T) {
	nw := NewThermalNetwork(reference_envelope(t))
	n := 48

	theta_o_ns := winter_profile(n)
	band, err := NewConstantComfortBand(20.0, 24.0)
	require.NoError(t, err)

	opt := DefaultHorizonOptions()
	opt.WindowLength = n
	opt.Overlap = 0

	phi_energy, _, err := run_horizon(
		nw, theta_o_ns, make([]float64, n), zero_solar(n), band, EquipmentLimits{}, 22.0,
		opt, NewSimplexBackend())
	require.NoError(t, err)

	opt.PeakWeight = 100.0
	phi_peak, _, err := run_horizon(
		nw, theta_o_ns, make([]float64, n), zero_solar(n), band, EquipmentLimits{}, 22.0,
		opt, NewSimplexBackend())
	require.NoError(t, err)

	assert.LessOrEqual(t, floats.Max(phi_peak), floats.Max(phi_energy)+1e-6)
}

func TestHorizonOptionsValidation(t *testing.T) {
	nw := NewThermalNetwork(reference_envelope(t))
	n := 24
	w := constant_weather(t, n, 5.0)
	band, err := NewConstantComfortBand(20.0, 24.0)
	require.NoError(t, err)

	opt := DefaultHorizonOptions()
	opt.Overlap = opt.WindowLength

	_, _, err = run_horizon(
		nw, w.OutdoorTemperature(), make([]float64, n), zero_solar(n), band, EquipmentLimits{}, 22.0,
		opt, NewSimplexBackend())

	var cfg_err *ConfigurationError
	require.ErrorAs(t, err, &cfg_err)
}
