package buem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBandControlSteadyStateHeating(t *testing.T) {
	nw := NewThermalNetwork(reference_envelope(t))
	n := 500

	w := constant_weather(t, n, 0.0)
	band, err := NewConstantComfortBand(20.0, 20.0)
	require.NoError(t, err)

	phi_hc_ns, res_ns, err := run_band_control(
		nw, w.OutdoorTemperature(), make([]float64, n), zero_solar(n), band, EquipmentLimits{}, 20.0)
	require.NoError(t, err)

	// (H_tr + H_win + H_ve) * 20 K = 4600 W once the mass has settled
	assert.InDelta(t, 4600.0, phi_hc_ns[n-1], 1e-6)
	assert.InDelta(t, 20.0, res_ns[n-1].AirTemperature(), 1e-9)
}

func TestBandControlFreeRunningInsideBand(t *testing.T) {
	nw := NewThermalNetwork(reference_envelope(t))
	n := 100

	w := constant_weather(t, n, 22.0)
	band, err := NewConstantComfortBand(20.0, 26.0)
	require.NoError(t, err)

	phi_hc_ns, res_ns, err := run_band_control(
		nw, w.OutdoorTemperature(), make([]float64, n), zero_solar(n), band, EquipmentLimits{}, 22.0)
	require.NoError(t, err)

	for i := 0; i < n; i++ {
		assert.Zero(t, phi_hc_ns[i])
		assert.InDelta(t, 22.0, res_ns[i].AirTemperature(), 1e-9)
	}
}

func TestBandControlHeatsExactlyToLowerBound(t *testing.T) {
	nw := NewThermalNetwork(reference_envelope(t))
	n := 48

	w := constant_weather(t, n, -5.0)
	band, err := NewConstantComfortBand(20.0, 26.0)
	require.NoError(t, err)

	phi_hc_ns, res_ns, err := run_band_control(
		nw, w.OutdoorTemperature(), make([]float64, n), zero_solar(n), band, EquipmentLimits{}, 20.0)
	require.NoError(t, err)

	for i := 0; i < n; i++ {
		assert.Greater(t, phi_hc_ns[i], 0.0)
		assert.InDelta(t, 20.0, res_ns[i].AirTemperature(), 1e-9)
	}
}

func TestBandControlCoolsExactlyToUpperBound(t *testing.T) {
	nw := NewThermalNetwork(reference_envelope(t))
	n := 48

	w := constant_weather(t, n, 35.0)
	band, err := NewConstantComfortBand(20.0, 26.0)
	require.NoError(t, err)

	phi_hc_ns, res_ns, err := run_band_control(
		nw, w.OutdoorTemperature(), make([]float64, n), zero_solar(n), band, EquipmentLimits{}, 26.0)
	require.NoError(t, err)

	for i := 0; i < n; i++ {
		assert.Less(t, phi_hc_ns[i], 0.0)
		assert.InDelta(t, 26.0, res_ns[i].AirTemperature(), 1e-9)
	}
}

func TestBandControlClampsToHeatingCapacity(t *testing.T) {
	nw := NewThermalNetwork(reference_envelope(t))
	n := 200

	w := constant_weather(t, n, 0.0)
	band, err := NewConstantComfortBand(20.0, 26.0)
	require.NoError(t, err)

	limits := EquipmentLimits{HeatingCapacity: 1000.0}
	phi_hc_ns, res_ns, err := run_band_control(
		nw, w.OutdoorTemperature(), make([]float64, n), zero_solar(n), band, limits, 20.0)
	require.NoError(t, err)

	// 4600 W are needed; with 1000 W the band is violated, never the clamp
	assert.InDelta(t, 1000.0, phi_hc_ns[n-1], 1e-9)
	assert.Less(t, res_ns[n-1].AirTemperature(), 20.0)
}

func TestBandControlIsDeterministic(t *testing.T) {
	nw := NewThermalNetwork(reference_envelope(t))
	n := 72

	theta_o_ns := make([]float64, n)
	q_int_ns := make([]float64, n)
	for i := range theta_o_ns {
		theta_o_ns[i] = 5.0 + 8.0*float64(i%24)/24.0
		q_int_ns[i] = 200.0 * float64(i%3)
	}
	band, err := NewConstantComfortBand(20.0, 24.0)
	require.NoError(t, err)

	a, _, err := run_band_control(nw, theta_o_ns, q_int_ns, zero_solar(n), band, EquipmentLimits{}, 21.0)
	require.NoError(t, err)
	b, _, err := run_band_control(nw, theta_o_ns, q_int_ns, zero_solar(n), band, EquipmentLimits{}, 21.0)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestComfortBandRejectsInvertedBounds(t *testing.T) {
	_, err := NewConstantComfortBand(26.0, 20.0)

	var cfg_err *ConfigurationError
	require.ErrorAs(t, err, &cfg_err)
}
