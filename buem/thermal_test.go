package buem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetworkSteadyStateLossCoefficient(t *testing.T) {
	nw := NewThermalNetwork(reference_envelope(t))

	// H_tr + H_win + H_ve
	assert.InDelta(t, 230.0, nw.SteadyStateLossCoefficient(), 1e-9)
}

func TestStepRelaxesTowardsOutdoorTemperature(t *testing.T) {
	nw := NewThermalNetwork(reference_envelope(t))

	theta_m := 20.0
	var r StepResult
	for i := 0; i < 1000; i++ {
		r = nw.Step(theta_m, 5.0, 0.0, 0.0, 0.0)
		theta_m = r.MassTemperature()
	}

	// free running with no gains, all nodes end at the outdoor temperature
	assert.InDelta(t, 5.0, r.AirTemperature(), 1e-6)
	assert.InDelta(t, 5.0, r.SurfaceTemperature(), 1e-6)
	assert.InDelta(t, 5.0, r.MassTemperature(), 1e-6)
}

func TestStepMonotoneInSuppliedPower(t *testing.T) {
	nw := NewThermalNetwork(reference_envelope(t))

	r0 := nw.Step(18.0, 0.0, 200.0, 300.0, 0.0)
	r1 := nw.Step(18.0, 0.0, 200.0, 300.0, 2000.0)

	assert.Greater(t, r1.AirTemperature(), r0.AirTemperature())
	assert.Greater(t, r1.SurfaceTemperature(), r0.SurfaceTemperature())
	assert.Greater(t, r1.MassTemperature(), r0.MassTemperature())
}

func TestAirResponseIsAffine(t *testing.T) {
	nw := NewThermalNetwork(reference_envelope(t))

	theta_air_0, slope := nw.AirResponse(19.0, 2.0, 150.0, 250.0)
	require.Greater(t, slope, 0.0)

	// the two-point fit must predict the step exactly at any power
	for _, phi_hc := range []float64{-3000.0, -500.0, 0.0, 750.0, 4200.0} {
		r := nw.Step(19.0, 2.0, 150.0, 250.0, phi_hc)
		assert.InDelta(t, theta_air_0+slope*phi_hc, r.AirTemperature(), 1e-9)
	}
}

func TestSplitGains(t *testing.T) {
	nw := NewThermalNetwork(reference_envelope(t))

	phi_air, phi_st := nw.split_gains(300.0, 400.0, 120.0)

	// internal gains plus half of the window gain on the air node, the
	// rest on the surface node
	assert.InDelta(t, 300.0+200.0, phi_air, 1e-12)
	assert.InDelta(t, 120.0+200.0, phi_st, 1e-12)
}
