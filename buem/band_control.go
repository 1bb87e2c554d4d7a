package buem

import "math"

// relative slope below which the air node no longer responds to the
// supplied power and the step solve is considered degenerate
const min_response_slope = 1e-12

// EquipmentLimits bounds the supplied heating and cooling power. Zero means
// unlimited; the band controller clamps, the optimizer constrains.
type EquipmentLimits struct {
	HeatingCapacity float64 // maximum heating power, W, 0 = unlimited
	CoolingCapacity float64 // maximum cooling power, W, 0 = unlimited
}

/*
Simulate one building over the horizon with causal band control.

Args:

	nw: thermal network of the building
	theta_o_ns: outdoor temperature at step n, degree C, [n]
	q_int_ns: effective internal gain at step n, W, [n]
	sol: solar gain series of the building
	band: comfort band
	limits: equipment capacity limits
	theta_m_init: mass node temperature before step 0, degree C

Returns:

	phi_hc_ns: supplied power at step n, W, heating positive, [n]
	res_ns: node temperatures at step n, [n]

Notes:

	At each step the free-running air temperature decides the action:
	inside the band, no power; below the lower bound, heat to the lower
	bound; above the upper bound, cool to the upper bound. The setpoint
	power comes from inverting the affine air response of the step, then
	clamping to the equipment capacity. With a binding capacity the band
	is violated for that step; this is reported through the recorded
	temperature, not through an error.
*/
func run_band_control(
	nw *ThermalNetwork,
	theta_o_ns []float64,
	q_int_ns []float64,
	sol *SolarGains,
	band *ComfortBand,
	limits EquipmentLimits,
	theta_m_init float64,
) (phi_hc_ns []float64, res_ns []StepResult, err error) {
	n := len(theta_o_ns)
	phi_hc_ns = make([]float64, n)
	res_ns = make([]StepResult, n)

	theta_m := theta_m_init
	for i := 0; i < n; i++ {
		phi_air, phi_st := nw.split_gains(q_int_ns[i], sol.Window()[i], sol.Opaque()[i])

		theta_air_0, slope, e := nw.air_response_checked(i, theta_o_ns[i], theta_m, phi_air, phi_st)
		if e != nil {
			return nil, nil, e
		}

		var phi_hc float64
		switch {
		case theta_air_0 < band.Lower(i):
			phi_hc = (band.Lower(i) - theta_air_0) / slope
			if limits.HeatingCapacity > 0.0 && phi_hc > limits.HeatingCapacity {
				phi_hc = limits.HeatingCapacity
			}
		case theta_air_0 > band.Upper(i):
			phi_hc = (band.Upper(i) - theta_air_0) / slope
			if limits.CoolingCapacity > 0.0 && phi_hc < -limits.CoolingCapacity {
				phi_hc = -limits.CoolingCapacity
			}
		}

		r := nw.Step(theta_m, theta_o_ns[i], phi_air, phi_st, phi_hc)
		phi_hc_ns[i] = phi_hc
		res_ns[i] = r
		theta_m = r.MassTemperature()
	}
	return phi_hc_ns, res_ns, nil
}

// air_response_checked wraps AirResponse and rejects a vanishing slope,
// which would make the setpoint power unbounded.
func (nw *ThermalNetwork) air_response_checked(step int, theta_o, theta_m_prev, phi_air, phi_st float64) (float64, float64, error) {
	theta_air_0, slope := nw.AirResponse(theta_m_prev, theta_o, phi_air, phi_st)
	if math.Abs(slope) < min_response_slope || !is_finite(slope) || !is_finite(theta_air_0) {
		return 0, 0, newNumericalSolveError(nw.building, step,
			"air node does not respond to supplied power (slope %.3e K/W)", slope)
	}
	return theta_air_0, slope, nil
}
