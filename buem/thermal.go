package buem

// time step of the hourly recurrence, s
const delta_t = 3600.0

// ThermalNetwork is the 5R1C lumped network of one building, derived from
// the envelope once per run. The state is the mass node temperature; air and
// surface temperatures are recovered algebraically each step.
type ThermalNetwork struct {
	building string

	h_is float64 // air-surface coupling, W/K
	h_ms float64 // surface-mass coupling, W/K
	h_em float64 // mass-outdoor coupling, W/K
	h_ea float64 // direct air-outdoor coupling (ventilation + windows), W/K
	c_m  float64 // thermal capacitance on the mass node, J/K

	h_1 float64 // series coupling of H_is and H_ea, W/K
	h_2 float64 // series coupling of H_ms and H_1, W/K
}

// StepResult holds the node temperatures of one solved step.
type StepResult struct {
	theta_air float64 // air node temperature, degree C
	theta_s   float64 // surface node temperature, degree C
	theta_m   float64 // mass node temperature at the end of the step, degree C
}

// AirTemperature returns the air node temperature, degree C.
func (r StepResult) AirTemperature() float64 { return r.theta_air }

// SurfaceTemperature returns the surface node temperature, degree C.
func (r StepResult) SurfaceTemperature() float64 { return r.theta_s }

// MassTemperature returns the mass node temperature at the end of the step,
// degree C.
func (r StepResult) MassTemperature() float64 { return r.theta_m }

/*
Derive the thermal network from an aggregated envelope.

Args:

	e: BuildingEnvelope

Notes:

	The windows and the ventilation both couple the air node directly to
	the outdoor temperature, so H_ea = H_ve + H_win and the opaque path
	runs air - surface - mass - outdoor through H_is, H_ms, H_em. The
	series conductances H_1 and H_2 are precomputed because they are
	constant over the whole run.
*/
func NewThermalNetwork(e *BuildingEnvelope) *ThermalNetwork {
	nw := &ThermalNetwork{
		building: e.building,
		h_is:     e.h_is,
		h_ms:     e.h_ms,
		h_em:     e.h_em,
		h_ea:     e.h_ve + e.h_win,
		c_m:      e.c_m,
	}
	nw.h_1 = nw.h_is * nw.h_ea / (nw.h_is + nw.h_ea)
	nw.h_2 = nw.h_ms * nw.h_1 / (nw.h_ms + nw.h_1)
	return nw
}

// SteadyStateLossCoefficient returns the total steady-state heat loss
// coefficient of the network, W/K. At identical node and outdoor
// temperatures this is the power per kelvin of indoor-outdoor difference.
func (nw *ThermalNetwork) SteadyStateLossCoefficient() float64 {
	// opaque series path air - surface - mass - outdoor, plus direct path
	h_opq := 1.0 / (1.0/nw.h_is + 1.0/nw.h_ms + 1.0/nw.h_em)
	return h_opq + nw.h_ea
}

// TimeConstant returns the nominal time constant of the mass node, s.
func (nw *ThermalNetwork) TimeConstant() float64 {
	return nw.c_m / (nw.h_em + nw.h_2)
}

/*
Split the heat flows onto the network nodes.

Args:

	q_int: effective internal gain, W
	q_sol_win: transmitted window solar gain, W
	q_sol_opq: opaque absorbed solar gain, W

Returns:

	phi_air: flow injected at the air node, W
	phi_st: flow injected at the surface node, W

Notes:

	Internal gains and half of the window gain act convectively on the
	air node; the other half of the window gain and the opaque absorption
	act radiatively on the surface node.
*/
func (nw *ThermalNetwork) split_gains(q_int, q_sol_win, q_sol_opq float64) (phi_air, phi_st float64) {
	phi_air = q_int + 0.5*q_sol_win
	phi_st = q_sol_opq + 0.5*q_sol_win
	return phi_air, phi_st
}

/*
Advance the network one step with a known supplied power.

Args:

	theta_m_prev: mass node temperature at the start of the step, degree C
	theta_o: outdoor temperature, degree C
	phi_air: flow at the air node, W
	phi_st: flow at the surface node, W
	phi_hc: heating (positive) or cooling (negative) power at the air node, W

Returns:

	StepResult with the three node temperatures

Notes:

	Crank-Nicolson in the mass node: the surface flows are evaluated at
	the mean of the old and new mass temperature, which keeps the scheme
	unconditionally stable at the one-hour step.
*/
func (nw *ThermalNetwork) Step(theta_m_prev, theta_o, phi_air, phi_st, phi_hc float64) StepResult {
	b := nw.surface_drive(theta_o, phi_air, phi_st, phi_hc)

	// mass node update, Crank-Nicolson
	num := theta_m_prev*(nw.c_m/delta_t-0.5*(nw.h_em+nw.h_2)) +
		nw.h_em*theta_o +
		nw.h_ms/(nw.h_ms+nw.h_1)*b
	den := nw.c_m/delta_t + 0.5*(nw.h_em+nw.h_2)
	theta_m := num / den

	theta_m_avg := 0.5 * (theta_m_prev + theta_m)
	theta_s := (nw.h_ms*theta_m_avg + b) / (nw.h_ms + nw.h_1)
	theta_air := (nw.h_is*theta_s + phi_air + nw.h_ea*theta_o + phi_hc) / (nw.h_is + nw.h_ea)

	return StepResult{theta_air: theta_air, theta_s: theta_s, theta_m: theta_m}
}

// surface_drive returns the combined flow b arriving at the surface node
// through H_1, W. It collects the surface injection and the air-side terms
// folded through the H_is / H_ea divider.
func (nw *ThermalNetwork) surface_drive(theta_o, phi_air, phi_st, phi_hc float64) float64 {
	return phi_st + nw.h_is/(nw.h_is+nw.h_ea)*(phi_air+nw.h_ea*theta_o+phi_hc)
}

/*
Air temperature response to the supplied power at one step.

Args:

	theta_m_prev: mass node temperature at the start of the step, degree C
	theta_o: outdoor temperature, degree C
	phi_air: flow at the air node, W
	phi_st: flow at the surface node, W

Returns:

	theta_air_0: air temperature at phi_hc = 0 (free running), degree C
	slope: d theta_air / d phi_hc, K/W

Notes:

	The step map phi_hc -> theta_air is affine, so two evaluations fix it
	exactly. The band controller inverts this map to hit a setpoint.
*/
func (nw *ThermalNetwork) AirResponse(theta_m_prev, theta_o, phi_air, phi_st float64) (theta_air_0, slope float64) {
	r0 := nw.Step(theta_m_prev, theta_o, phi_air, phi_st, 0.0)
	r1 := nw.Step(theta_m_prev, theta_o, phi_air, phi_st, probe_power)
	return r0.theta_air, (r1.theta_air - r0.theta_air) / probe_power
}

// probe power used to measure the affine air response, W
const probe_power = 1000.0
