package buem

import (
	"errors"
	"math"
)

// lowest admissible node temperature handed to the solver, degree C
const theta_floor = -273.15

// HorizonOptions parameterize the rolling-window optimizer.
type HorizonOptions struct {
	// WindowLength is the number of steps optimized at once.
	WindowLength int

	// Overlap is the number of trailing window steps re-optimized by the
	// next window. Overlapping hides the end-of-window boundary effect
	// (the optimizer would otherwise let the mass run down for free).
	Overlap int

	// EnergyWeight is the cost per watt-step of supplied energy.
	EnergyWeight float64

	// PeakWeight is the cost per watt of the peak heating power. Zero
	// disables the peak variable entirely.
	PeakWeight float64
}

// DefaultHorizonOptions returns one week windows with one day overlap and a
// pure energy objective.
func DefaultHorizonOptions() HorizonOptions {
	return HorizonOptions{
		WindowLength: 168,
		Overlap:      24,
		EnergyWeight: 1.0,
		PeakWeight:   0.0,
	}
}

func (o HorizonOptions) validate(building string) error {
	if o.WindowLength <= 0 {
		return newConfigurationError(building, "", "horizon window length must be positive, got %d", o.WindowLength)
	}
	if o.Overlap < 0 || o.Overlap >= o.WindowLength {
		return newConfigurationError(building, "",
			"horizon overlap must be within [0, window), got overlap %d for window %d", o.Overlap, o.WindowLength)
	}
	if o.EnergyWeight < 0.0 || o.PeakWeight < 0.0 {
		return newConfigurationError(building, "", "objective weights must be non-negative")
	}
	if o.EnergyWeight == 0.0 && o.PeakWeight == 0.0 {
		return newConfigurationError(building, "", "objective is identically zero")
	}
	return nil
}

/*
Simulate one building over the horizon with the anticipative optimizer.

Args:

	nw: thermal network of the building
	theta_o_ns: outdoor temperature at step n, degree C, [n]
	q_int_ns: effective internal gain at step n, W, [n]
	sol: solar gain series of the building
	band: comfort band
	limits: equipment capacity limits
	theta_m_init: mass node temperature before step 0, degree C
	opt: rolling-window options
	backend: linear program solver

Returns:

	phi_hc_ns: supplied power at step n, W, heating positive, [n]
	res_ns: node temperatures at step n, [n]

Notes:

	The network recurrence becomes the equality rows of a linear program
	whose variables are the node temperatures and the non-negative heating
	and cooling powers of every window step; the comfort band and the
	equipment capacities are variable bounds. The dynamics rows are the
	same Crank-Nicolson balance that Step solves, so a feasible point
	replayed through Step reproduces its own temperatures. Heating and
	cooling both carry positive cost, so the optimum never pays for both
	in the same hour. Windows roll forward committing all but the overlap
	and carrying the mass temperature of the last committed step.
*/
func run_horizon(
	nw *ThermalNetwork,
	theta_o_ns []float64,
	q_int_ns []float64,
	sol *SolarGains,
	band *ComfortBand,
	limits EquipmentLimits,
	theta_m_init float64,
	opt HorizonOptions,
	backend Backend,
) (phi_hc_ns []float64, res_ns []StepResult, err error) {
	if err := opt.validate(nw.building); err != nil {
		return nil, nil, err
	}

	n := len(theta_o_ns)
	phi_hc_ns = make([]float64, n)
	res_ns = make([]StepResult, n)

	theta_m := theta_m_init
	for start := 0; start < n; {
		k := opt.WindowLength
		if start+k > n {
			k = n - start
		}

		x, e := solve_window(nw, theta_o_ns, q_int_ns, sol, band, limits, theta_m, start, k, opt, backend)
		if e != nil {
			if errors.Is(e, ErrInfeasible) {
				return nil, nil, &SolverInfeasibleError{
					Building:    nw.building,
					WindowStart: start,
					WindowEnd:   start + k,
					Reason:      "comfort band cannot be held within the equipment capacity",
				}
			}
			return nil, nil, newNumericalSolveError(nw.building, start, "window solve failed: %v", e)
		}

		commit := k - opt.Overlap
		if start+k == n || commit <= 0 {
			commit = k
		}
		for i := 0; i < commit; i++ {
			phi_hc_ns[start+i] = x.q_h[i] - x.q_c[i]
			res_ns[start+i] = StepResult{
				theta_air: x.theta_air[i],
				theta_s:   x.theta_s[i],
				theta_m:   x.theta_m[i],
			}
		}
		theta_m = x.theta_m[commit-1]
		start += commit
	}
	return phi_hc_ns, res_ns, nil
}

// windowSolution is the unpacked solver point of one window.
type windowSolution struct {
	theta_air []float64
	theta_s   []float64
	theta_m   []float64
	q_h       []float64
	q_c       []float64
}

/*
Assemble and solve the linear program of one window.

Args:

	start: first step of the window
	k: window length in steps
	theta_m_init: mass node temperature before the first window step, degree C

Returns:

	windowSolution

Notes:

	Variable layout: [theta_air 0..k) [theta_s k..2k) [theta_m 2k..3k)
	[q_h 3k..4k) [q_c 4k..5k) [peak], theta_m being the end-of-step value.
	The initial mass temperature is folded into the right-hand sides of
	the first surface and mass rows.
*/
func solve_window(
	nw *ThermalNetwork,
	theta_o_ns []float64,
	q_int_ns []float64,
	sol *SolarGains,
	band *ComfortBand,
	limits EquipmentLimits,
	theta_m_init float64,
	start, k int,
	opt HorizonOptions,
	backend Backend,
) (*windowSolution, error) {
	i_air := func(i int) int { return i }
	i_s := func(i int) int { return k + i }
	i_m := func(i int) int { return 2*k + i }
	i_qh := func(i int) int { return 3*k + i }
	i_qc := func(i int) int { return 4*k + i }

	n_var := 5 * k
	with_peak := opt.PeakWeight > 0.0
	i_peak := n_var
	if with_peak {
		n_var++
	}

	p := NewLinearProgram(n_var)

	c_dt := nw.c_m / delta_t
	row := make([]float64, n_var)
	clear_row := func() {
		for j := range row {
			row[j] = 0.0
		}
	}

	for i := 0; i < k; i++ {
		n_abs := start + i
		theta_o := theta_o_ns[n_abs]
		phi_air, phi_st := nw.split_gains(q_int_ns[n_abs], sol.Window()[n_abs], sol.Opaque()[n_abs])

		// air node balance
		clear_row()
		row[i_air(i)] = nw.h_is + nw.h_ea
		row[i_s(i)] = -nw.h_is
		row[i_qh(i)] = -1.0
		row[i_qc(i)] = 1.0
		p.AddEqualityRow(row, phi_air+nw.h_ea*theta_o)

		// surface node balance, mass coupling at the step-mean temperature
		clear_row()
		row[i_s(i)] = nw.h_is + nw.h_ms
		row[i_air(i)] = -nw.h_is
		row[i_m(i)] = -0.5 * nw.h_ms
		rhs := phi_st
		if i == 0 {
			rhs += 0.5 * nw.h_ms * theta_m_init
		} else {
			row[i_m(i-1)] = -0.5 * nw.h_ms
		}
		p.AddEqualityRow(row, rhs)

		// mass node balance, Crank-Nicolson
		clear_row()
		row[i_m(i)] = c_dt + 0.5*(nw.h_em+nw.h_ms)
		row[i_s(i)] = -nw.h_ms
		rhs = nw.h_em * theta_o
		if i == 0 {
			rhs += (c_dt - 0.5*(nw.h_em+nw.h_ms)) * theta_m_init
		} else {
			row[i_m(i-1)] = -(c_dt - 0.5*(nw.h_em+nw.h_ms))
		}
		p.AddEqualityRow(row, rhs)

		// comfort band and free node bounds
		p.SetBounds(i_air(i), band.Lower(n_abs), band.Upper(n_abs))
		p.SetBounds(i_s(i), theta_floor, posInf())
		p.SetBounds(i_m(i), theta_floor, posInf())

		// equipment capacity and energy cost
		h_cap, c_cap := posInf(), posInf()
		if limits.HeatingCapacity > 0.0 {
			h_cap = limits.HeatingCapacity
		}
		if limits.CoolingCapacity > 0.0 {
			c_cap = limits.CoolingCapacity
		}
		p.SetBounds(i_qh(i), 0.0, h_cap)
		p.SetBounds(i_qc(i), 0.0, c_cap)
		p.SetCost(i_qh(i), opt.EnergyWeight)
		p.SetCost(i_qc(i), opt.EnergyWeight)

		if with_peak {
			clear_row()
			row[i_qh(i)] = 1.0
			row[i_peak] = -1.0
			p.AddInequalityRow(row, 0.0)
		}
	}

	if with_peak {
		p.SetBounds(i_peak, 0.0, posInf())
		p.SetCost(i_peak, opt.PeakWeight)
	}

	x, err := backend.Solve(p)
	if err != nil {
		return nil, err
	}

	ws := &windowSolution{
		theta_air: x[0:k],
		theta_s:   x[k : 2*k],
		theta_m:   x[2*k : 3*k],
		q_h:       x[3*k : 4*k],
		q_c:       x[4*k : 5*k],
	}
	return ws, nil
}

func posInf() float64 { return math.Inf(1) }
