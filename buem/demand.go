package buem

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DemandSeries holds the solved hourly demand of one building. Heating and
// cooling are reported as separate non-negative series; at most one of them
// is non-zero at any step.
type DemandSeries struct {
	building string
	band     *ComfortBand // band the run was solved against, nil for ad-hoc series

	q_h_ns []float64 // heating power at step n, W, [n]
	q_c_ns []float64 // cooling power at step n, W, [n]

	theta_air_ns []float64 // air node temperature at step n, degree C, [n]
	theta_s_ns   []float64 // surface node temperature at step n, degree C, [n]
	theta_m_ns   []float64 // mass node temperature at step n, degree C, [n]
}

/*
Build the demand series from a solved run.

Args:

	building: building identifier
	band: comfort band the run was solved against, may be nil
	phi_hc_ns: signed supplied power at step n, W, heating positive, [n]
	res_ns: node temperatures at step n, [n]

Returns:

	DemandSeries

Notes:

	The signed power is split into its positive and negative parts here,
	once; everything downstream (recorder, summary, batch aggregation)
	works with the split series.
*/
func NewDemandSeries(building string, band *ComfortBand, phi_hc_ns []float64, res_ns []StepResult) *DemandSeries {
	n := len(phi_hc_ns)
	d := &DemandSeries{
		building:     building,
		band:         band,
		q_h_ns:       make([]float64, n),
		q_c_ns:       make([]float64, n),
		theta_air_ns: make([]float64, n),
		theta_s_ns:   make([]float64, n),
		theta_m_ns:   make([]float64, n),
	}
	for i, phi := range phi_hc_ns {
		if phi > 0.0 {
			d.q_h_ns[i] = phi
		} else {
			d.q_c_ns[i] = -phi
		}
		d.theta_air_ns[i] = res_ns[i].AirTemperature()
		d.theta_s_ns[i] = res_ns[i].SurfaceTemperature()
		d.theta_m_ns[i] = res_ns[i].MassTemperature()
	}
	return d
}

// Building returns the building identifier.
func (d *DemandSeries) Building() string { return d.building }

// Len returns the number of steps.
func (d *DemandSeries) Len() int { return len(d.q_h_ns) }

// Heating returns the heating power series, W, [n].
func (d *DemandSeries) Heating() []float64 { return d.q_h_ns }

// Cooling returns the cooling power series, W, [n].
func (d *DemandSeries) Cooling() []float64 { return d.q_c_ns }

// AirTemperature returns the air node temperature series, degree C, [n].
func (d *DemandSeries) AirTemperature() []float64 { return d.theta_air_ns }

// check_finite scans the result series for non-finite values. A NaN or Inf
// anywhere means the solve silently degenerated and the run must fail.
func (d *DemandSeries) check_finite() error {
	for i := range d.q_h_ns {
		if !is_finite(d.q_h_ns[i]) || !is_finite(d.q_c_ns[i]) ||
			!is_finite(d.theta_air_ns[i]) || !is_finite(d.theta_s_ns[i]) || !is_finite(d.theta_m_ns[i]) {
			return newNumericalSolveError(d.building, i, "non-finite value in result series")
		}
	}
	return nil
}

// DemandSummary holds the annual aggregates of one building.
type DemandSummary struct {
	Building string

	HeatingEnergy float64 // annual heating energy, kWh
	CoolingEnergy float64 // annual cooling energy, kWh

	PeakHeating float64 // maximum heating power, W
	PeakCooling float64 // maximum cooling power, W

	MeanAirTemperature float64 // degree C
	MinAirTemperature  float64 // degree C
	MaxAirTemperature  float64 // degree C

	HoursOutsideBand int // hours where the air temperature left the comfort band
}

/*
Aggregate the demand series.

Returns:

	DemandSummary

Notes:

	Energy converts watt-hours to kWh under the fixed one-hour step.
*/
func (d *DemandSeries) Summary() DemandSummary {
	return DemandSummary{
		Building:           d.building,
		HeatingEnergy:      floats.Sum(d.q_h_ns) / 1000.0,
		CoolingEnergy:      floats.Sum(d.q_c_ns) / 1000.0,
		PeakHeating:        floats.Max(d.q_h_ns),
		PeakCooling:        floats.Max(d.q_c_ns),
		MeanAirTemperature: stat.Mean(d.theta_air_ns, nil),
		MinAirTemperature:  floats.Min(d.theta_air_ns),
		MaxAirTemperature:  floats.Max(d.theta_air_ns),
		HoursOutsideBand:   d.HoursOutsideBand(),
	}
}

// tolerance against solver round-off when classifying band violations, K
const band_violation_tol = 1e-6

// HoursOutsideBand counts the hours where the air temperature left the
// comfort band. A capacity-limited run shows its shortfall here.
func (d *DemandSeries) HoursOutsideBand() int {
	if d.band == nil {
		return 0
	}
	violations := 0
	for i, theta_air := range d.theta_air_ns {
		if theta_air < d.band.Lower(i)-band_violation_tol || theta_air > d.band.Upper(i)+band_violation_tol {
			violations++
		}
	}
	return violations
}
