package buem

// ComfortBand is the permissible indoor air temperature range, constant or
// per step. An inverted band is a configuration error, detected before any
// simulation step runs.
type ComfortBand struct {
	theta_lower_ns []float64 // lower comfort temperature at step n, degree C, [n] or [1]
	theta_upper_ns []float64 // upper comfort temperature at step n, degree C, [n] or [1]
}

/*
Construct a constant comfort band.

Args:

	theta_lower: lower comfort temperature, degree C
	theta_upper: upper comfort temperature, degree C
*/
func NewConstantComfortBand(theta_lower, theta_upper float64) (*ComfortBand, error) {
	return NewComfortBand([]float64{theta_lower}, []float64{theta_upper})
}

/*
Construct a comfort band from per-step bounds.

Args:

	theta_lower_ns: lower comfort temperature at step n, degree C, [n]
	theta_upper_ns: upper comfort temperature at step n, degree C, [n]

Notes:

	theta_lower <= theta_upper must hold at every step. A single-element
	pair acts as a constant band for any horizon length.
*/
func NewComfortBand(theta_lower_ns, theta_upper_ns []float64) (*ComfortBand, error) {
	if len(theta_lower_ns) == 0 || len(theta_lower_ns) != len(theta_upper_ns) {
		return nil, newConfigurationError("", "",
			"comfort band bounds must be non-empty and of equal length, got %d and %d",
			len(theta_lower_ns), len(theta_upper_ns))
	}
	for i := range theta_lower_ns {
		if !is_finite(theta_lower_ns[i]) || !is_finite(theta_upper_ns[i]) {
			return nil, newConfigurationError("", "", "comfort band bound at step %d is not finite", i)
		}
		if theta_lower_ns[i] > theta_upper_ns[i] {
			return nil, newConfigurationError("", "",
				"comfort band is inverted at step %d: lower %.2f > upper %.2f",
				i, theta_lower_ns[i], theta_upper_ns[i])
		}
	}
	return &ComfortBand{theta_lower_ns: theta_lower_ns, theta_upper_ns: theta_upper_ns}, nil
}

// Lower returns the lower bound at step n, degree C.
func (b *ComfortBand) Lower(n int) float64 {
	if len(b.theta_lower_ns) == 1 {
		return b.theta_lower_ns[0]
	}
	return b.theta_lower_ns[n]
}

// Upper returns the upper bound at step n, degree C.
func (b *ComfortBand) Upper(n int) float64 {
	if len(b.theta_upper_ns) == 1 {
		return b.theta_upper_ns[0]
	}
	return b.theta_upper_ns[n]
}

// Midpoint returns the band midpoint at step n, degree C. Used as the
// default initial node temperature.
func (b *ComfortBand) Midpoint(n int) float64 {
	return (b.Lower(n) + b.Upper(n)) / 2.0
}

/*
Check that the band covers a horizon of n steps.

Args:

	n: horizon length

Notes:

	A constant (single-element) band covers any horizon.
*/
func (b *ComfortBand) check_horizon(n int) error {
	if len(b.theta_lower_ns) != 1 && len(b.theta_lower_ns) != n {
		return newDataAlignmentError("",
			"comfort band has %d steps, horizon has %d", len(b.theta_lower_ns), n)
	}
	return nil
}
