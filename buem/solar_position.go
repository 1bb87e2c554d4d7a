package buem

import "math"

/*
Solar position at step n, computed from day-of-year and local solar time.
*/

/*
Calculate the solar position series.

Args:

	phi_loc: latitude, rad
	lambda_loc: longitude, rad
	lambda_loc_mer: longitude of the local time meridian, rad
	w: WeatherSeries (supplies the timestamps of the steps)

Returns:

	tuple
	    (1) solar altitude at step n, rad, [n]
	    (2) solar azimuth at step n, measured from south, rad, [n]

Notes:

	The longitude correction against the time meridian and the equation
	of time are applied; no daylight-saving adjustment. Each step is
	evaluated at its mid-hour, matching hourly-averaged irradiance.
*/
func calc_solar_position(phi_loc, lambda_loc, lambda_loc_mer float64, w *WeatherSeries) ([]float64, []float64) {

	// day of year at step n (January 1st = 1), [n]
	d_ns := _get_d_ns(w)

	// clock time at step n, h, [n]
	t_m_ns := _get_t_m_ns(w)

	// year angle at step n, rad, [n]
	b_ns := _get_b_ns(d_ns)

	// solar declination at step n, rad, [n]
	delta_ns := _get_delta_ns(d_ns)

	// equation of time at step n, h, [n]
	e_t_ns := _get_e_t_ns(b_ns)

	// hour angle at step n, rad, [n]
	omega_ns := _get_omega_ns(t_m_ns, lambda_loc, lambda_loc_mer, e_t_ns)

	// solar altitude at step n, rad, [n]
	h_sun_ns := _get_h_sun_ns(phi_loc, omega_ns, delta_ns)

	// whether the sun is away from the zenith at step n (zenith = false), [n]
	is_not_zenith_ns := _get_is_not_zenith_ns(h_sun_ns)

	// sine of the solar azimuth at step n (defined away from the zenith only), [n]
	sin_a_sun_ns := _get_sin_a_sun_ns(delta_ns, h_sun_ns, omega_ns, is_not_zenith_ns)

	// cosine of the solar azimuth at step n (defined away from the zenith only), [n]
	cos_a_sun_ns := _get_cos_a_sun_ns(delta_ns, h_sun_ns, phi_loc, is_not_zenith_ns)

	// solar azimuth at step n, rad, [n]
	a_sun_ns := _get_a_sun_ns(cos_a_sun_ns, sin_a_sun_ns, is_not_zenith_ns)

	return h_sun_ns, a_sun_ns
}

/*
Default time meridian for a site longitude.

Args:

	longitude_deg: site longitude, degree, east positive

Returns:

	longitude of the nearest 15-degree time meridian, rad
*/
func default_time_meridian(longitude_deg float64) float64 {
	return math.Round(longitude_deg/15.0) * 15.0 * math.Pi / 180.0
}

/*
Day of year at step n.

Args:

	w: WeatherSeries

Returns:

	day of year at step n (January 1st = 1), [n]
*/
func _get_d_ns(w *WeatherSeries) []float64 {
	d_ns := make([]float64, w.Len())
	ts := w.Start()
	for i := range d_ns {
		d_ns[i] = float64(ts.YearDay())
		ts = ts.Add(3600e9)
	}
	return d_ns
}

/*
Clock time at step n.

Args:

	w: WeatherSeries

Returns:

	clock time at step n, h, [n]

Notes:

	Evaluated at the middle of each hourly step: 0.5, 1.5, ... 23.5.
*/
func _get_t_m_ns(w *WeatherSeries) []float64 {
	t_m_ns := make([]float64, w.Len())
	ts := w.Start()
	for i := range t_m_ns {
		t_m_ns[i] = float64(ts.Hour()) + 0.5
		ts = ts.Add(3600e9)
	}
	return t_m_ns
}

/*
Year angle at step n.

Args:

	d_ns: day of year at step n, [n]

Returns:

	year angle at step n, rad, [n]

Notes:

	B = 2 pi (d - 1) / 365 (Spencer).
*/
func _get_b_ns(d_ns []float64) []float64 {
	b_ns := make([]float64, len(d_ns))
	for i, d := range d_ns {
		b_ns[i] = 2.0 * math.Pi * (d - 1.0) / 365.0
	}
	return b_ns
}

/*
Solar declination at step n.

Args:

	d_ns: day of year at step n, [n]

Returns:

	solar declination at step n, rad, [n]

Notes:

	delta = 23.45 deg * sin(2 pi (284 + d) / 365) (Cooper).
*/
func _get_delta_ns(d_ns []float64) []float64 {
	const delta_max = 23.45 * math.Pi / 180.0

	delta_ns := make([]float64, len(d_ns))
	for i, d := range d_ns {
		delta_ns[i] = delta_max * math.Sin(2.0*math.Pi*(284.0+d)/365.0)
	}
	return delta_ns
}

/*
Equation of time at step n.

Args:

	b_ns: year angle at step n, rad, [n]

Returns:

	equation of time at step n, h, [n]

Notes:

	Spencer series, 229.18 min/rad converted to hours.
*/
func _get_e_t_ns(b_ns []float64) []float64 {
	e_t_ns := make([]float64, len(b_ns))
	for i, b := range b_ns {
		e_t_min := 229.18 * (0.000075 +
			0.001868*math.Cos(b) - 0.032077*math.Sin(b) -
			0.014615*math.Cos(2.0*b) - 0.04089*math.Sin(2.0*b))
		e_t_ns[i] = e_t_min / 60.0
	}
	return e_t_ns
}

/*
Hour angle at step n.

Args:

	t_m_ns: clock time at step n, h, [n]
	lambda_loc: longitude, rad
	lambda_loc_mer: longitude of the time meridian, rad
	e_t_ns: equation of time at step n, h, [n]

Returns:

	hour angle at step n, rad, [n]

Notes:

	Local solar time is the clock time shifted by the longitude offset
	from the time meridian (4 min per degree) plus the equation of time.
*/
func _get_omega_ns(t_m_ns []float64, lambda_loc, lambda_loc_mer float64, e_t_ns []float64) []float64 {
	omega_ns := make([]float64, len(t_m_ns))
	lon_corr := (lambda_loc - lambda_loc_mer) * 180.0 / math.Pi / 15.0
	for i, t_m := range t_m_ns {
		t_sol := t_m + lon_corr + e_t_ns[i]
		omega_ns[i] = (t_sol - 12.0) * 15.0 * math.Pi / 180.0
	}
	return omega_ns
}

/*
Solar altitude at step n.

Args:

	phi_loc: latitude, rad
	omega_ns: hour angle at step n, rad, [n]
	delta_ns: solar declination at step n, rad, [n]

Returns:

	solar altitude at step n, rad, [n]

Notes:

	The altitude goes negative while the sun is below the horizon.
*/
func _get_h_sun_ns(phi_loc float64, omega_ns, delta_ns []float64) []float64 {
	h_sun_ns := make([]float64, len(omega_ns))
	sin_phi_loc := math.Sin(phi_loc)
	cos_phi_loc := math.Cos(phi_loc)
	for i, omega := range omega_ns {
		h_sun_ns[i] = math.Asin(sin_phi_loc*math.Sin(delta_ns[i]) + cos_phi_loc*math.Cos(delta_ns[i])*math.Cos(omega))
	}
	return h_sun_ns
}

/*
Args:

	h_sun_ns: solar altitude at step n, rad, [n]

Returns:

	whether the sun is away from the zenith at step n (zenith = false), [n]
*/
func _get_is_not_zenith_ns(h_sun_ns []float64) []bool {
	is_not_zenith_ns := make([]bool, len(h_sun_ns))
	for i, h_sun := range h_sun_ns {
		is_not_zenith_ns[i] = h_sun != math.Pi/2
	}
	return is_not_zenith_ns
}

/*
Args:

	delta_ns: solar declination at step n, rad, [n]
	h_sun_ns: solar altitude at step n, rad, [n]
	omega_ns: hour angle at step n, rad, [n]
	inzs: whether the sun is away from the zenith at step n, [n]

Returns:

	sine of the solar azimuth at step n (defined away from the zenith only), [n]
*/
func _get_sin_a_sun_ns(delta_ns, h_sun_ns, omega_ns []float64, inzs []bool) []float64 {
	sin_a_sun_ns := make([]float64, len(h_sun_ns))
	for i, inz := range inzs {
		if inz {
			sin_a_sun_ns[i] = math.Cos(delta_ns[i]) * math.Sin(omega_ns[i]) / math.Cos(h_sun_ns[i])
		} else {
			// the azimuth is undefined with the sun at the zenith
			sin_a_sun_ns[i] = math.NaN()
		}
	}
	return sin_a_sun_ns
}

/*
Args:

	delta_ns: solar declination at step n, rad, [n]
	h_sun_ns: solar altitude at step n, rad, [n]
	phi_loc: latitude, rad
	inzs: whether the sun is away from the zenith at step n, [n]

Returns:

	cosine of the solar azimuth at step n (defined away from the zenith only), [n]
*/
func _get_cos_a_sun_ns(delta_ns, h_sun_ns []float64, phi_loc float64, inzs []bool) []float64 {
	cos_a_sun_ns := make([]float64, len(h_sun_ns))
	sin_phi_loc := math.Sin(phi_loc)
	cos_phi_loc := math.Cos(phi_loc)
	for i, inz := range inzs {
		if inz {
			cos_a_sun_ns[i] = (math.Sin(h_sun_ns[i])*sin_phi_loc - math.Sin(delta_ns[i])) /
				(math.Cos(h_sun_ns[i]) * cos_phi_loc)
		} else {
			// the azimuth is undefined with the sun at the zenith
			cos_a_sun_ns[i] = math.NaN()
		}
	}
	return cos_a_sun_ns
}

/*
Args:

	cos_a_sun_ns: cosine of the solar azimuth at step n, [n]
	sin_a_sun_ns: sine of the solar azimuth at step n, [n]
	inzs: whether the sun is away from the zenith at step n, [n]

Returns:

	solar azimuth at step n, measured from south, rad, [n]

Notes:

	atan2 takes the sine first: the result covers all four quadrants,
	-pi (north, through east) to pi (north, through west).
*/
func _get_a_sun_ns(cos_a_sun_ns, sin_a_sun_ns []float64, inzs []bool) []float64 {
	a_sun_ns := make([]float64, len(cos_a_sun_ns))
	for i, inz := range inzs {
		if inz {
			a_sun_ns[i] = math.Atan2(sin_a_sun_ns[i], cos_a_sun_ns[i])
		} else {
			// the azimuth is undefined with the sun at the zenith
			a_sun_ns[i] = math.NaN()
		}
	}
	return a_sun_ns
}
