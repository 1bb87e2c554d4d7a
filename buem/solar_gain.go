package buem

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Constants of the opaque absorption and window sky-loss terms.
const (
	// solar absorptance of opaque external surfaces, - (ASHRAE 140, table 5.3)
	alpha_opaque = 0.6

	// external radiative heat transfer coefficient, W/(m2 K) (emittance 0.9 * 5.0)
	h_r_spec = 4.5

	// external surface heat transfer resistance, m2 K/W (ISO 6946, table 1)
	r_se = 0.04

	// average difference between external air and sky temperature, K
	delta_t_sky = 11.0
)

// SolarGains holds the hourly solar heat flows of one building.
type SolarGains struct {
	q_sol_win_ns []float64 // solar gain transmitted through glazing at step n, W, [n]
	q_sol_opq_ns []float64 // solar gain absorbed on opaque surfaces at step n, W, [n]

	q_sol_bucket_ns map[OrientationBucket][]float64 // window gain per orientation at step n, W, [n]
}

// Window returns the transmitted window gain series, W, [n].
func (g *SolarGains) Window() []float64 { return g.q_sol_win_ns }

// Opaque returns the opaque absorption gain series, W, [n].
func (g *SolarGains) Opaque() []float64 { return g.q_sol_opq_ns }

// Bucket returns the transmitted gain series of one orientation, W, [n].
func (g *SolarGains) Bucket(b OrientationBucket) []float64 { return g.q_sol_bucket_ns[b] }

/*
Calculate the solar gain series of a building.

Args:

	e: aggregated building envelope
	w: WeatherSeries
	latitude_deg: site latitude, degree, north positive
	longitude_deg: site longitude, degree, east positive

Returns:

	SolarGains

Notes:

	Window gain is the g-weighted aperture times the incident irradiance
	(direct + isotropic sky + ground reflected), reduced by the constant
	sky re-radiation term H_win * h_r * R_se * dT_sky. Opaque gain is the
	absorptance-weighted incident irradiance on walls and roof; it feeds
	the surface node, never the air node. Identical inputs give
	bit-identical output.
*/
func calc_solar_gains(e *BuildingEnvelope, w *WeatherSeries, latitude_deg, longitude_deg float64) *SolarGains {
	n := w.Len()

	g := &SolarGains{
		q_sol_win_ns:    make([]float64, n),
		q_sol_opq_ns:    make([]float64, n),
		q_sol_bucket_ns: make(map[OrientationBucket][]float64),
	}
	for _, b := range AllOrientationBuckets {
		g.q_sol_bucket_ns[b] = make([]float64, n)
	}

	if len(e.glazing) == 0 && len(e.opaque_sun) == 0 {
		return g
	}

	phi_loc := latitude_deg * degToRad
	lambda_loc := longitude_deg * degToRad
	lambda_loc_mer := default_time_meridian(longitude_deg)

	// solar altitude and azimuth at step n, rad, [n]
	h_sun_ns, a_sun_ns := calc_solar_position(phi_loc, lambda_loc, lambda_loc_mer, w)

	for _, srf := range e.glazing {
		q_j_ns := _get_q_sol_srf_j_ns(w, h_sun_ns, a_sun_ns, srf)
		floats.Add(g.q_sol_win_ns, q_j_ns)
		floats.Add(g.q_sol_bucket_ns[srf.Bucket()], q_j_ns)
	}

	for _, srf := range e.opaque_sun {
		floats.Add(g.q_sol_opq_ns, _get_q_sol_srf_j_ns(w, h_sun_ns, a_sun_ns, srf))
	}

	// constant long-wave loss of the glazing to the sky, W
	q_sky_win := e.h_win * h_r_spec * r_se * delta_t_sky
	if q_sky_win > 0.0 {
		for i := range g.q_sol_win_ns {
			g.q_sol_win_ns[i] -= q_sky_win
		}
	}

	return g
}

/*
Solar gain of one oriented surface.

Args:

	w: WeatherSeries
	h_sun_ns: solar altitude at step n, rad, [n]
	a_sun_ns: solar azimuth at step n, rad, [n]
	srf: the oriented surface j

Returns:

	solar gain of surface j at step n, W, [n]

Notes:

	The aperture already carries the transmittance (windows) or
	absorptance and shading (opaque), so the gain is simply
	aperture * incident irradiance.
*/
func _get_q_sol_srf_j_ns(w *WeatherSeries, h_sun_ns, a_sun_ns []float64, srf OrientedSurface) []float64 {
	i_srf_dn_j_ns, i_srf_sky_j_ns, i_srf_ref_j_ns := get_i_srf_j_ns(w, h_sun_ns, a_sun_ns, srf)

	var i_srf_j_ns mat.VecDense
	i_srf_j_ns.AddVec(i_srf_dn_j_ns, i_srf_sky_j_ns)
	i_srf_j_ns.AddVec(&i_srf_j_ns, i_srf_ref_j_ns)

	q_j_ns := make([]float64, i_srf_j_ns.Len())
	aperture := srf.Aperture()
	for i := range q_j_ns {
		q_j_ns[i] = aperture * i_srf_j_ns.AtVec(i)
	}
	return q_j_ns
}
