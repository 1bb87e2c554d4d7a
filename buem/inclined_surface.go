package buem

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// ground reflectance used by the ground-reflected irradiance component
const rho_gnd = 0.2

/*
Calculate the irradiance incident on an inclined surface.

Args:

	w: WeatherSeries
	h_sun_ns: solar altitude at step n, rad, [n]
	a_sun_ns: solar azimuth at step n, rad, [n]
	srf: the oriented surface j

Returns:

	(1) direct component incident on surface j at step n, W/m2, [n]
	(2) sky (isotropic diffuse) component incident on surface j at step n, W/m2, [n]
	(3) ground-reflected component incident on surface j at step n, W/m2, [n]
*/
func get_i_srf_j_ns(
	w *WeatherSeries,
	h_sun_ns, a_sun_ns []float64,
	srf OrientedSurface,
) (i_srf_dn_j_ns, i_srf_sky_j_ns, i_srf_ref_j_ns *mat.VecDense) {

	// cosine of the angle of incidence on surface j at step n, -, [n]
	cos_phi_j_ns := get_cos_phi_j_ns(h_sun_ns, a_sun_ns, srf.alpha_w_j, srf.beta_w_j)

	// view factor of surface j to the sky, -
	f_sky_j := _get_f_sky_j(srf.beta_w_j)

	// view factor of surface j to the ground, -
	f_gnd_j := _get_f_gnd_j(f_sky_j)

	// direct component at step n, W/m2, [n]
	i_srf_dn_j_ns = _get_i_srf_dn_j_ns(w.i_dn_ns, cos_phi_j_ns)

	// sky component at step n, W/m2, [n]
	i_srf_sky_j_ns = _get_i_srf_sky_j_ns(w.i_dif_ns, f_sky_j)

	// ground-reflected component at step n, W/m2, [n]
	i_srf_ref_j_ns = _get_i_srf_ref_j_ns(f_gnd_j, w.i_glb_ns)

	return i_srf_dn_j_ns, i_srf_sky_j_ns, i_srf_ref_j_ns
}

/*
Calculate the cosine of the solar angle of incidence on an inclined surface.

Args:

	h_sun_ns: solar altitude at step n, rad, [n]
	a_sun_ns: solar azimuth at step n, measured from south, rad, [n]
	alpha_w_j: azimuth of surface j, measured from south, rad
	beta_w_j: tilt of surface j, rad

Returns:

	cosine of the angle of incidence on surface j at step n, -, [n]

Notes:

	A negative cosine means the sun is behind the surface; the value is
	clamped to zero so no back-surface gain appears. With the sun at the
	zenith the azimuth is undefined (NaN); the azimuth-dependent terms
	vanish there because cos(h_sun) is zero, so only the tilt term is
	evaluated.
*/
func get_cos_phi_j_ns(h_sun_ns, a_sun_ns []float64, alpha_w_j, beta_w_j float64) []float64 {
	cos_beta := math.Cos(beta_w_j)
	sin_beta := math.Sin(beta_w_j)

	cos_phi_j_ns := make([]float64, len(h_sun_ns))
	for i, h_sun := range h_sun_ns {
		sin_h_sun := math.Sin(h_sun)
		cos_h_sun := math.Cos(h_sun)

		if cos_h_sun == 0.0 || math.IsNaN(a_sun_ns[i]) {
			cos_phi_j_ns[i] = math.Max(sin_h_sun*cos_beta, 0.0)
		} else {
			a_sun := a_sun_ns[i]
			cos_phi_j_ns[i] = math.Max(sin_h_sun*cos_beta+
				cos_h_sun*math.Sin(a_sun)*sin_beta*math.Sin(alpha_w_j)+
				cos_h_sun*math.Cos(a_sun)*sin_beta*math.Cos(alpha_w_j), 0.0)
		}
	}
	return cos_phi_j_ns
}

/*
Direct component of the irradiance on an inclined surface.

Args:

	i_dn_ns: direct normal irradiance at step n, W/m2, [n]
	cos_phi_j_ns: cosine of the angle of incidence on surface j at step n, -, [n]

Returns:

	direct component incident on surface j at step n, W/m2, [n]
*/
func _get_i_srf_dn_j_ns(i_dn_ns, cos_phi_j_ns []float64) *mat.VecDense {
	i_srf_dn_j_ns := mat.NewVecDense(len(i_dn_ns), nil)
	for i := range i_dn_ns {
		i_srf_dn_j_ns.SetVec(i, i_dn_ns[i]*cos_phi_j_ns[i])
	}
	return i_srf_dn_j_ns
}

/*
Sky component of the irradiance on an inclined surface (isotropic model).

Args:

	i_dif_ns: diffuse horizontal irradiance at step n, W/m2, [n]
	f_sky_j: view factor of surface j to the sky, -

Returns:

	sky component incident on surface j at step n, W/m2, [n]
*/
func _get_i_srf_sky_j_ns(i_dif_ns []float64, f_sky_j float64) *mat.VecDense {
	var i_srf_sky_j_ns mat.VecDense
	i_srf_sky_j_ns.ScaleVec(f_sky_j, mat.NewVecDense(len(i_dif_ns), i_dif_ns))
	return &i_srf_sky_j_ns
}

/*
Ground-reflected component of the irradiance on an inclined surface.

Args:

	f_gnd_j: view factor of surface j to the ground, -
	i_glb_ns: global horizontal irradiance at step n, W/m2, [n]

Returns:

	ground-reflected component incident on surface j at step n, W/m2, [n]
*/
func _get_i_srf_ref_j_ns(f_gnd_j float64, i_glb_ns []float64) *mat.VecDense {
	var i_srf_ref_j_ns mat.VecDense
	i_srf_ref_j_ns.ScaleVec(f_gnd_j*rho_gnd, mat.NewVecDense(len(i_glb_ns), i_glb_ns))
	return &i_srf_ref_j_ns
}

/*
View factor of an inclined surface to the sky.

Args:

	beta_w_j: tilt of surface j, rad

Returns:

	view factor of surface j to the sky, -

Notes:

	The tilt is zero for an upward horizontal surface, pi/2 for a
	vertical one and pi for a downward-facing one; it is validated at
	envelope construction.
*/
func _get_f_sky_j(beta_w_j float64) float64 {
	return (1.0 + math.Cos(beta_w_j)) / 2.0
}

/*
View factor of an inclined surface to the ground.

Args:

	f_sky_j: view factor of surface j to the sky, -

Returns:

	view factor of surface j to the ground, -
*/
func _get_f_gnd_j(f_sky_j float64) float64 {
	return 1.0 - f_sky_j
}
