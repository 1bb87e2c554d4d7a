package buem

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clear_sky_weather builds one clear June day: zero irradiance at night, a
// flat daytime block between 06 and 18 UTC.
func clear_sky_weather(t *testing.T) *WeatherSeries {
	t.Helper()
	n := 24
	theta_o_ns := make([]float64, n)
	i_glb_ns := make([]float64, n)
	i_dn_ns := make([]float64, n)
	i_dif_ns := make([]float64, n)
	for i := 0; i < n; i++ {
		theta_o_ns[i] = 18.0
		if i >= 6 && i < 18 {
			i_glb_ns[i] = 500.0
			i_dn_ns[i] = 600.0
			i_dif_ns[i] = 150.0
		}
	}
	start := time.Date(2023, 6, 21, 0, 0, 0, 0, time.UTC)
	w, err := NewWeatherSeries(start, theta_o_ns, i_glb_ns, i_dn_ns, i_dif_ns)
	require.NoError(t, err)
	return w
}

func TestSolarGainsZeroAtNight(t *testing.T) {
	e, err := NewBuildingEnvelope(simple_building("b1"))
	require.NoError(t, err)
	w := clear_sky_weather(t)

	g := calc_solar_gains(e, w, 52.0, 0.0)

	for _, i := range []int{0, 1, 2, 3, 22, 23} {
		assert.Zero(t, g.Opaque()[i], "hour %d", i)
		for _, b := range AllOrientationBuckets {
			assert.Zero(t, g.Bucket(b)[i], "hour %d bucket %s", i, b)
		}
	}
}

func TestSolarGainsWindowSkyLossIsConstant(t *testing.T) {
	e, err := NewBuildingEnvelope(simple_building("b1"))
	require.NoError(t, err)
	w := clear_sky_weather(t)

	g := calc_solar_gains(e, w, 52.0, 0.0)

	// at night the window series shows exactly the re-radiation loss
	loss := e.HWin() * h_r_spec * r_se * delta_t_sky
	assert.InDelta(t, -loss, g.Window()[0], 1e-9)
	assert.InDelta(t, -loss, g.Window()[23], 1e-9)
}

func TestSolarGainsSouthExceedsNorthAtNoon(t *testing.T) {
	e, err := NewBuildingEnvelope(simple_building("b1"))
	require.NoError(t, err)
	w := clear_sky_weather(t)

	g := calc_solar_gains(e, w, 52.0, 0.0)

	// identical windows, so only the direct component differs
	noon := 12
	assert.Greater(t, g.Bucket(OrientationSouth)[noon], g.Bucket(OrientationNorth)[noon])
	assert.Greater(t, g.Bucket(OrientationNorth)[noon], 0.0)
}

func TestSolarGainsOpaquePositiveInDaytime(t *testing.T) {
	e, err := NewBuildingEnvelope(simple_building("b1"))
	require.NoError(t, err)
	w := clear_sky_weather(t)

	g := calc_solar_gains(e, w, 52.0, 0.0)

	assert.Greater(t, g.Opaque()[12], 0.0)
}

func TestSolarGainsAreDeterministic(t *testing.T) {
	e, err := NewBuildingEnvelope(simple_building("b1"))
	require.NoError(t, err)
	w := clear_sky_weather(t)

	a := calc_solar_gains(e, w, 52.0, 0.0)
	b := calc_solar_gains(e, w, 52.0, 0.0)

	assert.Equal(t, a.Window(), b.Window())
	assert.Equal(t, a.Opaque(), b.Opaque())
}

func TestSolarGainsEmptyEnvelope(t *testing.T) {
	e := reference_envelope(t)
	w := clear_sky_weather(t)

	// a parameter-only envelope has no surfaces attached
	g := calc_solar_gains(e, w, 52.0, 0.0)

	for i := 0; i < w.Len(); i++ {
		assert.Zero(t, g.Window()[i])
		assert.Zero(t, g.Opaque()[i])
	}
}

func TestOrientationBuckets(t *testing.T) {
	assert.Equal(t, OrientationNorth, bucket_of(0.0, 90.0))
	assert.Equal(t, OrientationNorth, bucket_of(350.0, 90.0))
	assert.Equal(t, OrientationEast, bucket_of(90.0, 90.0))
	assert.Equal(t, OrientationSouth, bucket_of(180.0, 90.0))
	assert.Equal(t, OrientationWest, bucket_of(270.0, 90.0))
	assert.Equal(t, OrientationHorizontal, bucket_of(180.0, 10.0))
	assert.Equal(t, OrientationSouth, bucket_of(-180.0, 90.0))
}

func TestSolarPositionAboveHorizonAtNoon(t *testing.T) {
	w := clear_sky_weather(t)

	h_sun_ns, a_sun_ns := calc_solar_position(52.0*degToRad, 0.0, default_time_meridian(0.0), w)

	// June solstice at 52 N: high sun around noon, below horizon at 0 h
	assert.Greater(t, h_sun_ns[12], 50.0*degToRad)
	assert.Less(t, h_sun_ns[0], 0.0)

	// azimuth near south (zero) at solar noon
	assert.InDelta(t, 0.0, a_sun_ns[12], 15.0*degToRad)
}
