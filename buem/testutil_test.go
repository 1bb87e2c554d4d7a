package buem

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var test_start = time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

// constant_weather builds n hours of constant outdoor temperature with no
// irradiance.
func constant_weather(t *testing.T, n int, theta_o float64) *WeatherSeries {
	t.Helper()
	theta_o_ns := make([]float64, n)
	for i := range theta_o_ns {
		theta_o_ns[i] = theta_o
	}
	w, err := NewWeatherSeries(test_start, theta_o_ns, make([]float64, n), make([]float64, n), make([]float64, n))
	require.NoError(t, err)
	return w
}

// reference_envelope builds the lumped reference case: H_tr 150, H_win 50,
// H_ve 30 W/K, C_m 5 MJ/K, 100 m2 floor.
func reference_envelope(t *testing.T) *BuildingEnvelope {
	t.Helper()
	e, err := NewEnvelopeFromParameters("ref", 150.0, 50.0, 30.0, 5.0e6, 100.0)
	require.NoError(t, err)
	return e
}

// zero_solar returns an all-zero solar gain series of n steps.
func zero_solar(n int) *SolarGains {
	g := &SolarGains{
		q_sol_win_ns:    make([]float64, n),
		q_sol_opq_ns:    make([]float64, n),
		q_sol_bucket_ns: make(map[OrientationBucket][]float64),
	}
	for _, b := range AllOrientationBuckets {
		g.q_sol_bucket_ns[b] = make([]float64, n)
	}
	return g
}

// simple_building returns a small but complete building definition with one
// window per facade orientation requested.
func simple_building(id string) *BuildingDefinition {
	return &BuildingDefinition{
		ID:               id,
		Latitude:         52.0,
		Longitude:        0.0,
		FloorArea:        50.0,
		RoomHeight:       2.5,
		ThermalMassClass: "medium",
		Components: []Component{
			{
				Type:   "walls",
				UValue: 0.3,
				Elements: []Element{
					{ID: "wall-s", Area: 20.0, Azimuth: 180.0, Tilt: 90.0},
					{ID: "wall-n", Area: 20.0, Azimuth: 0.0, Tilt: 90.0},
					{ID: "wall-e", Area: 15.0, Azimuth: 90.0, Tilt: 90.0},
					{ID: "wall-w", Area: 15.0, Azimuth: 270.0, Tilt: 90.0},
				},
			},
			{
				Type:   "roof",
				UValue: 0.2,
				Elements: []Element{
					{ID: "roof", Area: 50.0, Azimuth: 0.0, Tilt: 0.0},
				},
			},
			{
				Type:        "floor",
				UValue:      0.25,
				BAdjustment: 0.5,
				Elements: []Element{
					{ID: "floor", Area: 50.0, Azimuth: 0.0, Tilt: 180.0},
				},
			},
			{
				Type:         "windows",
				UValue:       1.3,
				GValueShared: 0.6,
				Elements: []Element{
					{ID: "win-s", Area: 4.0, SurfaceRef: "wall-s"},
					{ID: "win-n", Area: 4.0, SurfaceRef: "wall-n"},
				},
			},
			{
				Type: "ventilation",
				Elements: []Element{
					{ID: "vent", AirChanges: 0.5},
				},
			},
		},
	}
}
