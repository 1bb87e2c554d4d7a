package buem

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelopeAggregation(t *testing.T) {
	bd := simple_building("b1")
	e, err := NewBuildingEnvelope(bd)
	require.NoError(t, err)

	// walls 70 m2 * 0.3 + roof 50 * 0.2 + floor 50 * 0.25 * 0.5
	assert.InDelta(t, 70.0*0.3+50.0*0.2+50.0*0.25*0.5, e.HTr(), 1e-9)

	// two windows of 4 m2 at U 1.3
	assert.InDelta(t, 8.0*1.3, e.HWin(), 1e-9)
	assert.InDelta(t, 8.0, e.TotalWindowArea(), 1e-9)

	// 0.5 1/h over 125 m3
	assert.InDelta(t, 0.5*125.0*rho_air*c_air/3600.0, e.HVe(), 1e-9)

	// medium mass class
	assert.InDelta(t, 175.0e3*50.0, e.CM(), 1e-6)

	// windows inherit the parent wall orientation
	assert.InDelta(t, 4.0*0.6, e.Aperture(OrientationSouth), 1e-9)
	assert.InDelta(t, 4.0*0.6, e.Aperture(OrientationNorth), 1e-9)
	assert.Zero(t, e.Aperture(OrientationEast))
}

func TestEnvelopeCouplingsArePositive(t *testing.T) {
	e, err := NewBuildingEnvelope(simple_building("b1"))
	require.NoError(t, err)

	assert.Greater(t, e.h_is, 0.0)
	assert.Greater(t, e.h_ms, 0.0)
	assert.Greater(t, e.h_em, 0.0)
}

func TestEnvelopeSeriesPathEqualsOpaqueConductance(t *testing.T) {
	e := reference_envelope(t)

	h_opq := 1.0 / (1.0/e.h_is + 1.0/e.h_ms + 1.0/e.h_em)
	assert.InDelta(t, e.HTr(), h_opq, 1e-9)
}

func TestEnvelopeValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(bd *BuildingDefinition)
	}{
		{"zero floor area", func(bd *BuildingDefinition) { bd.FloorArea = 0.0 }},
		{"negative room height", func(bd *BuildingDefinition) { bd.RoomHeight = -2.5 }},
		{"unknown component type", func(bd *BuildingDefinition) { bd.Components[0].Type = "fence" }},
		{"non-positive u-value", func(bd *BuildingDefinition) { bd.Components[0].UValue = 0.0 }},
		{"non-positive area", func(bd *BuildingDefinition) { bd.Components[0].Elements[0].Area = -1.0 }},
		{"tilt out of range", func(bd *BuildingDefinition) { bd.Components[0].Elements[0].Tilt = 200.0 }},
		{"dangling window surface", func(bd *BuildingDefinition) { bd.Components[3].Elements[0].SurfaceRef = "nope" }},
		{"g-value above one", func(bd *BuildingDefinition) { bd.Components[3].GValueShared = 1.2 }},
		{"negative air changes", func(bd *BuildingDefinition) { bd.Components[4].Elements[0].AirChanges = -0.5 }},
		{"unknown mass class", func(bd *BuildingDefinition) { bd.ThermalMassClass = "granite" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bd := simple_building("b1")
			tc.mutate(bd)

			_, err := NewBuildingEnvelope(bd)
			require.Error(t, err)

			var cfg_err *ConfigurationError
			assert.ErrorAs(t, err, &cfg_err)
			assert.Equal(t, "b1", cfg_err.Building)
		})
	}
}

func TestEnvelopeRejectsWindowLargerThanWall(t *testing.T) {
	bd := simple_building("b1")
	bd.Components[3].Elements[0].Area = 25.0 // south wall is 20 m2

	_, err := NewBuildingEnvelope(bd)
	var cfg_err *ConfigurationError
	require.ErrorAs(t, err, &cfg_err)
	assert.Equal(t, "south", cfg_err.Component)
}

func TestEnvelopeRejectsUnrepresentableOpaqueConductance(t *testing.T) {
	// H_tr above the series limit of H_is and H_ms for a 10 m2 floor
	_, err := NewEnvelopeFromParameters("tiny", 500.0, 10.0, 5.0, 1.0e6, 10.0)

	var cfg_err *ConfigurationError
	require.ErrorAs(t, err, &cfg_err)
}

func TestEnvelopeRandomizedConductances(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		a_f := 20.0 + rng.Float64()*480.0
		h_tr := 10.0 + rng.Float64()*300.0
		h_win := rng.Float64() * 150.0
		h_ve := rng.Float64() * 100.0
		c_m := (50.0e3 + rng.Float64()*400.0e3) * a_f

		e, err := NewEnvelopeFromParameters("rand", h_tr, h_win, h_ve, c_m, a_f)
		if err != nil {
			// representability limit hit for a small floor, legitimate
			var cfg_err *ConfigurationError
			require.ErrorAs(t, err, &cfg_err)
			continue
		}

		assert.Greater(t, e.h_is, 0.0)
		assert.Greater(t, e.h_ms, 0.0)
		assert.Greater(t, e.h_em, 0.0)

		nw := NewThermalNetwork(e)
		assert.InDelta(t, h_tr+h_win+h_ve, nw.SteadyStateLossCoefficient(), 1e-6)
	}
}
