package buem

import "math"

// Physical constants of the lumped network parameterization.
const (
	// specific heat transfer coefficient between internal air and surface, W/(m2 K)
	// (DIN EN ISO 13790, section 7.2.2.2)
	h_is_spec = 3.45

	// ratio of total indoor surface area to effective floor area, -
	// (DIN EN ISO 13790, section 7.2.2.2)
	lambda_at = 4.5

	// specific heat transfer coefficient between surface and thermal mass, W/(m2 K)
	// (DIN EN ISO 13790, section 12.2.2)
	h_ms_spec = 9.1

	// density of air, kg/m3
	rho_air = 1.2

	// specific heat capacity of air, J/(kg K)
	c_air = 1006.0
)

// BuildingEnvelope holds the aggregated lumped thermal parameters of one
// building. It is immutable once constructed.
type BuildingEnvelope struct {
	building string

	latitude  float64 // site latitude, degree, north positive
	longitude float64 // site longitude, degree, east positive

	h_tr  float64 // opaque transmission conductance, W/K
	h_win float64 // window transmission conductance, W/K
	h_ve  float64 // ventilation/infiltration conductance, W/K
	c_m   float64 // thermal capacitance, J/K

	h_is float64 // air-surface coupling conductance, W/K
	h_ms float64 // surface-mass coupling conductance, W/K
	h_em float64 // mass-outdoor coupling conductance, W/K

	a_f float64 // effective floor area, m2

	apertures  map[OrientationBucket]float64 // g-weighted window aperture, m2 equivalent
	glazing    []OrientedSurface             // window elements (transmitted solar)
	opaque_sun []OrientedSurface             // wall/roof elements (absorbed solar)

	total_window_area float64 // m2
}

// Building returns the building identifier.
func (e *BuildingEnvelope) Building() string { return e.building }

// HTr returns the opaque transmission conductance, W/K.
func (e *BuildingEnvelope) HTr() float64 { return e.h_tr }

// HWin returns the window conductance, W/K.
func (e *BuildingEnvelope) HWin() float64 { return e.h_win }

// HVe returns the ventilation conductance, W/K.
func (e *BuildingEnvelope) HVe() float64 { return e.h_ve }

// CM returns the thermal capacitance, J/K.
func (e *BuildingEnvelope) CM() float64 { return e.c_m }

// FloorArea returns the effective floor area, m2.
func (e *BuildingEnvelope) FloorArea() float64 { return e.a_f }

// Aperture returns the g-weighted window aperture of a bucket, m2 equivalent.
func (e *BuildingEnvelope) Aperture(b OrientationBucket) float64 { return e.apertures[b] }

// TotalWindowArea returns the declared window area, m2.
func (e *BuildingEnvelope) TotalWindowArea() float64 { return e.total_window_area }

// Latitude returns the site latitude, degree, north positive.
func (e *BuildingEnvelope) Latitude() float64 { return e.latitude }

// Longitude returns the site longitude, degree, east positive.
func (e *BuildingEnvelope) Longitude() float64 { return e.longitude }

/*
Aggregate a building definition into the lumped envelope parameters.

Args:

	bd: typed building definition (component tree)

Returns:

	BuildingEnvelope

Notes:

	Opaque components contribute U * area * b_adjustment to H_tr.
	Windows contribute U * area to H_win and area * g to the aperture of
	their orientation bucket. Ventilation elements contribute
	air_changes * volume * rho_air * c_air / 3600 to H_ve.
	The capacitance follows the thermal mass class table and A_f.
	All validation happens here; the simulation never re-checks.
*/
func NewBuildingEnvelope(bd *BuildingDefinition) (*BuildingEnvelope, error) {
	if bd.FloorArea <= 0.0 {
		return nil, newConfigurationError(bd.ID, "", "floor area must be positive, got %v", bd.FloorArea)
	}
	if bd.RoomHeight <= 0.0 {
		return nil, newConfigurationError(bd.ID, "", "room height must be positive, got %v", bd.RoomHeight)
	}

	e := &BuildingEnvelope{
		building:  bd.ID,
		latitude:  bd.Latitude,
		longitude: bd.Longitude,
		a_f:       bd.FloorArea,
		apertures: make(map[OrientationBucket]float64),
	}

	// wall/roof area per bucket, used by the window-vs-wall check and as
	// parent surfaces for window elements
	wall_area := make(map[OrientationBucket]float64)
	window_area := make(map[OrientationBucket]float64)
	walls_by_id := make(map[string]Element)

	for _, comp := range bd.Components {
		ct := ComponentTypeFromString(comp.Type)
		if comp.Type != ct.String() {
			return nil, newConfigurationError(bd.ID, comp.Type, "unknown component type %q", comp.Type)
		}
		if ct != ComponentVentilation && comp.UValue <= 0.0 {
			return nil, newConfigurationError(bd.ID, comp.Type, "U-value must be positive, got %v", comp.UValue)
		}
		if ct == ComponentWalls {
			for _, el := range comp.Elements {
				walls_by_id[el.ID] = el
			}
		}
	}

	for _, comp := range bd.Components {
		ct := ComponentTypeFromString(comp.Type)

		b_adj := comp.BAdjustment
		if b_adj == 0.0 {
			b_adj = 1.0
		}

		for _, el := range comp.Elements {
			if ct != ComponentVentilation && el.Area <= 0.0 {
				return nil, newConfigurationError(bd.ID, el.ID, "area must be positive, got %v", el.Area)
			}
			if el.Tilt < 0.0 || el.Tilt > 180.0 {
				return nil, newConfigurationError(bd.ID, el.ID, "tilt must be within [0, 180] degrees, got %v", el.Tilt)
			}

			switch {
			case ct.is_opaque():
				e.h_tr += comp.UValue * el.Area * b_adj

				// doors and floors receive no solar irradiance in this model
				if ct == ComponentWalls || ct == ComponentRoof {
					e.opaque_sun = append(e.opaque_sun,
						NewOrientedSurface(el.ID, el.Area, el.Azimuth, el.Tilt, alpha_opaque*(1.0-comp.ShadingRatio), false))
				}
				if ct == ComponentWalls {
					wall_area[bucket_of(el.Azimuth, el.Tilt)] += el.Area
				}
				if ct == ComponentRoof {
					wall_area[OrientationHorizontal] += el.Area
				}

			case ct == ComponentWindows:
				azimuth, tilt := el.Azimuth, el.Tilt
				if el.SurfaceRef != "" {
					parent, ok := walls_by_id[el.SurfaceRef]
					if !ok {
						return nil, newConfigurationError(bd.ID, el.ID,
							"window references unknown parent surface %q", el.SurfaceRef)
					}
					azimuth, tilt = parent.Azimuth, parent.Tilt
				}

				g := el.GValue
				if g == 0.0 {
					g = comp.GValueShared
				}
				if g < 0.0 || g > 1.0 {
					return nil, newConfigurationError(bd.ID, el.ID, "window g-value must be within [0, 1], got %v", g)
				}

				s := NewOrientedSurface(el.ID, el.Area, azimuth, tilt, g*(1.0-comp.ShadingRatio), true)
				e.h_win += comp.UValue * el.Area * b_adj
				e.apertures[s.Bucket()] += s.Aperture()
				window_area[s.Bucket()] += el.Area
				e.total_window_area += el.Area
				e.glazing = append(e.glazing, s)

			case ct == ComponentVentilation:
				if el.AirChanges < 0.0 {
					return nil, newConfigurationError(bd.ID, el.ID, "air change rate must be non-negative, got %v", el.AirChanges)
				}
				e.h_ve += el.AirChanges * bd.Volume() * rho_air * c_air / 3600.0
			}
		}
	}

	// windows cannot exceed the facade they are cut into
	for _, b := range AllOrientationBuckets {
		if window_area[b] > wall_area[b] {
			return nil, newConfigurationError(bd.ID, b.String(),
				"window area %.2f m2 exceeds wall area %.2f m2 for orientation %s",
				window_area[b], wall_area[b], b)
		}
	}

	cls := ThermalMassClassFromString(bd.ThermalMassClass)
	if bd.ThermalMassClass != cls.String() {
		return nil, newConfigurationError(bd.ID, "", "unknown thermal mass class %q", bd.ThermalMassClass)
	}
	e.c_m = cls.c_m_per_a_f() * bd.FloorArea

	if err := e.derive_couplings(cls.f_a_m()); err != nil {
		return nil, err
	}
	return e, nil
}

/*
Construct an envelope directly from lumped parameters.

Args:

	building: building identifier
	h_tr: opaque transmission conductance, W/K
	h_win: window conductance, W/K
	h_ve: ventilation conductance, W/K
	c_m: thermal capacitance, J/K
	a_f: effective floor area, m2

Notes:

	Used when the lumped parameters are already known (archetype tables,
	calibration results). No solar surfaces are attached; solar gains for
	such an envelope come only from the aperture buckets, which are empty.
*/
func NewEnvelopeFromParameters(building string, h_tr, h_win, h_ve, c_m, a_f float64) (*BuildingEnvelope, error) {
	e := &BuildingEnvelope{
		building:  building,
		h_tr:      h_tr,
		h_win:     h_win,
		h_ve:      h_ve,
		c_m:       c_m,
		a_f:       a_f,
		apertures: make(map[OrientationBucket]float64),
	}
	if a_f <= 0.0 {
		return nil, newConfigurationError(building, "", "floor area must be positive, got %v", a_f)
	}
	if err := e.derive_couplings(ThermalMassMedium.f_a_m()); err != nil {
		return nil, err
	}
	return e, nil
}

/*
Derive the internal coupling conductances of the 5R1C network.

Args:

	f_a_m: effective mass area factor of the thermal mass class, -

Notes:

	H_is = h_is * lambda_at * A_f, H_ms = h_ms * f_Am * A_f.
	H_em is corrected so that the series path H_is - H_ms - H_em equals
	the declared opaque transmission H_tr exactly:
	    1/H_em = 1/H_tr - 1/H_ms - 1/H_is
	which keeps the steady-state loss coefficient at H_tr + H_win + H_ve.
	An H_tr at or above the series limit of H_is and H_ms cannot be
	represented and is rejected.
*/
func (e *BuildingEnvelope) derive_couplings(f_a_m float64) error {
	if e.h_tr <= 0.0 {
		return newConfigurationError(e.building, "", "opaque transmission conductance must be positive, got %v", e.h_tr)
	}
	if e.h_win < 0.0 {
		return newConfigurationError(e.building, "", "window conductance must be non-negative, got %v", e.h_win)
	}
	if e.h_ve < 0.0 {
		return newConfigurationError(e.building, "", "ventilation conductance must be non-negative, got %v", e.h_ve)
	}
	if e.c_m <= 0.0 {
		return newConfigurationError(e.building, "", "thermal capacitance must be positive, got %v", e.c_m)
	}

	e.h_is = h_is_spec * lambda_at * e.a_f
	e.h_ms = h_ms_spec * f_a_m * e.a_f

	inv := 1.0/e.h_tr - 1.0/e.h_ms - 1.0/e.h_is
	if inv <= 0.0 {
		limit := 1.0 / (1.0/e.h_ms + 1.0/e.h_is)
		return newConfigurationError(e.building, "",
			"opaque conductance %.1f W/K exceeds the internal coupling limit %.1f W/K for floor area %.1f m2",
			e.h_tr, limit, e.a_f)
	}
	e.h_em = 1.0 / inv

	if math.IsInf(e.h_em, 0) || math.IsNaN(e.h_em) {
		return newConfigurationError(e.building, "", "derived mass-outdoor conductance is not finite")
	}
	return nil
}
