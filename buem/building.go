package buem

import (
	"encoding/json"
	"os"
)

// Thermal mass class of the construction.
type ThermalMassClass int

const (
	ThermalMassVeryLight ThermalMassClass = iota
	ThermalMassLight
	ThermalMassMedium
	ThermalMassHeavy
	ThermalMassVeryHeavy
)

func (c ThermalMassClass) String() string {
	return [...]string{"very_light", "light", "medium", "heavy", "very_heavy"}[c]
}

func ThermalMassClassFromString(s string) ThermalMassClass {
	return map[string]ThermalMassClass{
		"very_light": ThermalMassVeryLight,
		"light":      ThermalMassLight,
		"medium":     ThermalMassMedium,
		"heavy":      ThermalMassHeavy,
		"very_heavy": ThermalMassVeryHeavy,
	}[s]
}

/*
Areal heat capacity of the thermal mass class.

Returns:

	heat capacity per effective floor area, J/(m2 K)

Notes:

	Class-midpoint values of the DIN EN ISO 13790 table
	(section 12.3.1.2, table 12), kJ/(m2 K) converted to J/(m2 K).
*/
func (c ThermalMassClass) c_m_per_a_f() float64 {
	return [...]float64{47.5e3, 116.25e3, 175.0e3, 263.0e3, 470.25e3}[c]
}

/*
Effective mass area factor f_Am of the thermal mass class.

Notes:

	A_m = f_Am * A_f (DIN EN ISO 13790, section 12.3.1.2, table 12).
*/
func (c ThermalMassClass) f_a_m() float64 {
	return [...]float64{2.5, 2.5, 2.5, 3.0, 3.5}[c]
}

//---------------------------------------------------------------------------------------------------//

// Component type of an envelope component group.
type ComponentType int

const (
	ComponentWalls ComponentType = iota
	ComponentRoof
	ComponentFloor
	ComponentWindows
	ComponentDoors
	ComponentVentilation
)

func (t ComponentType) String() string {
	return [...]string{"walls", "roof", "floor", "windows", "doors", "ventilation"}[t]
}

func ComponentTypeFromString(s string) ComponentType {
	return map[string]ComponentType{
		"walls":       ComponentWalls,
		"roof":        ComponentRoof,
		"floor":       ComponentFloor,
		"windows":     ComponentWindows,
		"doors":       ComponentDoors,
		"ventilation": ComponentVentilation,
	}[s]
}

// is_opaque reports whether the component type contributes opaque
// transmission (as opposed to glazing or air exchange).
func (t ComponentType) is_opaque() bool {
	return t == ComponentWalls || t == ComponentRoof || t == ComponentFloor || t == ComponentDoors
}

//---------------------------------------------------------------------------------------------------//

// Element is one oriented member of a component group.
type Element struct {
	ID         string  `json:"id"`
	Area       float64 `json:"area"`                  // m2
	Azimuth    float64 `json:"azimuth"`               // degree, 0 = north, clockwise
	Tilt       float64 `json:"tilt"`                  // degree, 0 = horizontal
	GValue     float64 `json:"g_value,omitempty"`     // window solar heat gain coefficient; 0 uses the component default
	SurfaceRef string  `json:"surface,omitempty"`     // parent wall element id for windows
	AirChanges float64 `json:"air_changes,omitempty"` // 1/h, ventilation elements only
}

// Component is one envelope component group: shared properties plus its
// oriented elements.
type Component struct {
	Type         string    `json:"type"`
	UValue       float64   `json:"u_value"`                 // W/(m2 K)
	BAdjustment  float64   `json:"b_adjustment,omitempty"`  // exposure adjustment, 1.0 = fully exposed to outdoor
	GValueShared float64   `json:"g_value,omitempty"`       // default window g; per-element value wins
	ShadingRatio float64   `json:"shading_ratio,omitempty"` // external shading reduction, 0 = unshaded
	Elements     []Element `json:"elements"`
}

// BuildingDefinition is the typed building input consumed by the envelope
// aggregator and the solar gain calculation.
type BuildingDefinition struct {
	ID               string      `json:"id"`
	Latitude         float64     `json:"latitude"`  // degree, north positive
	Longitude        float64     `json:"longitude"` // degree, east positive
	FloorArea        float64     `json:"floor_area"` // effective (heated) floor area A_f, m2
	RoomHeight       float64     `json:"room_height"` // mean room height, m
	ThermalMassClass string      `json:"thermal_mass_class"`
	Components       []Component `json:"components"`
}

/*
Load a building definition from a JSON file.

Args:

	path: path of the building definition JSON file

Returns:

	BuildingDefinition
*/
func LoadBuildingFile(path string) (*BuildingDefinition, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var bd BuildingDefinition
	if err := json.Unmarshal(bytes, &bd); err != nil {
		return nil, err
	}
	return &bd, nil
}

// Volume returns the ventilated air volume, m3.
func (bd *BuildingDefinition) Volume() float64 {
	return bd.FloorArea * bd.RoomHeight
}
