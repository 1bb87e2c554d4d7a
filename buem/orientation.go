package buem

import "math"

// degree to radian conversion factor
const degToRad = math.Pi / 180.0

// Orientation bucket of a surface. Apertures and the window-vs-wall area
// check are aggregated per bucket; the solar calculation itself uses the
// continuous azimuth and tilt of each surface.
type OrientationBucket int

const (
	OrientationNorth OrientationBucket = iota
	OrientationEast
	OrientationSouth
	OrientationWest
	OrientationHorizontal
)

func (o OrientationBucket) String() string {
	return [...]string{"north", "east", "south", "west", "horizontal"}[o]
}

func OrientationBucketFromString(s string) OrientationBucket {
	return map[string]OrientationBucket{
		"north":      OrientationNorth,
		"east":       OrientationEast,
		"south":      OrientationSouth,
		"west":       OrientationWest,
		"horizontal": OrientationHorizontal,
	}[s]
}

// AllOrientationBuckets lists the buckets in a stable order.
var AllOrientationBuckets = []OrientationBucket{
	OrientationNorth, OrientationEast, OrientationSouth, OrientationWest, OrientationHorizontal,
}

/*
Determine the orientation bucket of a surface.

Args:

	azimuth_deg: surface azimuth, degree, 0 = north, clockwise
	tilt_deg: surface tilt, degree, 0 = horizontal

Returns:

	orientation bucket

Notes:

	Surfaces tilted less than 45 degrees from horizontal count as
	horizontal regardless of azimuth (roofs, floors, skylights).
*/
func bucket_of(azimuth_deg, tilt_deg float64) OrientationBucket {
	if tilt_deg < 45.0 {
		return OrientationHorizontal
	}
	az := math.Mod(azimuth_deg, 360.0)
	if az < 0 {
		az += 360.0
	}
	switch {
	case az < 45.0 || az >= 315.0:
		return OrientationNorth
	case az < 135.0:
		return OrientationEast
	case az < 225.0:
		return OrientationSouth
	default:
		return OrientationWest
	}
}

// OrientedSurface is one physical element exposed to the sun. It is built
// once from the component definitions and never mutated afterwards.
type OrientedSurface struct {
	id         string
	area       float64 // m2
	azimuth    float64 // degree, 0 = north, clockwise
	tilt       float64 // degree, 0 = horizontal
	g_value    float64 // solar transmittance for windows, absorptance share for opaque
	alpha_w_j  float64 // surface azimuth measured from south, rad
	beta_w_j   float64 // surface tilt, rad
	bucket     OrientationBucket
	is_glazing bool
}

/*
Construct an oriented surface.

Args:

	id: element identifier
	area: element area, m2
	azimuth_deg: azimuth, degree, 0 = north, clockwise
	tilt_deg: tilt, degree, 0 = horizontal, 90 = vertical
	g_value: solar transmittance (windows) or absorptance factor (opaque)
	is_glazing: true for window elements

Notes:

	The solar position series measures azimuth from south
	(atan2 convention), so the 0 = north input convention is converted
	here, once, at construction.
*/
func NewOrientedSurface(id string, area, azimuth_deg, tilt_deg, g_value float64, is_glazing bool) OrientedSurface {
	return OrientedSurface{
		id:         id,
		area:       area,
		azimuth:    azimuth_deg,
		tilt:       tilt_deg,
		g_value:    g_value,
		alpha_w_j:  (azimuth_deg - 180.0) * math.Pi / 180.0,
		beta_w_j:   tilt_deg * math.Pi / 180.0,
		bucket:     bucket_of(azimuth_deg, tilt_deg),
		is_glazing: is_glazing,
	}
}

// ID returns the element identifier.
func (s OrientedSurface) ID() string { return s.id }

// Area returns the element area, m2.
func (s OrientedSurface) Area() float64 { return s.area }

// Bucket returns the orientation bucket of the element.
func (s OrientedSurface) Bucket() OrientationBucket { return s.bucket }

// Aperture returns the g-weighted solar aperture, m2 equivalent.
func (s OrientedSurface) Aperture() float64 { return s.area * s.g_value }
