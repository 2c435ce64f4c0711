// Package geodesy implements reference-ellipsoid geometry: geodetic and
// Earth-centered-fixed coordinate conversions, ellipsoid ray intersection,
// and the geodesic inverse problem (delegated to a Karney solver).
//
// Angles are radians and distances are metres unless a function says
// otherwise. Degree-friendly constructors are provided for callers working
// with unit-tagged angles.
package geodesy

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidParameter is the base error for all constructor-time
	// validation failures in this package.
	ErrInvalidParameter = errors.New("invalid parameter")
)

// Ellipsoid holds the defining parameters of a reference ellipsoid and the
// derived constants used throughout the conversion math. Values are computed
// once at construction and never mutated; Ellipsoid is a comparable value
// type.
type Ellipsoid struct {
	// A is the semi-major axis in metres.
	A float64
	// F is the flattening.
	F float64
	// B is the semi-minor axis, a(1-f).
	B float64
	// E2 is the first eccentricity squared, f(2-f).
	E2 float64
	// EP2 is the second eccentricity squared, e2/(1-e2).
	EP2 float64
}

// WGS84 is the standard WGS-84 reference ellipsoid.
var WGS84 = mustEllipsoid(6378137.0, 1.0/298.257223563)

// NewEllipsoid derives an Ellipsoid from semi-major axis a (metres) and
// flattening f. It fails when the parameters do not describe a valid
// oblate (or spherical) ellipsoid.
func NewEllipsoid(a, f float64) (Ellipsoid, error) {
	if a <= 0 {
		return Ellipsoid{}, fmt.Errorf("%w: semi-major axis %v must be positive", ErrInvalidParameter, a)
	}
	if f < 0 || f >= 1 {
		return Ellipsoid{}, fmt.Errorf("%w: flattening %v must be in [0,1)", ErrInvalidParameter, f)
	}
	e2 := f * (2 - f)
	return Ellipsoid{
		A:   a,
		F:   f,
		B:   a * (1 - f),
		E2:  e2,
		EP2: e2 / (1 - e2),
	}, nil
}

func mustEllipsoid(a, f float64) Ellipsoid {
	e, err := NewEllipsoid(a, f)
	if err != nil {
		panic(err)
	}
	return e
}

// primeVerticalRadius returns N, the radius of curvature in the prime
// vertical at the given geodetic latitude.
func (e Ellipsoid) primeVerticalRadius(lat float64) float64 {
	s := math.Sin(lat)
	return e.A / math.Sqrt(1-e.E2*s*s)
}
