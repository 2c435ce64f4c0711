package frames

import (
	"fmt"
	"math"

	"github.com/signalsfoundry/satview/geodesy"
)

// ERA is a target as seen from a local observer frame: elevation above the
// horizon and azimuth in radians, slant range in metres. Construct with
// NewERA to enforce the bounds; transform outputs may carry out-of-range
// elevations for targets below the horizon.
type ERA struct {
	El float64
	R  float64
	Az float64
}

// NewERA validates elevation against [0, pi/2] and range against r >= 0,
// and normalizes azimuth to (-pi, pi].
func NewERA(el, r, az float64) (ERA, error) {
	if el < 0 || el > math.Pi/2 {
		return ERA{}, fmt.Errorf("%w: elevation %v rad outside [0, pi/2]", geodesy.ErrInvalidParameter, el)
	}
	if r < 0 {
		return ERA{}, fmt.Errorf("%w: range %v must be non-negative", geodesy.ErrInvalidParameter, r)
	}
	return ERA{El: el, R: r, Az: geodesy.NormalizeLon(az)}, nil
}

// localToSpherical converts a local tangent vector to elevation, range and
// azimuth. The zero vector maps to the zenith at zero range.
func localToSpherical(v geodesy.Vec3) ERA {
	r := v.Norm()
	theta := 0.0
	if r > 0 {
		theta = math.Acos(v.Z / r)
	}
	return ERA{
		El: math.Pi/2 - theta,
		R:  r,
		Az: math.Atan2(v.Y, v.X),
	}
}

// sphericalToLocal converts elevation, range and azimuth back to a local
// tangent vector.
func sphericalToLocal(e ERA) geodesy.Vec3 {
	sTheta, cTheta := math.Sincos(math.Pi/2 - e.El)
	sAz, cAz := math.Sincos(e.Az)
	return geodesy.Vec3{
		X: e.R * sTheta * cAz,
		Y: e.R * sTheta * sAz,
		Z: e.R * cTheta,
	}
}

// ERAFromECEF maps ECEF points to elevation/range/azimuth as seen by an
// observer at a fixed origin: the composition of the ECEF-to-local-tangent
// transform with the cartesian-to-spherical change of coordinates.
type ERAFromECEF struct {
	enu ENUFromECEF
}

// NewERAFromECEF builds the observer-view transform for the given site.
func NewERAFromECEF(origin geodesy.LLA, ell geodesy.Ellipsoid) ERAFromECEF {
	return ERAFromECEF{enu: NewENUFromECEF(origin, ell)}
}

// Forward maps an ECEF point to its elevation/range/azimuth.
func (f ERAFromECEF) Forward(ecef geodesy.Vec3) ERA {
	return localToSpherical(f.enu.Forward(ecef))
}

// Inverse returns the paired ERA-to-ECEF transform.
func (f ERAFromECEF) Inverse() ECEFFromERA {
	return ECEFFromERA{enu: f.enu.Inverse()}
}

// ECEFFromERA maps observer-frame elevation/range/azimuth back to ECEF.
type ECEFFromERA struct {
	enu ECEFFromENU
}

// NewECEFFromERA builds the reverse observer-view transform for the given
// site.
func NewECEFFromERA(origin geodesy.LLA, ell geodesy.Ellipsoid) ECEFFromERA {
	return NewERAFromECEF(origin, ell).Inverse()
}

// Forward maps elevation/range/azimuth to an ECEF point.
func (f ECEFFromERA) Forward(e ERA) geodesy.Vec3 {
	return f.enu.Forward(sphericalToLocal(e))
}

// Inverse returns the paired ECEF-to-ERA transform.
func (f ECEFFromERA) Inverse() ERAFromECEF {
	return ERAFromECEF{enu: f.enu.Inverse()}
}
