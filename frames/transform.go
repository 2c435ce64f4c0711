package frames

import (
	"github.com/gonum/matrix/mat64"

	"github.com/signalsfoundry/satview/geodesy"
)

// originTransform carries the shared state of every frame pair: the ECEF
// origin of the destination frame, the forward rotation and its transpose,
// and the reference ellipsoid. Directional transform types embed it and
// differ only in which closed-form forward function applies.
type originTransform struct {
	origin geodesy.Vec3
	rot    *mat64.Dense
	inv    *mat64.Dense
	ell    geodesy.Ellipsoid
}

func newOriginTransform(origin geodesy.LLA, ell geodesy.Ellipsoid, rot *mat64.Dense) originTransform {
	return originTransform{
		origin: ell.GeodeticToECEF(origin),
		rot:    rot,
		inv:    transpose(rot),
		ell:    ell,
	}
}

// ENUFromECEF maps ECEF points into the local tangent (east-north-up)
// frame at a fixed origin.
type ENUFromECEF struct {
	t originTransform
}

// NewENUFromECEF builds the ECEF-to-local-tangent transform for an
// observer at origin.
func NewENUFromECEF(origin geodesy.LLA, ell geodesy.Ellipsoid) ENUFromECEF {
	rot := RotationENUFromECEF(origin.Lat, origin.Lon)
	return ENUFromECEF{t: newOriginTransform(origin, ell, rot)}
}

// Forward maps an ECEF point into the local tangent frame.
func (f ENUFromECEF) Forward(ecef geodesy.Vec3) geodesy.Vec3 {
	return mulVec(f.t.rot, ecef.Sub(f.t.origin))
}

// Inverse returns the paired local-tangent-to-ECEF transform.
func (f ENUFromECEF) Inverse() ECEFFromENU {
	return ECEFFromENU{t: f.t}
}

// ECEFFromENU maps local tangent frame points back to ECEF.
type ECEFFromENU struct {
	t originTransform
}

// NewECEFFromENU builds the local-tangent-to-ECEF transform for an
// observer at origin.
func NewECEFFromENU(origin geodesy.LLA, ell geodesy.Ellipsoid) ECEFFromENU {
	return NewENUFromECEF(origin, ell).Inverse()
}

// Forward maps a local tangent point to ECEF.
func (f ECEFFromENU) Forward(local geodesy.Vec3) geodesy.Vec3 {
	return mulVec(f.t.inv, local).Add(f.t.origin)
}

// Inverse returns the paired ECEF-to-local-tangent transform.
func (f ECEFFromENU) Inverse() ENUFromECEF {
	return ENUFromECEF{t: f.t}
}
