// Package frames builds the rotation matrices and origin transforms that
// relate ECEF to observer- and satellite-centric coordinate frames: the
// local tangent (ENU) frame, its spherical elevation/range/azimuth view,
// and the satellite sensor-plane UV frame.
//
// Every transform is a pure value holding an ECEF origin, an orthonormal
// rotation, and the reference ellipsoid; forward and reverse directions are
// distinct types paired through Inverse().
package frames

import (
	"math"

	"github.com/gonum/matrix/mat64"

	"github.com/signalsfoundry/satview/geodesy"
)

// RotationENUFromECEF returns the 3x3 rotation aligning ECEF axes with the
// local tangent frame at the given reference latitude/longitude (radians).
func RotationENUFromECEF(lat, lon float64) *mat64.Dense {
	sLat, cLat := math.Sincos(lat)
	sLon, cLon := math.Sincos(lon)
	return mat64.NewDense(3, 3, []float64{
		-sLat, cLat, 0,
		-sLon * cLat, -sLon * sLat, cLon,
		cLon * cLat, cLon * sLat, sLon,
	})
}

// RotationECEFFromUV returns the 3x3 rotation taking satellite sensor-plane
// axes into ECEF for a satellite whose sub-satellite point is at the given
// latitude/longitude (radians). The third sensor axis points toward nadir.
func RotationECEFFromUV(lat, lon float64) *mat64.Dense {
	sLat, cLat := math.Sincos(lat)
	sLon, cLon := math.Sincos(lon)
	return mat64.NewDense(3, 3, []float64{
		sLon, -sLat * cLon, -cLat * cLon,
		-cLon, -sLat * sLon, -cLat * sLon,
		0, cLat, -sLat,
	})
}

// transpose returns the transpose of a 3x3 matrix as a fresh Dense. For the
// orthonormal rotations built here the transpose is the inverse.
func transpose(m *mat64.Dense) *mat64.Dense {
	out := mat64.NewDense(3, 3, nil)
	out.Copy(m.T())
	return out
}

// mulVec applies a 3x3 matrix to an ECEF-style vector.
func mulVec(m *mat64.Dense, v geodesy.Vec3) geodesy.Vec3 {
	return geodesy.Vec3{
		X: m.At(0, 0)*v.X + m.At(0, 1)*v.Y + m.At(0, 2)*v.Z,
		Y: m.At(1, 0)*v.X + m.At(1, 1)*v.Y + m.At(1, 2)*v.Z,
		Z: m.At(2, 0)*v.X + m.At(2, 1)*v.Y + m.At(2, 2)*v.Z,
	}
}
