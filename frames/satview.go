package frames

import (
	"fmt"
	"math"

	"github.com/gonum/matrix/mat64"

	"github.com/signalsfoundry/satview/geodesy"
)

// blockageTolM is how much nearer (in metres) an ellipsoid intersection
// must be than the target before the target counts as hidden behind the
// earth. Keeps surface targets from occluding themselves.
const blockageTolM = 1e-3

// satViewTransform is the shared state of the satellite-view transforms:
// the satellite ECEF position, the sensor-frame rotation pair, the
// ellipsoid, and the height of the target surface above it.
type satViewTransform struct {
	pos    geodesy.Vec3
	rot    *mat64.Dense // ECEF-from-UV direction
	inv    *mat64.Dense
	ell    geodesy.Ellipsoid
	height float64
}

func newSatViewTransform(sat geodesy.LLA, ell geodesy.Ellipsoid, height float64) satViewTransform {
	rot := RotationECEFFromUV(sat.Lat, sat.Lon)
	return satViewTransform{
		pos:    ell.GeodeticToECEF(sat),
		rot:    rot,
		inv:    transpose(rot),
		ell:    ell,
		height: height,
	}
}

// ECEFFromUV maps sensor-plane pointing coordinates to the ECEF ground
// point they hit, for a satellite at a fixed geodetic position looking at
// the ellipsoid surface offset by a fixed height.
type ECEFFromUV struct {
	t satViewTransform
}

// NewECEFFromUV builds the pointing-to-ground transform for a satellite at
// sat. height is the target surface's offset above the ellipsoid in
// metres; pass 0 to intersect the ellipsoid itself.
func NewECEFFromUV(sat geodesy.LLA, ell geodesy.Ellipsoid, height float64) ECEFFromUV {
	return ECEFFromUV{t: newSatViewTransform(sat, ell, height)}
}

// Forward maps a pointing vector to the ECEF point where it meets the
// target surface. It fails when uv lies outside the unit disc; a pointing
// direction that misses the earth yields the NaN sentinel, not an error.
func (f ECEFFromUV) Forward(uv geodesy.Vec2) (geodesy.Vec3, error) {
	uu := uv.U*uv.U + uv.V*uv.V
	if uu > 1 {
		return geodesy.NaN3(), fmt.Errorf("%w: u^2+v^2 = %v exceeds 1", geodesy.ErrInvalidParameter, uu)
	}
	pointing := geodesy.Vec3{X: uv.U, Y: uv.V, Z: math.Sqrt(1 - uu)}
	dir := mulVec(f.t.rot, pointing)
	return f.t.ell.IntersectRay(f.t.pos, dir, f.t.height), nil
}

// Inverse returns the paired ground-to-pointing transform.
func (f ECEFFromUV) Inverse() UVFromECEF {
	return UVFromECEF{t: f.t}
}

// UVFromECEF maps ECEF points to the sensor-plane pointing coordinates
// under which the satellite sees them.
type UVFromECEF struct {
	t satViewTransform
}

// NewUVFromECEF builds the ground-to-pointing transform for a satellite at
// sat.
func NewUVFromECEF(sat geodesy.LLA, ell geodesy.Ellipsoid) UVFromECEF {
	return UVFromECEF{t: newSatViewTransform(sat, ell, 0)}
}

// Forward maps an ECEF point to pointing coordinates. A target hidden
// behind the earth's limb yields the NaN sentinel: blockage is a routine
// outcome for footprint scans, so it is data rather than an error.
func (f UVFromECEF) Forward(target geodesy.Vec3) geodesy.Vec2 {
	diff := target.Sub(f.t.pos)
	dist := diff.Norm()
	if dist == 0 {
		return geodesy.NaN2()
	}
	dir := diff.Scale(1 / dist)

	// Earth blockage: an intersection along the ray nearer than the
	// target itself means the ellipsoid is in the way.
	if hit := f.t.ell.IntersectRay(f.t.pos, dir, 0); hit.IsValid() {
		t := hit.Sub(f.t.pos).Dot(dir)
		if t > 0 && t < dist-blockageTolM {
			return geodesy.NaN2()
		}
	}

	q := mulVec(f.t.inv, diff)
	return geodesy.Vec2{U: q.X / dist, V: q.Y / dist}
}

// Inverse returns the paired pointing-to-ground transform.
func (f UVFromECEF) Inverse() ECEFFromUV {
	return ECEFFromUV{t: f.t}
}

// LLAFromUV maps pointing coordinates straight to geodetic ground points:
// the composition of ECEFFromUV with the ECEF-to-geodetic conversion.
type LLAFromUV struct {
	uv ECEFFromUV
}

// NewLLAFromUV builds the pointing-to-geodetic transform. height selects
// which ellipsoid-offset surface the pointing ray intersects.
func NewLLAFromUV(sat geodesy.LLA, ell geodesy.Ellipsoid, height float64) LLAFromUV {
	return LLAFromUV{uv: NewECEFFromUV(sat, ell, height)}
}

// Forward maps a pointing vector to the geodetic point it hits. A miss
// propagates as NaN coordinates in the result.
func (f LLAFromUV) Forward(uv geodesy.Vec2) (geodesy.LLA, error) {
	ecef, err := f.uv.Forward(uv)
	if err != nil {
		return geodesy.LLA{}, err
	}
	return f.uv.t.ell.ECEFToGeodetic(ecef), nil
}

// Inverse returns the paired geodetic-to-pointing transform.
func (f LLAFromUV) Inverse() UVFromLLA {
	return UVFromLLA{uv: f.uv.Inverse()}
}

// UVFromLLA maps geodetic points to sensor-plane pointing coordinates.
type UVFromLLA struct {
	uv UVFromECEF
}

// NewUVFromLLA builds the geodetic-to-pointing transform for a satellite
// at sat.
func NewUVFromLLA(sat geodesy.LLA, ell geodesy.Ellipsoid) UVFromLLA {
	return UVFromLLA{uv: NewUVFromECEF(sat, ell)}
}

// Forward maps a geodetic point to pointing coordinates, with the same
// blockage semantics as UVFromECEF.
func (f UVFromLLA) Forward(p geodesy.LLA) geodesy.Vec2 {
	return f.uv.Forward(f.uv.t.ell.GeodeticToECEF(p))
}

// Inverse returns the paired pointing-to-geodetic transform.
func (f UVFromLLA) Inverse() LLAFromUV {
	return LLAFromUV{uv: f.uv.Inverse()}
}
