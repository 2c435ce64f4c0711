// Package orbit supplies satellite ECEF positions to the view-transform
// layer: an SGP4/TLE source for orbiting platforms and a static source for
// ground assets.
package orbit

import (
	"time"

	satellite "github.com/joshuaferrara/go-satellite"

	"github.com/signalsfoundry/satview/geodesy"
)

// PositionSource yields an ECEF position in metres for a given time.
type PositionSource interface {
	PositionECEF(t time.Time) geodesy.Vec3
}

// SGP4Source propagates a two-line element set with SGP4.
type SGP4Source struct {
	sat satellite.Satellite
}

// NewSGP4Source parses the TLE lines into a propagatable satellite.
func NewSGP4Source(line1, line2 string) *SGP4Source {
	return &SGP4Source{sat: satellite.TLEToSat(line1, line2, satellite.GravityWGS72)}
}

// PositionECEF propagates to t and rotates the ECI state into ECEF.
// go-satellite works in kilometres; the boundary converts to metres.
func (s *SGP4Source) PositionECEF(t time.Time) geodesy.Vec3 {
	year, month, day := t.Date()
	hour, min, sec := t.Clock()

	posECI, _ := satellite.Propagate(s.sat, year, int(month), day, hour, min, sec)
	jd := satellite.JDay(year, int(month), day, hour, min, sec)
	gmst := satellite.ThetaG_JD(jd)
	posECEF := satellite.ECIToECEF(posECI, gmst)

	const kmToM = 1000.0
	return geodesy.Vec3{
		X: posECEF.X * kmToM,
		Y: posECEF.Y * kmToM,
		Z: posECEF.Z * kmToM,
	}
}

// GeodeticAt is a convenience wrapper returning the propagated position in
// geodetic coordinates on the given ellipsoid.
func (s *SGP4Source) GeodeticAt(t time.Time, ell geodesy.Ellipsoid) geodesy.LLA {
	return ell.ECEFToGeodetic(s.PositionECEF(t))
}

// Static pins a position in place, for ground stations and test fixtures.
type Static struct {
	Pos geodesy.Vec3
}

// PositionECEF returns the fixed position regardless of time.
func (s Static) PositionECEF(time.Time) geodesy.Vec3 {
	return s.Pos
}
