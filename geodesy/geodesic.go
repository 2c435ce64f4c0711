package geodesy

import (
	"math"

	"github.com/lazylynx/ggeodesic"
)

// GeodesicInverse solves the inverse geodesic problem between two geodetic
// points on the ellipsoid: the shortest surface distance in metres plus the
// forward azimuths at each endpoint in degrees. Altitudes are ignored.
//
// The iterative solution is delegated to the ggeodesic port of Karney's
// GeographicLib algorithms; this wrapper only marshals radians to the
// degree interface and carries the ellipsoid parameters across.
func (e Ellipsoid) GeodesicInverse(p1, p2 LLA) (distM, azi1Deg, azi2Deg float64) {
	g := ggeodesic.New(e.A, e.F)
	r := g.Inverse(
		p1.Lat*180/math.Pi, p1.Lon*180/math.Pi,
		p2.Lat*180/math.Pi, p2.Lon*180/math.Pi,
	)
	return r["s12"], r["azi1"], r["azi2"]
}
