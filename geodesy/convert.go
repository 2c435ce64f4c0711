package geodesy

import "math"

// polarBranchSin is sin(1 degree). Within one degree of either pole the
// cos(lat) denominator in the altitude formula loses precision, so the
// conversion switches to the sin(lat)-based form.
var polarBranchSin = math.Sin(math.Pi / 180)

// GeodeticToECEF converts a geodetic point to ECEF Cartesian metres using
// the closed-form prime-vertical formula.
func (e Ellipsoid) GeodeticToECEF(p LLA) Vec3 {
	sinLat, cosLat := math.Sincos(p.Lat)
	sinLon, cosLon := math.Sincos(p.Lon)
	n := e.primeVerticalRadius(p.Lat)
	ba := e.B / e.A
	return Vec3{
		X: (n + p.Alt) * cosLat * cosLon,
		Y: (n + p.Alt) * cosLat * sinLon,
		Z: (ba*ba*n + p.Alt) * sinLat,
	}
}

// ECEFToGeodetic converts an ECEF Cartesian point to geodetic coordinates
// using the non-iterative parametric-latitude method. Accuracy is
// sub-millimetre for Earth-scale inputs, including at the poles.
func (e Ellipsoid) ECEFToGeodetic(v Vec3) LLA {
	p := math.Hypot(v.X, v.Y)

	// Parametric (reduced) latitude of the target point.
	theta := math.Atan2(v.Z*e.A, p*e.B)
	sinTheta, cosTheta := math.Sincos(theta)

	lon := math.Atan2(v.Y, v.X)
	lat := math.Atan2(
		v.Z+e.EP2*e.B*sinTheta*sinTheta*sinTheta,
		p-e.E2*e.A*cosTheta*cosTheta*cosTheta,
	)

	sinLat, cosLat := math.Sincos(lat)
	n := e.primeVerticalRadius(lat)

	// The usual p/cos(lat) altitude blows up near the poles; switch to
	// the z/sin(lat) form within one degree of either pole.
	var alt float64
	if math.Abs(cosLat) < polarBranchSin {
		alt = v.Z/sinLat - n*(1-e.E2)
	} else {
		alt = p/cosLat - n
	}

	return LLA{Lat: lat, Lon: lon, Alt: alt}
}
