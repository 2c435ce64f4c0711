package geodesy

import (
	"fmt"
	"math"

	"github.com/soniakeys/unit"
)

// LLA is a geodetic point: latitude and longitude in radians, altitude in
// metres above the reference ellipsoid. Construct with NewLLA so the
// latitude bound and longitude normalization are enforced; the zero value
// is the point on the equator at the prime meridian.
type LLA struct {
	Lat float64
	Lon float64
	Alt float64
}

// NewLLA validates latitude against [-pi/2, pi/2] and normalizes longitude
// to (-pi, pi] by the nearest multiple of 2*pi.
func NewLLA(lat, lon, alt float64) (LLA, error) {
	if lat < -math.Pi/2 || lat > math.Pi/2 {
		return LLA{}, fmt.Errorf("%w: latitude %v rad outside [-pi/2, pi/2]", ErrInvalidParameter, lat)
	}
	return LLA{Lat: lat, Lon: NormalizeLon(lon), Alt: alt}, nil
}

// NewLLAFromAngles is the unit-tagged convenience constructor: callers
// holding degree values write NewLLAFromAngles(unit.AngleFromDeg(48.8),
// unit.AngleFromDeg(2.3), 35).
func NewLLAFromAngles(lat, lon unit.Angle, altM float64) (LLA, error) {
	return NewLLA(lat.Rad(), lon.Rad(), altM)
}

// NormalizeLon reduces an angle to (-pi, pi] by the nearest multiple
// of 2*pi.
func NormalizeLon(lon float64) float64 {
	lon = math.Mod(lon, 2*math.Pi)
	if lon > math.Pi {
		lon -= 2 * math.Pi
	} else if lon <= -math.Pi {
		lon += 2 * math.Pi
	}
	return lon
}
