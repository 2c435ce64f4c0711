package orbit

import (
	"math"
	"testing"
	"time"

	"github.com/signalsfoundry/satview/geodesy"
)

// ISS TLE from late 2021; any syntactically valid TLE works for these
// tests since they only check gross orbital geometry.
const (
	issLine1 = "1 25544U 98067A   21275.59097222  .00000204  00000-0  10270-4 0  9990"
	issLine2 = "2 25544  51.6459 115.9059 0001817  61.3028  35.9198 15.49370953257760"
)

func TestSGP4Source_AltitudeInLEOBand(t *testing.T) {
	src := NewSGP4Source(issLine1, issLine2)
	at := time.Date(2021, 10, 2, 14, 0, 0, 0, time.UTC)

	pos := src.PositionECEF(at)
	if !pos.IsValid() {
		t.Fatalf("propagation returned invalid position")
	}

	alt := pos.Norm() - geodesy.WGS84.A
	if alt < 300e3 || alt > 500e3 {
		t.Errorf("ISS altitude = %v m, want 300-500 km", alt)
	}
}

func TestSGP4Source_GeodeticLatitudeWithinInclination(t *testing.T) {
	src := NewSGP4Source(issLine1, issLine2)

	for hour := 0; hour < 3; hour++ {
		at := time.Date(2021, 10, 2, 12+hour, 0, 0, 0, time.UTC)
		lla := src.GeodeticAt(at, geodesy.WGS84)
		if latDeg := lla.Lat * 180 / math.Pi; latDeg > 52.5 || latDeg < -52.5 {
			t.Errorf("latitude %v deg exceeds the 51.6 deg inclination band", latDeg)
		}
	}
}

func TestStatic_PositionIsTimeInvariant(t *testing.T) {
	s := Static{Pos: geodesy.Vec3{X: 6371000, Y: 0, Z: 0}}

	a := s.PositionECEF(time.Now())
	b := s.PositionECEF(time.Now().Add(48 * time.Hour))
	if a != b {
		t.Errorf("static position moved: %+v vs %+v", a, b)
	}
}
