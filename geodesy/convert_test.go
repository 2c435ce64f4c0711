package geodesy

import (
	"math"
	"testing"
)

const degree = math.Pi / 180

func TestGeodeticToECEF_EquatorPrimeMeridian(t *testing.T) {
	p := LLA{Lat: 0, Lon: 0, Alt: 0}
	v := WGS84.GeodeticToECEF(p)

	if math.Abs(v.X-WGS84.A) > 1e-6 {
		t.Errorf("X = %v, want semi-major axis %v", v.X, WGS84.A)
	}
	if math.Abs(v.Y) > 1e-6 || math.Abs(v.Z) > 1e-6 {
		t.Errorf("Y,Z = %v,%v, want 0,0", v.Y, v.Z)
	}
}

func TestGeodeticToECEF_PoleUsesSemiMinorAxis(t *testing.T) {
	p := LLA{Lat: math.Pi / 2, Lon: 0, Alt: 0}
	v := WGS84.GeodeticToECEF(p)

	if math.Abs(v.Z-WGS84.B) > 1e-6 {
		t.Errorf("Z = %v, want semi-minor axis %v", v.Z, WGS84.B)
	}
}

func TestECEFToGeodetic_RoundTripMidLatitudes(t *testing.T) {
	cases := []LLA{
		{Lat: 48.8566 * degree, Lon: 2.3522 * degree, Alt: 35},
		{Lat: -33.8688 * degree, Lon: 151.2093 * degree, Alt: 58},
		{Lat: 0.5 * degree, Lon: -179.9 * degree, Alt: 100000},
		{Lat: 60 * degree, Lon: -60 * degree, Alt: -50},
	}

	for _, want := range cases {
		got := WGS84.ECEFToGeodetic(WGS84.GeodeticToECEF(want))
		if math.Abs(got.Lat-want.Lat) > 1e-9 {
			t.Errorf("lat %v -> %v, drift > 1e-9 rad", want.Lat, got.Lat)
		}
		if math.Abs(got.Lon-want.Lon) > 1e-9 {
			t.Errorf("lon %v -> %v, drift > 1e-9 rad", want.Lon, got.Lon)
		}
		if math.Abs(got.Alt-want.Alt) > 1e-6 {
			t.Errorf("alt %v -> %v, drift > 1e-6 m", want.Alt, got.Alt)
		}
	}
}

func TestECEFToGeodetic_RoundTripPolarBranch(t *testing.T) {
	// Latitudes within a degree of the poles exercise the z/sin(lat)
	// altitude branch.
	cases := []LLA{
		{Lat: 89.95 * degree, Lon: 45 * degree, Alt: 1200},
		{Lat: -89.99 * degree, Lon: -135 * degree, Alt: 0},
		{Lat: math.Pi / 2, Lon: 0, Alt: 3000},
	}

	for _, want := range cases {
		got := WGS84.ECEFToGeodetic(WGS84.GeodeticToECEF(want))
		if math.Abs(got.Lat-want.Lat) > 1e-9 {
			t.Errorf("lat %v -> %v, drift > 1e-9 rad", want.Lat, got.Lat)
		}
		if math.Abs(got.Alt-want.Alt) > 1e-6 {
			t.Errorf("alt %v -> %v, drift > 1e-6 m", want.Alt, got.Alt)
		}
	}
}
