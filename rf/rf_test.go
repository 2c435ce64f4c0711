package rf

import (
	"math"
	"testing"
)

func TestLinearToDB_KnownRatios(t *testing.T) {
	cases := []struct {
		linear, db float64
	}{
		{linear: 1, db: 0},
		{linear: 10, db: 10},
		{linear: 100, db: 20},
		{linear: 0.5, db: -3.0102999566398121},
	}
	for _, c := range cases {
		if got := LinearToDB(c.linear); math.Abs(got-c.db) > 1e-12 {
			t.Errorf("LinearToDB(%v) = %v, want %v", c.linear, got, c.db)
		}
	}
}

func TestDBToLinear_RoundTrip(t *testing.T) {
	for _, db := range []float64{-30, -3, 0, 3, 17.5, 60} {
		back := LinearToDB(DBToLinear(db))
		if math.Abs(back-db) > 1e-12 {
			t.Errorf("round trip %v dB -> %v", db, back)
		}
	}
}

func TestWavelength_KuBand(t *testing.T) {
	// 12 GHz is a hair under 25 mm.
	if got := Wavelength(12e9); math.Abs(got-0.024982704833333332) > 1e-15 {
		t.Errorf("Wavelength(12 GHz) = %v m", got)
	}
}

func TestFrequency_InvertsWavelength(t *testing.T) {
	for _, f := range []float64{1.5e9, 12e9, 30e9} {
		if got := Frequency(Wavelength(f)); math.Abs(got-f) > 1e-3 {
			t.Errorf("Frequency(Wavelength(%v)) = %v", f, got)
		}
	}
}
