// Package rf holds the scalar link-budget conversions shared by the beam
// planning code: decibel/linear power ratios and frequency/wavelength.
package rf

import "math"

// SpeedOfLight is the speed of light in vacuum, metres per second.
const SpeedOfLight = 299792458.0

// LinearToDB converts a linear power ratio to decibels, 10*log10(x).
func LinearToDB(x float64) float64 {
	return 10 * math.Log10(x)
}

// DBToLinear converts decibels to a linear power ratio, 10^(db/10).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/10)
}

// Wavelength returns the free-space wavelength in metres for a frequency
// in hertz.
func Wavelength(freqHz float64) float64 {
	return SpeedOfLight / freqHz
}

// Frequency returns the frequency in hertz for a free-space wavelength in
// metres.
func Frequency(lambdaM float64) float64 {
	return SpeedOfLight / lambdaM
}
