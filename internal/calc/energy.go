// Package calc holds the derivation core: instantaneous recovered
// energy, per-carrier cost, window aggregation and yearly projection.
// Everything here is a pure function of its inputs.
package calc

// Water constants for the recovery loop.
const (
	WaterDensity = 1000.0 // kg/m³
	SpecificHeat = 4.186  // kJ/(kg·°C)
)

// Energy returns the thermal energy recovered in one reading, in kJ.
// Flow is m³ per sampling interval. A negative temperature difference
// yields a negative value; no recovery occurring is a legitimate state,
// not an input error.
func Energy(tempHigh, tempLow, flow float64) float64 {
	return (tempHigh - tempLow) * flow * WaterDensity * SpecificHeat
}
