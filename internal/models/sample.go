package models

import "time"

// Sample is one telemetry reading from a waste-heat-recovery unit.
// Temperature channels are keyed by their field name in the store
// (tempC1..tempC4 on the demo units). Flow is the volume moved during
// the sampling interval, in m³, so per-sample energies sum directly.
type Sample struct {
	Device       string
	Time         time.Time
	Temperatures map[string]float64
	Flow         float64
}

// ChannelPair names the two temperature channels whose difference drives
// the energy calculation for a device. Deployments wire different pairs
// (discharge minus supply on most units).
type ChannelPair struct {
	Hot  string
	Cold string
}
