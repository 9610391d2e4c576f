package calc

import "hainetsukaishu-backend/internal/models"

// Aggregate sums the instantaneous energy of every sample in a window
// using the device's hot/cold channel pair. ok is false for an empty
// window so callers can tell "no data" apart from zero recovery.
// Channels missing from a sample read as zero, matching the store's
// behavior for fields a unit never reported.
func Aggregate(samples []models.Sample, pair models.ChannelPair) (total float64, ok bool) {
	if len(samples) == 0 {
		return 0, false
	}
	for _, s := range samples {
		total += Energy(s.Temperatures[pair.Hot], s.Temperatures[pair.Cold], s.Flow)
	}
	return total, true
}
