package calc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"hainetsukaishu-backend/internal/models"
)

var testPair = models.ChannelPair{Hot: "tempC4", Cold: "tempC3"}

func sampleAt(ts time.Time, hot, cold, flow float64) models.Sample {
	return models.Sample{
		Device:       "hainetsukaishu-demo1",
		Time:         ts,
		Temperatures: map[string]float64{"tempC4": hot, "tempC3": cold},
		Flow:         flow,
	}
}

func TestAggregateEmptyWindow(t *testing.T) {
	total, ok := Aggregate(nil, testPair)

	assert.False(t, ok, "empty window must be distinguishable from zero recovery")
	assert.InDelta(t, 0.0, total, 1e-9)
}

func TestAggregateSingleSampleEqualsEnergy(t *testing.T) {
	ts := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	total, ok := Aggregate([]models.Sample{sampleAt(ts, 40, 30, 10)}, testPair)

	assert.True(t, ok)
	assert.InDelta(t, Energy(40, 30, 10), total, 1e-6)
}

func TestAggregateSumsNotAverages(t *testing.T) {
	ts := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	var samples []models.Sample
	for i := 0; i < 24; i++ {
		samples = append(samples, sampleAt(ts.Add(time.Duration(i)*time.Hour), 50, 20, 5))
	}

	total, ok := Aggregate(samples, testPair)

	assert.True(t, ok)
	assert.InDelta(t, 24*Energy(50, 20, 5), total, 1e-3)
	assert.InDelta(t, 15069600.0, total, 1e-3)
}

func TestAggregateUsesConfiguredChannelPair(t *testing.T) {
	ts := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	s := models.Sample{
		Device: "hainetsukaishu-demo2",
		Time:   ts,
		Temperatures: map[string]float64{
			"tempC1": 25,
			"tempC2": 45,
			"tempC3": 30,
			"tempC4": 40,
		},
		Flow: 10,
	}

	total, ok := Aggregate([]models.Sample{s}, models.ChannelPair{Hot: "tempC2", Cold: "tempC1"})
	assert.True(t, ok)
	assert.InDelta(t, Energy(45, 25, 10), total, 1e-6)
}

func TestAggregateMissingChannelReadsZero(t *testing.T) {
	ts := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	s := models.Sample{
		Device:       "hainetsukaishu-demo1",
		Time:         ts,
		Temperatures: map[string]float64{"tempC4": 40},
		Flow:         10,
	}

	total, ok := Aggregate([]models.Sample{s}, testPair)
	assert.True(t, ok)
	assert.InDelta(t, Energy(40, 0, 10), total, 1e-6)
}
