package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hainetsukaishu-backend/internal/config"
	"hainetsukaishu-backend/internal/models"
)

type fakeStore struct {
	latestSample *models.Sample
	rangeSamples []models.Sample
	err          error

	latestCalls int
	rangeCalls  int
	lastDevice  string
	lastStart   time.Time
	lastStop    time.Time
}

func (f *fakeStore) Latest(ctx context.Context, device string) (*models.Sample, error) {
	f.latestCalls++
	f.lastDevice = device
	if f.err != nil {
		return nil, f.err
	}
	return f.latestSample, nil
}

func (f *fakeStore) Range(ctx context.Context, device string, start, stop time.Time) ([]models.Sample, error) {
	f.rangeCalls++
	f.lastDevice = device
	f.lastStart = start
	f.lastStop = stop
	if f.err != nil {
		return nil, f.err
	}
	return f.rangeSamples, nil
}

func testConfig() config.Config {
	return config.Config{
		Devices: []string{"hainetsukaishu-demo1", "hainetsukaishu-demo2"},
		Channels: map[string]models.ChannelPair{
			"hainetsukaishu-demo1": {Hot: "tempC4", Cold: "tempC3"},
			"hainetsukaishu-demo2": {Hot: "tempC2", Cold: "tempC1"},
		},
		UnitPrices:   models.UnitPriceTable{"electricity": 30, "gas": 20},
		PriceCarrier: "electricity",
		Location:     time.UTC,
	}
}

func newTestService(store *fakeStore, now time.Time) *QueryService {
	s := NewQueryService(store, testConfig())
	s.now = func() time.Time { return now }
	return s
}

func demoSample(ts time.Time, hot, cold, flow float64) *models.Sample {
	return &models.Sample{
		Device:       "hainetsukaishu-demo1",
		Time:         ts,
		Temperatures: map[string]float64{"tempC4": hot, "tempC3": cold},
		Flow:         flow,
	}
}

func TestCurrentPriceUnknownDeviceNeverQueriesStore(t *testing.T) {
	store := &fakeStore{}
	s := newTestService(store, time.Now())

	_, err := s.CurrentPrice(context.Background(), "intruder")

	assert.ErrorIs(t, err, ErrInvalidDevice)
	assert.Zero(t, store.latestCalls)
	assert.Zero(t, store.rangeCalls)
}

func TestCurrentPriceNoData(t *testing.T) {
	store := &fakeStore{}
	s := newTestService(store, time.Now())

	_, err := s.CurrentPrice(context.Background(), "hainetsukaishu-demo1")

	assert.ErrorIs(t, err, ErrNoData)
	assert.Equal(t, 1, store.latestCalls)
}

func TestCurrentPriceStoreFailure(t *testing.T) {
	store := &fakeStore{err: errors.New("connection refused")}
	s := newTestService(store, time.Now())

	_, err := s.CurrentPrice(context.Background(), "hainetsukaishu-demo1")

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoData)
	assert.NotErrorIs(t, err, ErrInvalidDevice)
}

func TestCurrentPrice(t *testing.T) {
	ts := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	store := &fakeStore{latestSample: demoSample(ts, 40, 30, 10)}
	s := newTestService(store, ts)

	resp, err := s.CurrentPrice(context.Background(), "hainetsukaishu-demo1")

	require.NoError(t, err)
	assert.Equal(t, "hainetsukaishu-demo1", resp.Device)
	assert.Equal(t, "2025-03-10T12:00:00Z", resp.Time)
	// 418600 kJ -> 116.27 kWh * 30
	assert.Equal(t, "3488.33", resp.Price)
}

func TestWindowPriceRollingHourBounds(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	store := &fakeStore{rangeSamples: []models.Sample{*demoSample(now, 40, 30, 10)}}
	s := newTestService(store, now)

	_, err := s.WindowPrice(context.Background(), "hainetsukaishu-demo1", time.Hour)

	require.NoError(t, err)
	assert.Equal(t, now.Add(-time.Hour), store.lastStart)
	assert.Equal(t, now, store.lastStop)
}

func TestWindowPriceRollingDayBounds(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	store := &fakeStore{rangeSamples: []models.Sample{*demoSample(now, 40, 30, 10)}}
	s := newTestService(store, now)

	_, err := s.WindowPrice(context.Background(), "hainetsukaishu-demo1", 24*time.Hour)

	require.NoError(t, err)
	assert.Equal(t, now.Add(-24*time.Hour), store.lastStart)
	assert.Equal(t, now, store.lastStop)
}

func TestWindowPriceEmptyWindowIsNoData(t *testing.T) {
	store := &fakeStore{}
	s := newTestService(store, time.Now())

	_, err := s.WindowPrice(context.Background(), "hainetsukaishu-demo1", time.Hour)

	assert.ErrorIs(t, err, ErrNoData)
}

func TestWindowPriceSumsSamples(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	store := &fakeStore{rangeSamples: []models.Sample{
		*demoSample(now.Add(-30*time.Minute), 40, 30, 10),
		*demoSample(now.Add(-15*time.Minute), 40, 30, 10),
	}}
	s := newTestService(store, now)

	resp, err := s.WindowPrice(context.Background(), "hainetsukaishu-demo1", time.Hour)

	require.NoError(t, err)
	// 2 * 418600 kJ -> 232.5 kWh * 30
	assert.Equal(t, "6976.67", resp.TotalPrice)
}

func TestRealtime(t *testing.T) {
	ts := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	store := &fakeStore{latestSample: demoSample(ts, 40, 30, 10)}
	s := newTestService(store, ts)

	resp, err := s.Realtime(context.Background(), "hainetsukaishu-demo1")

	require.NoError(t, err)
	assert.Equal(t, "418600.00", resp.Energy)
	assert.InDelta(t, 10.0, resp.Flow, 1e-9)
	assert.InDelta(t, 40.0, resp.Temperature["tempC4"], 1e-9)
	// Breakdown carriers always match the price table.
	assert.Len(t, resp.Cost, 2)
	assert.Contains(t, resp.Cost, "electricity")
	assert.Contains(t, resp.Cost, "gas")
	assert.InDelta(t, 30.0, resp.UnitCosts["electricity"], 1e-9)
}

func TestRealtimeUsesDeviceChannelPair(t *testing.T) {
	ts := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	store := &fakeStore{latestSample: &models.Sample{
		Device: "hainetsukaishu-demo2",
		Time:   ts,
		Temperatures: map[string]float64{
			"tempC1": 25,
			"tempC2": 45,
			"tempC3": 30,
			"tempC4": 40,
		},
		Flow: 10,
	}}
	s := newTestService(store, ts)

	resp, err := s.Realtime(context.Background(), "hainetsukaishu-demo2")

	require.NoError(t, err)
	// demo2 pairs tempC2 against tempC1: 20°C differential.
	assert.Equal(t, "837200.00", resp.Energy)
}

func TestDailyReportWindowIsPreviousCalendarDay(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	store := &fakeStore{rangeSamples: []models.Sample{*demoSample(now.AddDate(0, 0, -1), 40, 30, 10)}}
	s := newTestService(store, now)

	_, err := s.DailyReport(context.Background(), "hainetsukaishu-demo1")

	require.NoError(t, err)
	// Range is (start, stop], and the calendar day is closed on both
	// ends, so the opening midnight sits one nanosecond past the start
	// bound and the terminating midnight is the stop bound itself.
	assert.Equal(t, time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond), store.lastStart)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), store.lastStop)
}

func TestDailyReportEndToEnd(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	dayStart := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)

	var samples []models.Sample
	for i := 0; i < 24; i++ {
		samples = append(samples, *demoSample(dayStart.Add(time.Duration(i)*time.Hour), 50, 20, 5))
	}
	store := &fakeStore{rangeSamples: samples}
	s := newTestService(store, now)

	resp, err := s.DailyReport(context.Background(), "hainetsukaishu-demo1")

	require.NoError(t, err)
	assert.Equal(t, "15069600.00", resp.TotalEnergy)
	assert.Equal(t, "125580.00", resp.TotalCost["electricity"])
	assert.Equal(t, "83720.00", resp.TotalCost["gas"])

	require.Contains(t, resp.YearlySavings, "240 days")
	require.Contains(t, resp.YearlySavings, "300 days")
	require.Contains(t, resp.YearlySavings, "365 days")
	assert.Equal(t, "30139200.00", resp.YearlySavings["240 days"]["electricity"])
	assert.Equal(t, "37674000.00", resp.YearlySavings["300 days"]["electricity"])
	assert.Equal(t, "45836700.00", resp.YearlySavings["365 days"]["electricity"])
}

func TestDailyReportEmptyDayIsNoData(t *testing.T) {
	store := &fakeStore{}
	s := newTestService(store, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))

	_, err := s.DailyReport(context.Background(), "hainetsukaishu-demo1")

	assert.ErrorIs(t, err, ErrNoData)
}

func TestDevicesAndDefault(t *testing.T) {
	s := newTestService(&fakeStore{}, time.Now())

	assert.Equal(t, []string{"hainetsukaishu-demo1", "hainetsukaishu-demo2"}, s.Devices())
	assert.Equal(t, "hainetsukaishu-demo1", s.DefaultDevice())
}
