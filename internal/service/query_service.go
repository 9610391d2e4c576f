package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hainetsukaishu-backend/internal/calc"
	"hainetsukaishu-backend/internal/config"
	"hainetsukaishu-backend/internal/models"
	"hainetsukaishu-backend/internal/repository"
)

// Sentinel errors for the request taxonomy. Handlers map these to 400
// and 404; anything else is a store failure.
var (
	ErrInvalidDevice = errors.New("device is not in the allow-list")
	ErrNoData        = errors.New("no samples for the requested scope")
)

// QueryService maps each dashboard request to a store query plus the
// right calculator composition. The allow-list check always precedes
// store access.
type QueryService struct {
	store    repository.TelemetryStore
	devices  map[string]struct{}
	order    []string
	channels map[string]models.ChannelPair
	prices   models.UnitPriceTable
	carrier  string
	location *time.Location

	// now is swapped in tests; rolling windows anchor to it.
	now func() time.Time
}

// NewQueryService creates a new QueryService.
func NewQueryService(store repository.TelemetryStore, cfg config.Config) *QueryService {
	allowed := make(map[string]struct{}, len(cfg.Devices))
	for _, d := range cfg.Devices {
		allowed[d] = struct{}{}
	}
	return &QueryService{
		store:    store,
		devices:  allowed,
		order:    append([]string(nil), cfg.Devices...),
		channels: cfg.Channels,
		prices:   cfg.UnitPrices,
		carrier:  cfg.PriceCarrier,
		location: cfg.Location,
		now:      time.Now,
	}
}

// Devices returns the allow-list in configuration order.
func (s *QueryService) Devices() []string {
	return append([]string(nil), s.order...)
}

// DefaultDevice backs the endpoints that take no device parameter.
func (s *QueryService) DefaultDevice() string {
	return s.order[0]
}

func (s *QueryService) validDevice(device string) error {
	if _, ok := s.devices[device]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidDevice, device)
	}
	return nil
}

// CurrentPrice derives the instantaneous primary-carrier cost from the
// device's most recent sample.
func (s *QueryService) CurrentPrice(ctx context.Context, device string) (models.PriceResponse, error) {
	if err := s.validDevice(device); err != nil {
		return models.PriceResponse{}, err
	}
	sample, err := s.store.Latest(ctx, device)
	if err != nil {
		return models.PriceResponse{}, fmt.Errorf("fetching latest sample: %w", err)
	}
	if sample == nil {
		return models.PriceResponse{}, fmt.Errorf("%w: device %q has never reported", ErrNoData, device)
	}

	pair := s.channels[device]
	energy := calc.Energy(sample.Temperatures[pair.Hot], sample.Temperatures[pair.Cold], sample.Flow)
	cost := calc.Cost(energy, s.prices)

	return models.PriceResponse{
		Device: device,
		Time:   sample.Time.Format(time.RFC3339),
		Price:  models.FormatFixed(cost[s.carrier]),
	}, nil
}

// WindowPrice sums the primary-carrier cost over the rolling window
// (now−window, now].
func (s *QueryService) WindowPrice(ctx context.Context, device string, window time.Duration) (models.WindowPriceResponse, error) {
	if err := s.validDevice(device); err != nil {
		return models.WindowPriceResponse{}, err
	}
	now := s.now()
	samples, err := s.store.Range(ctx, device, now.Add(-window), now)
	if err != nil {
		return models.WindowPriceResponse{}, fmt.Errorf("fetching samples: %w", err)
	}

	total, ok := calc.Aggregate(samples, s.channels[device])
	if !ok {
		return models.WindowPriceResponse{}, fmt.Errorf("%w: device %q in the last %s", ErrNoData, device, window)
	}
	cost := calc.Cost(total, s.prices)

	return models.WindowPriceResponse{
		Device:     device,
		TotalPrice: models.FormatFixed(cost[s.carrier]),
	}, nil
}

// Realtime returns the latest sample with its derived energy, the active
// unit prices and the full cost breakdown.
func (s *QueryService) Realtime(ctx context.Context, device string) (models.RealtimeResponse, error) {
	if err := s.validDevice(device); err != nil {
		return models.RealtimeResponse{}, err
	}
	sample, err := s.store.Latest(ctx, device)
	if err != nil {
		return models.RealtimeResponse{}, fmt.Errorf("fetching latest sample: %w", err)
	}
	if sample == nil {
		return models.RealtimeResponse{}, fmt.Errorf("%w: device %q has never reported", ErrNoData, device)
	}

	pair := s.channels[device]
	energy := calc.Energy(sample.Temperatures[pair.Hot], sample.Temperatures[pair.Cold], sample.Flow)
	cost := calc.Cost(energy, s.prices)

	return models.RealtimeResponse{
		Device:      device,
		Time:        sample.Time.Format(time.RFC3339),
		Temperature: sample.Temperatures,
		Flow:        sample.Flow,
		Energy:      models.FormatFixed(energy),
		UnitCosts:   s.prices,
		Cost:        models.FormatBreakdown(cost),
	}, nil
}

// DailyReport aggregates the previous calendar day (midnight to midnight
// in the configured timezone) and projects the cost across the annual
// operating-day horizons.
func (s *QueryService) DailyReport(ctx context.Context, device string) (models.DailyReportResponse, error) {
	if err := s.validDevice(device); err != nil {
		return models.DailyReportResponse{}, err
	}
	now := s.now().In(s.location)
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.location)
	start := midnight.AddDate(0, 0, -1)

	// Calendar-day windows are closed on both ends; Range is (start, stop],
	// so back the start bound off to keep the opening midnight.
	samples, err := s.store.Range(ctx, device, start.Add(-time.Nanosecond), midnight)
	if err != nil {
		return models.DailyReportResponse{}, fmt.Errorf("fetching samples: %w", err)
	}

	total, ok := calc.Aggregate(samples, s.channels[device])
	if !ok {
		return models.DailyReportResponse{}, fmt.Errorf("%w: device %q on %s", ErrNoData, device, start.Format("2006-01-02"))
	}
	cost := calc.Cost(total, s.prices)

	projected := calc.Project(cost, calc.DefaultHorizons)
	yearly := make(map[string]map[string]string, len(projected))
	for horizon, breakdown := range projected {
		yearly[horizon] = models.FormatBreakdown(breakdown)
	}

	return models.DailyReportResponse{
		Device:        device,
		TotalEnergy:   models.FormatFixed(total),
		TotalCost:     models.FormatBreakdown(cost),
		YearlySavings: yearly,
	}, nil
}
