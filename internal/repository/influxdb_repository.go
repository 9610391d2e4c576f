package repository

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	"hainetsukaishu-backend/internal/models"
)

// measurement holding the sensor readings; one point per sample, tagged
// by device_id, fields = temperature channels + flow.
const measurement = "telemetry"

// TelemetryStore is the read-only view of the sample store the query
// façade needs. Latest returns nil with no error when the device has
// never reported.
type TelemetryStore interface {
	Latest(ctx context.Context, device string) (*models.Sample, error)
	Range(ctx context.Context, device string, start, stop time.Time) ([]models.Sample, error)
}

// InfluxDBRepository reads telemetry samples from InfluxDB.
type InfluxDBRepository struct {
	client    influxdb2.Client
	queryAPI  api.QueryAPI
	bucket    string
	flowField string
}

// NewInfluxDBRepository creates a new InfluxDBRepository.
func NewInfluxDBRepository(url, token, org, bucket, flowField string) *InfluxDBRepository {
	client := influxdb2.NewClient(url, token)
	return &InfluxDBRepository{
		client:    client,
		queryAPI:  client.QueryAPI(org),
		bucket:    bucket,
		flowField: flowField,
	}
}

// Ping checks the connection health at startup.
func (r *InfluxDBRepository) Ping(ctx context.Context) error {
	health, err := r.client.Health(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to InfluxDB: %w", err)
	}
	if health.Status != "pass" {
		return fmt.Errorf("InfluxDB health check failed: %v", health.Message)
	}
	return nil
}

// Close releases the underlying client.
func (r *InfluxDBRepository) Close() {
	r.client.Close()
}

// Latest returns the most recent sample for a device, however old, or
// nil when the device has never reported.
func (r *InfluxDBRepository) Latest(ctx context.Context, device string) (*models.Sample, error) {
	samples, err := r.runQuery(ctx, device, r.latestFlux(device))
	if err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, nil
	}
	return &samples[0], nil
}

func (r *InfluxDBRepository) latestFlux(device string) string {
	return fmt.Sprintf(`
		from(bucket: "%s")
		|> range(start: 0)
		|> filter(fn: (r) => r["_measurement"] == "%s")
		|> filter(fn: (r) => r["device_id"] == "%s")
		|> pivot(rowKey: ["_time"], columnKey: ["_field"], valueColumn: "_value")
		|> sort(columns: ["_time"], desc: true)
		|> limit(n: 1)
	`, r.bucket, measurement, device)
}

// Range returns the device's samples within (start, stop], oldest first.
func (r *InfluxDBRepository) Range(ctx context.Context, device string, start, stop time.Time) ([]models.Sample, error) {
	return r.runQuery(ctx, device, r.rangeFlux(device, start, stop))
}

// rangeFlux renders the window query. Flux range(start, stop) is
// start-inclusive and stop-exclusive; the contract here is (start, stop],
// so both bounds shift forward one nanosecond.
func (r *InfluxDBRepository) rangeFlux(device string, start, stop time.Time) string {
	return fmt.Sprintf(`
		from(bucket: "%s")
		|> range(start: %s, stop: %s)
		|> filter(fn: (r) => r["_measurement"] == "%s")
		|> filter(fn: (r) => r["device_id"] == "%s")
		|> pivot(rowKey: ["_time"], columnKey: ["_field"], valueColumn: "_value")
		|> sort(columns: ["_time"])
	`, r.bucket,
		start.Add(time.Nanosecond).UTC().Format(time.RFC3339Nano),
		stop.Add(time.Nanosecond).UTC().Format(time.RFC3339Nano),
		measurement, device)
}

func (r *InfluxDBRepository) runQuery(ctx context.Context, device, fluxQuery string) ([]models.Sample, error) {
	result, err := r.queryAPI.Query(ctx, fluxQuery)
	if err != nil {
		log.Printf("Error querying InfluxDB: %v\nQuery: %s", err, fluxQuery)
		return nil, fmt.Errorf("error querying InfluxDB: %w", err)
	}

	var samples []models.Sample
	for result.Next() {
		record := result.Record()
		sample := models.Sample{
			Device:       device,
			Time:         record.Time(),
			Temperatures: make(map[string]float64),
		}
		for key, value := range record.Values() {
			v, ok := toFloat(value)
			if !ok {
				continue
			}
			if key == r.flowField {
				sample.Flow = v
				continue
			}
			if strings.HasPrefix(key, "temp") {
				sample.Temperatures[key] = v
			}
		}
		samples = append(samples, sample)
	}
	if result.Err() != nil {
		return nil, fmt.Errorf("error reading query result: %w", result.Err())
	}
	return samples, nil
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
