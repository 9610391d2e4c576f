package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"hainetsukaishu-backend/internal/models"
)

// Config holds the application's configuration.
type Config struct {
	InfluxDBURL    string
	InfluxDBToken  string
	InfluxDBOrg    string
	InfluxDBBucket string
	Port           string

	Devices      []string
	Channels     map[string]models.ChannelPair
	FlowField    string
	UnitPrices   models.UnitPriceTable
	PriceCarrier string
	PushInterval time.Duration
	Location     *time.Location
}

var defaultDevices = []string{
	"hainetsukaishu-demo1",
	"hainetsukaishu-demo2",
	"hainetsukaishu-demo3",
	"hainetsukaishu-demo4",
	"hainetsukaishu-demo5",
}

// Demo units pair discharge (tempC4) against supply (tempC3).
var defaultChannelPair = models.ChannelPair{Hot: "tempC4", Cold: "tempC3"}

var defaultUnitPrices = models.UnitPriceTable{
	"electricity": 30,
	"gas":         20,
	"kerosene":    15,
	"heavy_oil":   17,
}

// LoadConfig loads the configuration from environment variables.
func LoadConfig() (Config, error) {
	// load env variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on system environment variables")
	}

	cfg := Config{
		InfluxDBURL:    os.Getenv("INFLUXDB_URL"),
		InfluxDBToken:  os.Getenv("INFLUXDB_TOKEN"),
		InfluxDBOrg:    os.Getenv("INFLUXDB_ORG"),
		InfluxDBBucket: getEnv("INFLUXDB_BUCKET", "telemetry"),
		Port:           getEnv("PORT", "8000"),
		Devices:        defaultDevices,
		FlowField:      getEnv("FLOW_FIELD", "Flow1"),
		UnitPrices:     defaultUnitPrices.Clone(),
		PriceCarrier:   getEnv("PRICE_CARRIER", "electricity"),
		PushInterval:   5 * time.Second,
	}
	if cfg.InfluxDBURL == "" || cfg.InfluxDBToken == "" || cfg.InfluxDBOrg == "" {
		return Config{}, fmt.Errorf("InfluxDB configuration is incomplete. Please set INFLUXDB_URL, INFLUXDB_TOKEN, and INFLUXDB_ORG environment variables")
	}

	if ids := os.Getenv("DEVICE_IDS"); ids != "" {
		cfg.Devices = splitList(ids)
	}
	if len(cfg.Devices) == 0 {
		return Config{}, fmt.Errorf("device allow-list is empty")
	}

	cfg.Channels = make(map[string]models.ChannelPair, len(cfg.Devices))
	for _, device := range cfg.Devices {
		cfg.Channels[device] = defaultChannelPair
	}
	if pairs := os.Getenv("CHANNEL_PAIRS"); pairs != "" {
		if err := applyChannelPairs(cfg.Channels, pairs); err != nil {
			return Config{}, err
		}
	}

	if prices := os.Getenv("UNIT_PRICES"); prices != "" {
		if err := applyUnitPrices(cfg.UnitPrices, prices); err != nil {
			return Config{}, err
		}
	}
	if _, ok := cfg.UnitPrices[cfg.PriceCarrier]; !ok {
		return Config{}, fmt.Errorf("price carrier %q has no entry in the unit price table", cfg.PriceCarrier)
	}

	if interval := os.Getenv("PUSH_INTERVAL"); interval != "" {
		d, err := time.ParseDuration(interval)
		if err != nil {
			return Config{}, fmt.Errorf("invalid PUSH_INTERVAL %q: %w", interval, err)
		}
		cfg.PushInterval = d
	}

	tz := getEnv("TIMEZONE", "Asia/Tokyo")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return Config{}, fmt.Errorf("invalid TIMEZONE %q: %w", tz, err)
	}
	cfg.Location = loc

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// applyChannelPairs parses "device=hotChannel-coldChannel" entries, e.g.
// CHANNEL_PAIRS="hainetsukaishu-demo1=tempC2-tempC1".
func applyChannelPairs(channels map[string]models.ChannelPair, raw string) error {
	for _, entry := range splitList(raw) {
		device, pair, ok := strings.Cut(entry, "=")
		if !ok {
			return fmt.Errorf("invalid CHANNEL_PAIRS entry %q, expected device=hot-cold", entry)
		}
		hot, cold, ok := strings.Cut(pair, "-")
		if !ok || hot == "" || cold == "" {
			return fmt.Errorf("invalid channel pair %q for device %q", pair, device)
		}
		if _, known := channels[device]; !known {
			return fmt.Errorf("CHANNEL_PAIRS references unknown device %q", device)
		}
		channels[device] = models.ChannelPair{Hot: hot, Cold: cold}
	}
	return nil
}

// applyUnitPrices parses "carrier=pricePerKWh" entries, e.g.
// UNIT_PRICES="electricity=27.5,gas=19".
func applyUnitPrices(prices models.UnitPriceTable, raw string) error {
	for _, entry := range splitList(raw) {
		carrier, value, ok := strings.Cut(entry, "=")
		if !ok {
			return fmt.Errorf("invalid UNIT_PRICES entry %q, expected carrier=price", entry)
		}
		price, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid price %q for carrier %q: %w", value, carrier, err)
		}
		if price < 0 {
			return fmt.Errorf("negative price for carrier %q", carrier)
		}
		prices[carrier] = price
	}
	return nil
}
