package application

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	detection "devicewatch/internal/detection/domain"
	telemetry "devicewatch/internal/telemetry/domain"
)

// ErrInvalidConfig indicates a broken run configuration. It is fatal for the
// whole run, unlike per-device data errors.
var ErrInvalidConfig = errors.New("config: invalid")

// RatesConfig holds the native sampling rate of each channel in Hz.
type RatesConfig struct {
	Worn        int `yaml:"worn"`
	Temperature int `yaml:"temperature"`
	PPG         int `yaml:"ppg"`
}

// RangeConfig is an inclusive-lower, exclusive-upper value range.
type RangeConfig struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Config defines a detection run. Defaults mirror the tuned production
// thresholds; both historical unworn threshold variants stay reproducible by
// overriding ppg_std_unworn_threshold and unworn_trend_checks.
type Config struct {
	BasePath                string      `yaml:"base_path"`
	Workers                 int         `yaml:"workers"`
	MonitoringDate          string      `yaml:"monitoring_date"`
	Rates                   RatesConfig `yaml:"rates"`
	WindowSize              int         `yaml:"window_size"`
	TemperatureStdThreshold float64     `yaml:"temperature_std_threshold"`
	PPGStdWornThreshold     float64     `yaml:"ppg_std_worn_threshold"`
	PPGStdUnwornThreshold   float64     `yaml:"ppg_std_unworn_threshold"`
	TemperatureRange        RangeConfig `yaml:"temperature_range"`
	UnwornMinSegmentLength  int         `yaml:"unworn_min_segment_length"`
	UnwornTrendChecks       bool        `yaml:"unworn_trend_checks"`
	DailyAt                 string      `yaml:"daily_at"`
	WebhookURL              string      `yaml:"webhook_url"`
	ReportDir               string      `yaml:"report_dir"`
	MetricsAddr             string      `yaml:"metrics_addr"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		BasePath:                "raw_bucket",
		Rates:                   RatesConfig{Worn: 1, Temperature: 4, PPG: 64},
		WindowSize:              16,
		TemperatureStdThreshold: 200,
		PPGStdWornThreshold:     3000,
		PPGStdUnwornThreshold:   500,
		TemperatureRange:        RangeConfig{Min: 2700, Max: 3700},
		UnwornMinSegmentLength:  64,
		UnwornTrendChecks:       true,
	}
}

// LoadConfig loads config from yaml or env. The yaml file named by
// DEVICEWATCH_CONFIG is applied over the defaults, then individual env
// variables override.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	if path := os.Getenv("DEVICEWATCH_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}

	cfg.BasePath = getenvDefault("BUCKET_PATH", cfg.BasePath)
	cfg.Workers = getenvIntDefault("WORKERS", cfg.Workers)
	cfg.MonitoringDate = getenvDefault("MONITORING_DATE", cfg.MonitoringDate)
	cfg.DailyAt = getenvDefault("DEVICEWATCH_DAILY_AT", cfg.DailyAt)
	cfg.WebhookURL = getenvDefault("DEVICEWATCH_WEBHOOK_URL", cfg.WebhookURL)
	cfg.ReportDir = getenvDefault("DEVICEWATCH_REPORT_DIR", cfg.ReportDir)
	cfg.MetricsAddr = getenvDefault("DEVICEWATCH_METRICS_ADDR", cfg.MetricsAddr)
	return cfg, nil
}

// TelemetryRates converts the rate configuration to the domain type.
func (c Config) TelemetryRates() telemetry.Rates {
	return telemetry.Rates{
		Worn:        c.Rates.Worn,
		Temperature: c.Rates.Temperature,
		PPG:         c.Rates.PPG,
	}
}

// RuleConfig converts the threshold configuration to the domain type.
func (c Config) RuleConfig() detection.RuleConfig {
	return detection.RuleConfig{
		WindowSize:              c.WindowSize,
		TemperatureStdThreshold: c.TemperatureStdThreshold,
		PPGStdWornThreshold:     c.PPGStdWornThreshold,
		PPGStdUnwornThreshold:   c.PPGStdUnwornThreshold,
		TemperatureRangeMin:     c.TemperatureRange.Min,
		TemperatureRangeMax:     c.TemperatureRange.Max,
		UnwornMinSegmentLength:  c.UnwornMinSegmentLength,
		UnwornTrendChecks:       c.UnwornTrendChecks,
	}
}

// Validate checks the whole run configuration up front.
func (c Config) Validate() error {
	if c.BasePath == "" {
		return fmt.Errorf("%w: base path required", ErrInvalidConfig)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative", ErrInvalidConfig)
	}
	if err := c.TelemetryRates().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := c.RuleConfig().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.DailyAt != "" {
		if _, _, err := parseDailyAt(c.DailyAt); err != nil {
			return fmt.Errorf("%w: daily_at %q: %v", ErrInvalidConfig, c.DailyAt, err)
		}
	}
	if c.MonitoringDate != "" {
		if _, err := time.Parse("2006-01-02", c.MonitoringDate); err != nil {
			return fmt.Errorf("%w: monitoring_date %q: %v", ErrInvalidConfig, c.MonitoringDate, err)
		}
	}
	return nil
}

// MonitoringDay resolves the day to evaluate: the configured ISO date, or
// yesterday (UTC) when unset.
func (c Config) MonitoringDay() (time.Time, error) {
	if c.MonitoringDate == "" {
		return Yesterday(time.Now().UTC()), nil
	}
	day, err := time.Parse("2006-01-02", c.MonitoringDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: monitoring_date %q: %v", ErrInvalidConfig, c.MonitoringDate, err)
	}
	return day, nil
}

// Yesterday truncates now to a UTC date and steps one day back.
func Yesterday(now time.Time) time.Time {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -1)
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvIntDefault(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
