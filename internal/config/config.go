// Package config loads service settings from environment variables.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/basinflow/etp-compute-service/internal/domain"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	KafkaBrokers     []string      `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	KafkaSourceTopic string        `envconfig:"KAFKA_SOURCE_TOPIC" default:"forcing-snapshots"`
	KafkaSinkTopic   string        `envconfig:"KAFKA_SINK_TOPIC" default:"etp-results"`
	KafkaGroupID     string        `envconfig:"KAFKA_GROUP_ID" default:"etp-compute"`
	HTTPAddr         string        `envconfig:"HTTP_ADDR" default:":8080"`
	LogLevel         string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat        string        `envconfig:"LOG_FORMAT" default:"json"`
	ShutdownTimeout  time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`

	// Fallback scalars substituted for missing observations. The FAO
	// radiation and pressure defaults are post-conversion (MJ/m²/day or
	// MJ/m²/hour, kPa); the Priestley-Taylor radiation defaults are raw W/m².
	// The two FAO cadences are configured independently because their
	// defaults carry different units.
	DefaultFAODailyNetRadiation  float64 `envconfig:"DEFAULT_FAO_DAILY_NET_RADIATION" default:"2.0"`
	DefaultFAOHourlyNetRadiation float64 `envconfig:"DEFAULT_FAO_HOURLY_NET_RADIATION" default:"2.0"`
	DefaultDailyNetRadiation     float64 `envconfig:"DEFAULT_DAILY_NET_RADIATION" default:"300.0"`
	DefaultHourlyNetRadiation    float64 `envconfig:"DEFAULT_HOURLY_NET_RADIATION" default:"100.0"`
	DefaultWind                  float64 `envconfig:"DEFAULT_WIND" default:"2.0"`
	DefaultMaxTemp               float64 `envconfig:"DEFAULT_MAX_TEMP" default:"15.0"`
	DefaultMinTemp               float64 `envconfig:"DEFAULT_MIN_TEMP" default:"0.0"`
	DefaultTemp                  float64 `envconfig:"DEFAULT_TEMP" default:"15.0"`
	DefaultRelativeHumidity      float64 `envconfig:"DEFAULT_RELATIVE_HUMIDITY" default:"70.0"`
	DefaultPressure              float64 `envconfig:"DEFAULT_PRESSURE" default:"100.0"`

	// Priestley-Taylor coefficients, overridable per message.
	PTAlpha    float64 `envconfig:"PT_ALPHA" default:"1.26"`
	PTGMorning float64 `envconfig:"PT_G_MORNING" default:"0.35"`
	PTGNight   float64 `envconfig:"PT_G_NIGHT" default:"0.75"`
}

// Load reads configuration from environment variables, applying defaults
// where unset, and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if len(c.KafkaBrokers) == 0 {
		return errors.New("KAFKA_BROKERS is required")
	}
	if c.KafkaSourceTopic == "" {
		return errors.New("KAFKA_SOURCE_TOPIC is required")
	}
	if c.KafkaSinkTopic == "" {
		return errors.New("KAFKA_SINK_TOPIC is required")
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT must be positive")
	}
	if c.PTAlpha <= 0 {
		return errors.New("PT_ALPHA must be positive")
	}
	if c.PTGMorning < 0 || c.PTGMorning > 1 || c.PTGNight < 0 || c.PTGNight > 1 {
		return errors.New("PT_G_MORNING and PT_G_NIGHT must be within [0,1]")
	}
	return nil
}

// Defaults assembles the engine fallback scalars for the domain layer.
func (c *Config) Defaults() domain.Defaults {
	return domain.Defaults{
		FAODailyNetRadiation:  c.DefaultFAODailyNetRadiation,
		FAOHourlyNetRadiation: c.DefaultFAOHourlyNetRadiation,
		DailyNetRadiation:     c.DefaultDailyNetRadiation,
		HourlyNetRadiation:    c.DefaultHourlyNetRadiation,
		Wind:                  c.DefaultWind,
		MaxTemp:               c.DefaultMaxTemp,
		MinTemp:               c.DefaultMinTemp,
		Temp:                  c.DefaultTemp,
		RelativeHumidity:      c.DefaultRelativeHumidity,
		Pressure:              c.DefaultPressure,
		Alpha:                 c.PTAlpha,
		GMorning:              c.PTGMorning,
		GNight:                c.PTGNight,
	}
}
