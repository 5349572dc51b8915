package config

import (
	"fmt"
	"time"

	"github.com/kbukum/tinyioc/errors"
	"github.com/kbukum/tinyioc/logger"
)

// Settings is the configuration of a container host.
//
//	base:
//	  name: billing
//	logging:
//	  level: debug
//	telemetry:
//	  enabled: true
//	  endpoint: otel-collector:4318
//	services:
//	  mailer:
//	    host: smtp.internal
type Settings struct {
	Base      BaseConfig      `yaml:"base" mapstructure:"base"`
	Logging   logger.Config   `yaml:"logging" mapstructure:"logging"`
	Telemetry TelemetryConfig `yaml:"telemetry" mapstructure:"telemetry"`

	// Services holds producer arguments keyed by service name.
	Services map[string]any `yaml:"services" mapstructure:"services"`
}

// TelemetryConfig configures OpenTelemetry export of registry traces and metrics.
type TelemetryConfig struct {
	Enabled        bool          `yaml:"enabled" mapstructure:"enabled"`
	Endpoint       string        `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure       bool          `yaml:"insecure" mapstructure:"insecure"`
	SampleRate     float64       `yaml:"sample_rate" mapstructure:"sample_rate"`
	MetricInterval time.Duration `yaml:"metric_interval" mapstructure:"metric_interval"`
}

// ApplyDefaults applies default values to every section.
func (s *Settings) ApplyDefaults() {
	s.Base.ApplyDefaults()
	s.Logging.ApplyDefaults()
	if s.Telemetry.Endpoint == "" {
		s.Telemetry.Endpoint = "localhost:4318"
	}
	if s.Telemetry.SampleRate == 0 {
		s.Telemetry.SampleRate = 1.0
	}
	if s.Telemetry.MetricInterval == 0 {
		s.Telemetry.MetricInterval = 15 * time.Second
	}
}

// Validate validates every section.
func (s *Settings) Validate() error {
	if err := s.Base.Validate(); err != nil {
		return err
	}
	if err := s.Logging.Validate(); err != nil {
		return errors.InvalidConfig(err.Error()).WithDetail("section", "logging")
	}
	if s.Telemetry.SampleRate < 0 || s.Telemetry.SampleRate > 1 {
		return errors.InvalidConfig(
			fmt.Sprintf("telemetry.sample_rate must be between 0 and 1 (got: %v)", s.Telemetry.SampleRate),
		).WithDetail("section", "telemetry")
	}
	for name, v := range s.Services {
		if _, ok := v.(map[string]any); !ok && v != nil {
			return errors.InvalidConfig(
				fmt.Sprintf("services.%s must be a mapping (got: %T)", name, v),
			).WithDetail("section", "services")
		}
	}
	return nil
}

// ServiceArgs returns the producer arguments configured for name, or nil.
func (s *Settings) ServiceArgs(name string) map[string]any {
	if args, ok := s.Services[name].(map[string]any); ok {
		return args
	}
	return nil
}
