package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/kbukum/tinyioc/errors"
)

// Environments lists the accepted values of base.environment.
var Environments = []string{"development", "staging", "production"}

// BaseConfig identifies the host process the container runs in. Name also
// labels the container's logger and telemetry resource.
type BaseConfig struct {
	Name        string `yaml:"name" mapstructure:"name"`
	Environment string `yaml:"environment" mapstructure:"environment"`
	Version     string `yaml:"version" mapstructure:"version"`
	Debug       bool   `yaml:"debug" mapstructure:"debug"`
}

// ApplyDefaults fills in the environment. Development turns on debug.
func (c *BaseConfig) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = Environments[0]
	}
	if c.Environment == "development" {
		c.Debug = true
	}
}

// Validate returns an INVALID_CONFIG error naming the offending base field.
func (c *BaseConfig) Validate() error {
	if c.Name == "" {
		return baseError("name", "base.name is required")
	}
	if !slices.Contains(Environments, c.Environment) {
		return baseError("environment", fmt.Sprintf("base.environment must be one of [%s] (got: %s)",
			strings.Join(Environments, ", "), c.Environment))
	}
	return nil
}

func baseError(field, reason string) error {
	return errors.InvalidConfig(reason).
		WithDetail("section", "base").
		WithDetail("field", field)
}
