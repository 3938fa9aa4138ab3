// Package config loads runtime settings from ONIONOO_* environment variables.
//
// The details endpoint URL is intentionally not part of the configuration.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"

	"ikedadada/go-onionoo/internal/logging"
)

const envPrefix = "ONIONOO"

type Config struct {
	Timeout   time.Duration `envconfig:"TIMEOUT"    default:"30s"`
	MaxBytes  int64         `envconfig:"MAX_BYTES"  default:"67108864"`
	UserAgent string        `envconfig:"USER_AGENT" default:"go-onionoo/1.0"`
	LogLevel  string        `envconfig:"LOG_LEVEL"  default:"info"`
	LogFormat string        `envconfig:"LOG_FORMAT" default:"text"`
}

func Load() (Config, error) {
	var c Config
	if err := envconfig.Process(envPrefix, &c); err != nil {
		return Config{}, fmt.Errorf("parsing environment variables: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("invalid %s_TIMEOUT: must be positive, got %s", envPrefix, c.Timeout)
	}
	if c.MaxBytes <= 0 {
		return fmt.Errorf("invalid %s_MAX_BYTES: must be positive, got %d", envPrefix, c.MaxBytes)
	}
	if c.UserAgent == "" {
		return fmt.Errorf("invalid %s_USER_AGENT: cannot be empty", envPrefix)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid %s_LOG_LEVEL: %w", envPrefix, err)
	}
	switch c.LogFormat {
	case logging.FormatText, logging.FormatJSON:
	default:
		return fmt.Errorf("invalid %s_LOG_FORMAT %q: want text or json", envPrefix, c.LogFormat)
	}
	return nil
}
