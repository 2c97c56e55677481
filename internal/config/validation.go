package config

import (
	"fmt"

	"github.com/Cyclone1070/hostos/internal/host/buffer"
)

// Validate checks config values for correctness.
// Returns an error listing every invalid value.
func (c *Config) Validate() error {
	var errs []string

	// Host validation
	if c.Host.FileMode == 0 || c.Host.FileMode > 0o777 {
		errs = append(errs, "host.file_mode must be between 1 and 0777")
	}
	if _, err := buffer.ParsePolicy(c.Host.InvalidUTF8); err != nil {
		errs = append(errs, "host.invalid_utf8 must be \"replace\" or \"reject\"")
	}
	if c.Host.BinarySampleSize < 1 {
		errs = append(errs, "host.binary_sample_size must be >= 1")
	}

	// Log validation
	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, "log.level must be one of debug, info, warn, error")
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		errs = append(errs, "log.format must be \"text\" or \"json\"")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %v", errs)
	}

	return nil
}
