package config

// Config holds all application configuration values.
// Defaults are set in DefaultConfig() and can be overridden via dotfile.
// NOTE: Values in config files override defaults, including explicit zero values.
// Missing keys are left at their default values.
type Config struct {
	Host HostConfig `json:"host"`
	Log  LogConfig  `json:"log"`
}

type HostConfig struct {
	// File writes
	AtomicWrite bool     `json:"atomic_write"` // Default: true
	FileMode    FileMode `json:"file_mode"`    // Default: "0644", applied to newly created files

	// Text conversion
	InvalidUTF8 string `json:"invalid_utf8"` // Default: "replace" ("replace" or "reject")

	// Binary sniffing
	BinarySampleSize int `json:"binary_sample_size"` // Default: 8000
}

type LogConfig struct {
	Level  string `json:"level"`  // Default: "warn"
	Format string `json:"format"` // Default: "text" ("text" or "json")
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Host: HostConfig{
			AtomicWrite:      true,
			FileMode:         0o644,
			InvalidUTF8:      "replace",
			BinarySampleSize: 8000,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}
