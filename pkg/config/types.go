package config

import (
	"fmt"
	"strconv"
)

// Config represents the persistent memcon configuration stored as config.toml
// in the .memcon/ directory. The TOML layout uses sections for logical grouping.
type Config struct {
	Version int           `toml:"version"`
	Client  ClientConfig  `toml:"client"`
	Health  HealthConfig  `toml:"health"`
	Console ConsoleConfig `toml:"console"`
}

// ClientConfig holds settings for connecting to the running extraction API.
// APITarget is a full URL (scheme + host + port).
type ClientConfig struct {
	APITarget      string `toml:"api_target,omitempty"`
	TimeoutSeconds uint   `toml:"timeout_seconds,omitempty"`
}

// HealthConfig holds background health polling settings.
type HealthConfig struct {
	IntervalSeconds uint `toml:"interval_seconds,omitempty"`
}

// ConsoleConfig holds interactive console display settings.
type ConsoleConfig struct {
	Sort string `toml:"sort,omitempty"`
}

// configKeyInfo maps a user-facing dotted key name to a getter and setter on *Config.
type configKeyInfo struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

// configKeys is the authoritative map of all supported config keys.
// Keys use dotted notation matching the TOML section structure.
var configKeys = map[string]configKeyInfo{
	"client.api_target": {
		get: func(c *Config) string { return c.Client.APITarget },
		set: func(c *Config, v string) error { c.Client.APITarget = v; return nil },
	},
	"client.timeout_seconds": {
		get: func(c *Config) string {
			if c.Client.TimeoutSeconds == 0 {
				return ""
			}
			return strconv.FormatUint(uint64(c.Client.TimeoutSeconds), 10)
		},
		set: func(c *Config, v string) error {
			n, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid value for client.timeout_seconds: %w", err)
			}
			c.Client.TimeoutSeconds = uint(n)
			return nil
		},
	},
	"health.interval_seconds": {
		get: func(c *Config) string {
			if c.Health.IntervalSeconds == 0 {
				return ""
			}
			return strconv.FormatUint(uint64(c.Health.IntervalSeconds), 10)
		},
		set: func(c *Config, v string) error {
			n, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid value for health.interval_seconds: %w", err)
			}
			c.Health.IntervalSeconds = uint(n)
			return nil
		},
	},
	"console.sort": {
		get: func(c *Config) string { return c.Console.Sort },
		set: func(c *Config, v string) error {
			switch v {
			case "created_at", "updated_at", "confidence":
				c.Console.Sort = v
				return nil
			default:
				return fmt.Errorf("invalid value for console.sort: %q (available: created_at, updated_at, confidence)", v)
			}
		},
	},
}
