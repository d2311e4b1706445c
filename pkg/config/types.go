package config

import (
	"fmt"
	"strconv"
)

// Config represents the persistent veilix configuration stored as config.toml
// in the .veilix/ directory. The TOML layout uses sections for logical grouping.
type Config struct {
	Version int           `toml:"version"`
	API     APIConfig     `toml:"api"`
	Client  ClientConfig  `toml:"client"`
	Chat    ChatConfig    `toml:"chat"`
	History HistoryConfig `toml:"history"`
	Logging LoggingConfig `toml:"logging"`
}

// APIConfig holds the AIVEILIX deployment to talk to.
// Target is a full URL (scheme + host).
type APIConfig struct {
	Target string `toml:"target,omitempty"`
}

// ClientConfig holds HTTP client settings.
type ClientConfig struct {
	TimeoutSeconds int `toml:"timeout_seconds,omitempty"`
}

// ChatConfig holds chat command settings.
type ChatConfig struct {
	DefaultBucket string `toml:"default_bucket,omitempty"`
}

// HistoryConfig holds local chat history settings. Enabled is persisted even
// when false so an explicit opt-out survives the viper default of true.
type HistoryConfig struct {
	Enabled    bool   `toml:"enabled"`
	SQLitePath string `toml:"sqlite_path,omitempty"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Debug bool `toml:"debug"`
}

// configKeyInfo maps a user-facing dotted key name to a getter and setter on *Config.
type configKeyInfo struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

// configKeys is the authoritative map of all supported config keys.
// Keys use dotted notation matching the TOML section structure.
var configKeys = map[string]configKeyInfo{
	"api.target": {
		get: func(c *Config) string { return c.API.Target },
		set: func(c *Config, v string) error { c.API.Target = v; return nil },
	},
	"client.timeout_seconds": {
		get: func(c *Config) string {
			if c.Client.TimeoutSeconds == 0 {
				return ""
			}
			return strconv.Itoa(c.Client.TimeoutSeconds)
		},
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				return fmt.Errorf("invalid value for client.timeout_seconds: %q", v)
			}
			c.Client.TimeoutSeconds = n
			return nil
		},
	},
	"chat.default_bucket": {
		get: func(c *Config) string { return c.Chat.DefaultBucket },
		set: func(c *Config, v string) error { c.Chat.DefaultBucket = v; return nil },
	},
	"history.enabled": {
		get: func(c *Config) string { return strconv.FormatBool(c.History.Enabled) },
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("invalid value for history.enabled: %w", err)
			}
			c.History.Enabled = b
			return nil
		},
	},
	"history.sqlite_path": {
		get: func(c *Config) string { return c.History.SQLitePath },
		set: func(c *Config, v string) error { c.History.SQLitePath = v; return nil },
	},
	"logging.debug": {
		get: func(c *Config) string { return strconv.FormatBool(c.Logging.Debug) },
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("invalid value for logging.debug: %w", err)
			}
			c.Logging.Debug = b
			return nil
		},
	},
}
