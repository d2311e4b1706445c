package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/jutt313/aiveilix-go/pkg/dotdir"
)

// InitViper creates and returns a configured *viper.Viper.
// It sets defaults from NewDefaultConfig(), reads the config.toml file
// (if found via dotdir resolution), and binds environment variables
// with the VEILIX_ prefix.
//
// Config precedence (highest to lowest):
//  1. CLI flags (once bound by the command layer)
//  2. Environment variables (VEILIX_API_TARGET, VEILIX_LOGGING_DEBUG, etc.)
//  3. config.toml file values
//  4. Defaults from NewDefaultConfig()
func InitViper(configDir string) (*viper.Viper, error) {
	v := viper.New()

	// 1. Register all defaults from NewDefaultConfig().
	setViperDefaults(v)

	// 2. Config file discovery via dotdir resolution.
	v.SetConfigName("config")
	v.SetConfigType("toml")

	ddm := dotdir.NewManager()
	target, err := ddm.Target(configDir)
	if err != nil {
		return nil, fmt.Errorf("resolving config dir: %w", err)
	}

	if target != "" {
		v.AddConfigPath(target)
	}

	if err := v.ReadInConfig(); err != nil {
		// Config file not found errors are fine, defaults will apply.
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	// 3. Environment variables: VEILIX_API_TARGET, VEILIX_CHAT_DEFAULT_BUCKET, etc.
	v.SetEnvPrefix("VEILIX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v, nil
}

// setViperDefaults registers defaults from NewDefaultConfig() into viper
// using dotted-key notation. This keeps defaults.go as the single source of truth.
func setViperDefaults(v *viper.Viper) {
	d := NewDefaultConfig()

	v.SetDefault("version", d.Version)

	// API
	v.SetDefault("api.target", d.API.Target)

	// Client
	v.SetDefault("client.timeout_seconds", d.Client.TimeoutSeconds)

	// Chat
	v.SetDefault("chat.default_bucket", d.Chat.DefaultBucket)

	// History
	v.SetDefault("history.enabled", d.History.Enabled)
	v.SetDefault("history.sqlite_path", d.History.SQLitePath)

	// Logging
	v.SetDefault("logging.debug", d.Logging.Debug)
}
