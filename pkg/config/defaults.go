package config

const (
	defaultAPITarget      = "https://api.aiveilix.com"
	defaultTimeoutSeconds = 60

	defaultHistoryDB = "history.db"
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	return &Config{
		Version: CurrentV,
		API: APIConfig{
			Target: defaultAPITarget,
		},
		Client: ClientConfig{
			TimeoutSeconds: defaultTimeoutSeconds,
		},
		History: HistoryConfig{
			Enabled:    true,
			SQLitePath: defaultHistoryDB,
		},
	}
}
