package credentials

// Credentials represents the stored AIVEILIX credentials in credentials.toml.
type Credentials struct {
	Version int     `toml:"version"`
	Account Account `toml:"account"`
}

// Account holds the signed-in account's session token and, optionally, a
// long-lived API key used for non-interactive access.
type Account struct {
	Email       string `toml:"email,omitempty"`
	AccessToken string `toml:"access_token,omitempty"`
	APIKey      string `toml:"api_key,omitempty"`
}
