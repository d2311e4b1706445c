// Package credentials manages reading and writing credentials.toml in the
// .veilix/ directory. The file holds the signed-in account's access token and
// optional API key, and is written with 0600 permissions.
package credentials

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/jutt313/aiveilix-go/pkg/dotdir"
)

const (
	credentialsFile = "credentials.toml"

	currentVersion = 0

	// EnvToken and EnvAPIKey are consulted before the credentials file,
	// so CI and scripts can authenticate without a login.
	EnvToken  = "VEILIX_TOKEN"
	EnvAPIKey = "VEILIX_API_KEY"
)

// Manager manages reading and writing credentials.toml in the .veilix/ directory.
type Manager struct {
	ddm        *dotdir.Manager
	targetPath string
}

// NewManager creates a new credentials Manager. If override is non-empty it is
// used as the .veilix/ directory; otherwise the standard dotdir resolution
// applies.
func NewManager(override string) (*Manager, error) {
	mgr := &Manager{ddm: dotdir.NewManager()}

	target, err := mgr.ddm.Target(override)
	if err != nil {
		return nil, err
	}

	mgr.targetPath = filepath.Join(target, credentialsFile)

	return mgr, nil
}

// Load reads credentials.toml from the target directory.
// Returns empty Credentials if the file does not exist.
func (m *Manager) Load() (*Credentials, error) {
	data, err := os.ReadFile(m.targetPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Credentials{Version: currentVersion}, nil
		}
		return nil, fmt.Errorf("reading credentials: %w", err)
	}

	creds := &Credentials{}
	if err := toml.Unmarshal(data, creds); err != nil {
		return nil, fmt.Errorf("parsing credentials: %w", err)
	}

	return creds, nil
}

// Save writes credentials to credentials.toml with 0600 permissions.
func (m *Manager) Save(creds *Credentials) error {
	if creds == nil {
		return errors.New("cannot save nil credentials")
	}

	var buf bytes.Buffer
	encoder := toml.NewEncoder(&buf)
	if err := encoder.Encode(creds); err != nil {
		return fmt.Errorf("encoding credentials: %w", err)
	}

	if err := os.WriteFile(m.targetPath, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("writing credentials: %w", err)
	}

	return nil
}

// SetSession stores the access token and email for the signed-in account.
func (m *Manager) SetSession(email, accessToken string) error {
	creds, err := m.Load()
	if err != nil {
		return err
	}

	creds.Account.Email = email
	creds.Account.AccessToken = accessToken

	return m.Save(creds)
}

// SetAPIKey stores a long-lived API key.
func (m *Manager) SetAPIKey(key string) error {
	creds, err := m.Load()
	if err != nil {
		return err
	}

	creds.Account.APIKey = key

	return m.Save(creds)
}

// Token resolves the credential to authenticate requests with.
// Environment variables win over the stored file; the session access token
// wins over the API key.
func (m *Manager) Token() (string, error) {
	if t := os.Getenv(EnvToken); t != "" {
		return t, nil
	}
	if k := os.Getenv(EnvAPIKey); k != "" {
		return k, nil
	}

	creds, err := m.Load()
	if err != nil {
		return "", err
	}

	if creds.Account.AccessToken != "" {
		return creds.Account.AccessToken, nil
	}

	return creds.Account.APIKey, nil
}

// Email returns the stored account email, if any.
func (m *Manager) Email() (string, error) {
	creds, err := m.Load()
	if err != nil {
		return "", err
	}
	return creds.Account.Email, nil
}

// Clear removes the stored session token and email, keeping any API key.
func (m *Manager) Clear() error {
	creds, err := m.Load()
	if err != nil {
		return err
	}

	creds.Account.Email = ""
	creds.Account.AccessToken = ""

	return m.Save(creds)
}

// GetTarget returns the resolved path to the credentials file.
func (m *Manager) GetTarget() string {
	return m.targetPath
}
