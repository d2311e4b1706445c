package api

import (
	"context"
	"net/http"
	"time"
)

// APIKey describes one key. Only the prefix is ever returned after creation.
type APIKey struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	KeyPrefix      string     `json:"key_prefix"`
	Scopes         []string   `json:"scopes"`
	AllowedBuckets []string   `json:"allowed_buckets,omitempty"`
	IsActive       bool       `json:"is_active"`
	LastUsedAt     *time.Time `json:"last_used_at,omitempty"`
	RequestCount   int        `json:"request_count"`
	CreatedAt      time.Time  `json:"created_at"`
}

// CreatedAPIKey is the creation response. APIKey holds the full secret and
// is shown only once.
type CreatedAPIKey struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	APIKey  string  `json:"api_key,omitempty"`
	KeyData *APIKey `json:"key_data,omitempty"`
}

type createAPIKeyRequest struct {
	Name           string   `json:"name"`
	Scopes         []string `json:"scopes"`
	AllowedBuckets []string `json:"allowed_buckets,omitempty"`
}

// CreateAPIKey mints a new key. Scopes are any of "read", "write", "delete";
// nil allowedBuckets grants access to all buckets.
func (c *Client) CreateAPIKey(ctx context.Context, name string, scopes, allowedBuckets []string) (*CreatedAPIKey, error) {
	if len(scopes) == 0 {
		scopes = []string{"read"}
	}
	var out CreatedAPIKey
	err := c.doJSON(ctx, http.MethodPost, "/api/api-keys/", createAPIKeyRequest{
		Name:           name,
		Scopes:         scopes,
		AllowedBuckets: allowedBuckets,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// APIKeys lists the account's keys.
func (c *Client) APIKeys(ctx context.Context) ([]APIKey, error) {
	var out struct {
		Keys  []APIKey `json:"keys"`
		Total int      `json:"total"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/api-keys/", nil, &out); err != nil {
		return nil, err
	}
	return out.Keys, nil
}

// DeleteAPIKey revokes one key.
func (c *Client) DeleteAPIKey(ctx context.Context, keyID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/api-keys/"+keyID, nil, nil)
}
