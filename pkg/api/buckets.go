package api

import (
	"context"
	"net/http"
	"time"
)

// Bucket is one knowledge bucket.
type Bucket struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	IsPrivate      bool      `json:"is_private"`
	FileCount      int       `json:"file_count"`
	TotalSizeBytes int64     `json:"total_size_bytes"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// BucketsPage is one page of the bucket listing.
type BucketsPage struct {
	Buckets []Bucket `json:"buckets"`
	Total   int      `json:"total"`
}

// DashboardStats aggregates account-wide storage numbers.
type DashboardStats struct {
	TotalBuckets      int   `json:"total_buckets"`
	TotalFiles        int   `json:"total_files"`
	TotalStorageBytes int64 `json:"total_storage_bytes"`
}

// ActivityPoint is one day of account activity. Storage is megabytes.
type ActivityPoint struct {
	Date    string  `json:"date"`
	Files   int     `json:"files"`
	Buckets int     `json:"buckets"`
	Storage float64 `json:"storage"`
}

// Buckets lists all buckets visible to the account.
func (c *Client) Buckets(ctx context.Context) (*BucketsPage, error) {
	var out BucketsPage
	if err := c.doJSON(ctx, http.MethodGet, "/api/buckets/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateBucket creates a bucket with the given name and optional description.
func (c *Client) CreateBucket(ctx context.Context, name, description string) (*Bucket, error) {
	var out Bucket
	err := c.doJSON(ctx, http.MethodPost, "/api/buckets/", map[string]string{
		"name":        name,
		"description": description,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Bucket fetches one bucket by id.
func (c *Client) Bucket(ctx context.Context, bucketID string) (*Bucket, error) {
	var out Bucket
	if err := c.doJSON(ctx, http.MethodGet, "/api/buckets/"+bucketID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteBucket removes a bucket and everything in it.
func (c *Client) DeleteBucket(ctx context.Context, bucketID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/buckets/"+bucketID, nil, nil)
}

// DeleteAllBuckets removes every bucket on the account. The password is
// required as confirmation.
func (c *Client) DeleteAllBuckets(ctx context.Context, password string) error {
	return c.doJSON(ctx, http.MethodPost, "/api/buckets/delete-all", map[string]string{
		"password": password,
	}, nil)
}

// DashboardStats returns account-wide bucket, file and storage totals.
func (c *Client) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	var out DashboardStats
	if err := c.doJSON(ctx, http.MethodGet, "/api/buckets/stats/dashboard", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ActivityData returns the recent per-day activity series.
func (c *Client) ActivityData(ctx context.Context) ([]ActivityPoint, error) {
	var out struct {
		Data []ActivityPoint `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/buckets/stats/activity", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}
