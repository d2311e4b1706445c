package api

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// File is one stored document and its processing state.
type File struct {
	ID             string    `json:"id"`
	BucketID       string    `json:"bucket_id"`
	Name           string    `json:"name"`
	OriginalName   string    `json:"original_name"`
	MimeType       string    `json:"mime_type"`
	SizeBytes      int64     `json:"size_bytes"`
	Status         string    `json:"status"`
	StatusMessage  string    `json:"status_message,omitempty"`
	PageCount      int       `json:"page_count,omitempty"`
	WordCount      int       `json:"word_count,omitempty"`
	FolderPath     string    `json:"folder_path,omitempty"`
	Source         string    `json:"source,omitempty"`
	UploadedByName string    `json:"uploaded_by_name,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// FilesPage is one page of a bucket's file listing.
type FilesPage struct {
	Files []File `json:"files"`
	Total int    `json:"total"`
}

// UploadResult reports the outcome of one file upload.
type UploadResult struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// SearchResult is one match from keyword or semantic search.
type SearchResult struct {
	FileID         string  `json:"file_id"`
	FileName       string  `json:"file_name"`
	MatchType      string  `json:"match_type"`
	Content        string  `json:"content"`
	ChunkID        string  `json:"chunk_id,omitempty"`
	SummaryID      string  `json:"summary_id,omitempty"`
	RelevanceScore float64 `json:"relevance_score,omitempty"`
}

// SearchPage is the result set of one search.
type SearchPage struct {
	Query   string         `json:"query"`
	Results []SearchResult `json:"results"`
	Total   int            `json:"total"`
}

// Files lists the files in a bucket.
func (c *Client) Files(ctx context.Context, bucketID string) (*FilesPage, error) {
	var out FilesPage
	if err := c.doJSON(ctx, http.MethodGet, "/api/buckets/"+bucketID+"/files", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Upload streams one local file into a bucket as a multipart form. The
// returned status is usually "processing"; the server extracts and indexes
// the content asynchronously.
func (c *Client) Upload(ctx context.Context, bucketID, path string) (*UploadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	return c.UploadReader(ctx, bucketID, filepath.Base(path), f)
}

// UploadReader uploads arbitrary content as a named file. The body is
// streamed through an io.Pipe so large files never buffer fully in memory.
func (c *Client) UploadReader(ctx context.Context, bucketID, name string, src io.Reader) (*UploadResult, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		part, err := mw.CreateFormFile("file", name)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, src); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	req, err := c.newRequest(ctx, http.MethodPost, "/api/buckets/"+bucketID+"/upload", pr)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	c.logger.Debug("uploading file", "bucket", bucketID, "name", name)

	resp, err := c.httpc.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeError(resp)
	}

	var out UploadResult
	if err := decodeBody(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FileContent fetches a file's extracted text and summary.
func (c *Client) FileContent(ctx context.Context, bucketID, fileID string) (map[string]any, error) {
	var out map[string]any
	path := "/api/buckets/" + bucketID + "/files/" + fileID + "/content"
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateSummary replaces a file's stored summary.
func (c *Client) UpdateSummary(ctx context.Context, bucketID, fileID, content string) error {
	path := "/api/buckets/" + bucketID + "/files/" + fileID + "/summary"
	return c.doJSON(ctx, http.MethodPut, path, map[string]string{"content": content}, nil)
}

// Search runs a keyword search over a bucket's chunks, summaries and
// file names.
func (c *Client) Search(ctx context.Context, bucketID, query string) (*SearchPage, error) {
	var out SearchPage
	path := "/api/buckets/" + bucketID + "/search?q=" + url.QueryEscape(query)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SemanticSearch runs an embedding-based search over a bucket.
func (c *Client) SemanticSearch(ctx context.Context, bucketID, query string) (*SearchPage, error) {
	var out SearchPage
	path := "/api/buckets/" + bucketID + "/semantic-search?q=" + url.QueryEscape(query)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteFile removes one file from a bucket.
func (c *Client) DeleteFile(ctx context.Context, bucketID, fileID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/buckets/"+bucketID+"/files/"+fileID, nil, nil)
}
