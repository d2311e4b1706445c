package api

import (
	"context"
	"sync"
)

var (
	defaultUploadWorkers   = 3
	defaultUploadQueueSize = 64
)

// UploadJob is one file queued for upload.
type UploadJob struct {
	BucketID string
	Path     string
}

// UploadOutcome pairs an UploadJob with its result or error.
type UploadOutcome struct {
	Job    UploadJob
	Result *UploadResult
	Err    error
}

// UploaderConfig configures an Uploader pool.
type UploaderConfig struct {
	// Client performs the uploads.
	Client *Client

	// NumWorkers is the number of concurrent uploads (defaults to 3).
	NumWorkers int

	// QueueSize is the capacity of the buffered job channel (defaults to 64).
	QueueSize int

	// OnOutcome, when non-nil, receives each completed upload. Called from
	// worker goroutines.
	OnOutcome func(UploadOutcome)
}

// Uploader uploads files to buckets through a bounded worker pool, keeping
// batch uploads off the caller's hot path.
type Uploader struct {
	config *UploaderConfig
	queue  chan UploadJob
	wg     sync.WaitGroup
	ctx    context.Context
}

// NewUploader creates an Uploader and starts its worker goroutines. The
// context bounds every upload; cancelling it fails jobs still in flight.
func NewUploader(ctx context.Context, c *UploaderConfig) *Uploader {
	if c.NumWorkers <= 0 {
		c.NumWorkers = defaultUploadWorkers
	}
	if c.QueueSize <= 0 {
		c.QueueSize = defaultUploadQueueSize
	}

	u := &Uploader{
		config: c,
		queue:  make(chan UploadJob, c.QueueSize),
		ctx:    ctx,
	}

	u.wg.Add(c.NumWorkers)
	for i := 0; i < c.NumWorkers; i++ {
		go u.worker(i)
	}

	return u
}

// Enqueue submits a file for upload. Returns false when the queue is full
// and the job was dropped.
func (u *Uploader) Enqueue(job UploadJob) bool {
	select {
	case u.queue <- job:
		u.config.Client.logger.Debug("upload queued", "bucket", job.BucketID, "path", job.Path)
		return true
	default:
		u.config.Client.logger.Error("upload dropped, queue full", "bucket", job.BucketID, "path", job.Path)
		return false
	}
}

// Close stops accepting jobs and waits for in-flight uploads to drain.
func (u *Uploader) Close() {
	close(u.queue)
	u.wg.Wait()
}

func (u *Uploader) worker(id int) {
	defer u.wg.Done()
	u.config.Client.logger.Debug("upload worker started", "worker_id", id)

	for job := range u.queue {
		res, err := u.config.Client.Upload(u.ctx, job.BucketID, job.Path)
		if err != nil {
			u.config.Client.logger.Error("upload failed", "path", job.Path, "err", err)
		}
		if u.config.OnOutcome != nil {
			u.config.OnOutcome(UploadOutcome{Job: job, Result: res, Err: err})
		}
	}

	u.config.Client.logger.Debug("upload worker stopped", "worker_id", id)
}
