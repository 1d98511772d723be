package jobs

import (
	"context"
	"errors"
	"time"
)

// JobType represents the type of job to be executed.
type JobType string

const (
	// JobTypeParseReturnFile represents a return file ingestion job.
	JobTypeParseReturnFile JobType = "parse_return_file"
)

// JobStatus represents the current status of a job.
type JobStatus string

const (
	// JobStatusPending indicates the job is waiting to be processed.
	JobStatusPending JobStatus = "pending"
	// JobStatusRunning indicates the job is currently being processed.
	JobStatusRunning JobStatus = "running"
	// JobStatusCompleted indicates the job completed successfully.
	JobStatusCompleted JobStatus = "completed"
	// JobStatusFailed indicates the job failed.
	JobStatusFailed JobStatus = "failed"
	// JobStatusRetrying indicates the job failed and is being retried.
	JobStatusRetrying JobStatus = "retrying"
)

// ParseReturnFileJob asks a worker to ingest one return file.
type ParseReturnFileJob struct {
	// JobID is the unique identifier for this job.
	JobID string `json:"job_id"`

	// Source is a gs:// URI or a local path readable by the worker.
	Source string `json:"source"`

	// Force reprocesses a file already present in the ledger.
	Force bool `json:"force,omitempty"`

	// FileID and ParsingRunID are filled in once the file is ingested.
	FileID       string `json:"file_id,omitempty"`
	ParsingRunID string `json:"parsing_run_id,omitempty"`

	// Transactions is the number of transactions kept by the parser.
	Transactions int `json:"transactions"`

	// Skipped is set when the file was already ingested.
	Skipped bool `json:"skipped,omitempty"`

	// Status is the current status of the job.
	Status JobStatus `json:"status"`

	CreatedAt   time.Time  `json:"created_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	// Error contains error details if the job failed.
	Error string `json:"error,omitempty"`

	RetryCount int `json:"retry_count"`
	MaxRetries int `json:"max_retries"`
}

// Job is a generic interface for all job types.
type Job interface {
	GetID() string
	GetType() JobType
	GetStatus() JobStatus
}

// GetID implements the Job interface.
func (j *ParseReturnFileJob) GetID() string {
	return j.JobID
}

// GetType implements the Job interface.
func (j *ParseReturnFileJob) GetType() JobType {
	return JobTypeParseReturnFile
}

// GetStatus implements the Job interface.
func (j *ParseReturnFileJob) GetStatus() JobStatus {
	return j.Status
}

// Publisher defines the interface for publishing jobs to a queue.
type Publisher interface {
	// PublishParseReturnFile publishes a return file ingestion job.
	PublishParseReturnFile(ctx context.Context, job *ParseReturnFileJob) error

	// Close closes the publisher and releases resources.
	Close() error
}

// Consumer defines the interface for consuming jobs from a queue.
type Consumer interface {
	// Start begins consuming jobs from the queue.
	// The handler function is called for each job received.
	Start(ctx context.Context, handler JobHandler) error

	// Stop stops consuming jobs and waits for in-flight jobs to complete.
	Stop(ctx context.Context) error
}

// JobHandler is a function that processes a job.
// It should return an error if the job failed and should be retried.
// Errors wrapped with Permanent are not retried.
type JobHandler func(ctx context.Context, job Job) error

// JobStore defines the interface for storing and retrieving job status.
type JobStore interface {
	// SaveJob saves or updates a job's state.
	SaveJob(ctx context.Context, job *ParseReturnFileJob) error

	// GetJob retrieves a job by ID. Missing jobs yield ErrJobNotFound.
	GetJob(ctx context.Context, jobID string) (*ParseReturnFileJob, error)

	// ListJobs retrieves jobs with optional filtering, newest first.
	ListJobs(ctx context.Context, filter JobFilter) ([]*ParseReturnFileJob, error)

	// UpdateJobStatus updates the status of a job.
	UpdateJobStatus(ctx context.Context, jobID string, status JobStatus, errorMsg string) error
}

// JobFilter defines filtering criteria for listing jobs.
type JobFilter struct {
	// Source filters jobs by source URI or path.
	Source string

	// Status filters jobs by status.
	Status JobStatus

	Limit  int
	Offset int
}

// ErrJobNotFound is returned by JobStore.GetJob for unknown ids.
var ErrJobNotFound = errors.New("job not found")

// PermanentError marks a job failure that retrying cannot fix, such as a
// structurally broken return file.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return e.Err.Error() }

func (e *PermanentError) Unwrap() error { return e.Err }

// Permanent wraps err so the queue fails the job without retrying.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &PermanentError{Err: err}
}

// IsPermanent reports whether err was wrapped with Permanent.
func IsPermanent(err error) bool {
	var p *PermanentError
	return errors.As(err, &p)
}
