package transcribe

import (
	"context"
	"errors"

	"github.com/Parag0712/levalsupermind/internal/model"
)

// PutObjectInput describes one object write
type PutObjectInput struct {
	Bucket             string
	Key                string
	Body               []byte
	ContentType        string
	ContentDisposition string
	CacheControl       string
}

// ErrObjectNotFound is wrapped by ObjectStore.Get when the key does not exist.
var ErrObjectNotFound = errors.New("object not found")

// ObjectStore persists and reads raw objects
type ObjectStore interface {
	Put(ctx context.Context, in PutObjectInput) error
	Get(ctx context.Context, bucket, key string) ([]byte, error)
}

// TranscriptionService starts and inspects asynchronous transcription jobs
type TranscriptionService interface {
	StartJob(ctx context.Context, req model.JobRequest) error
	GetJobStatus(ctx context.Context, jobName string) (model.TranscriptionJob, error)
}

// Enricher turns a transcript into blog metadata
type Enricher interface {
	Enrich(ctx context.Context, transcript string) (*model.EnrichmentDraft, error)
}
