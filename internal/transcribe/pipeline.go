package transcribe

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Parag0712/levalsupermind/internal/model"
)

// Pipeline runs validate -> upload -> submit -> poll -> fetch -> enrich for
// one file. Stages run strictly in order; the first failure ends the run.
type Pipeline struct {
	uploader       *Uploader
	submitter      *Submitter
	poller         *Poller
	enricher       Enricher
	maxUploadBytes int64
}

// Options wires the pipeline stages
type Options struct {
	Uploader       *Uploader
	Submitter      *Submitter
	Poller         *Poller
	Enricher       Enricher
	MaxUploadBytes int64
}

// NewPipeline checks that every stage is present.
func NewPipeline(opts Options) (*Pipeline, error) {
	switch {
	case opts.Uploader == nil:
		return nil, fmt.Errorf("pipeline: uploader is required")
	case opts.Submitter == nil:
		return nil, fmt.Errorf("pipeline: submitter is required")
	case opts.Poller == nil:
		return nil, fmt.Errorf("pipeline: poller is required")
	case opts.Enricher == nil:
		return nil, fmt.Errorf("pipeline: enricher is required")
	}
	maxBytes := opts.MaxUploadBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	return &Pipeline{
		uploader:       opts.Uploader,
		submitter:      opts.Submitter,
		poller:         opts.Poller,
		enricher:       opts.Enricher,
		maxUploadBytes: maxBytes,
	}, nil
}

// MaxUploadBytes returns the upload size limit enforced by the validator.
func (p *Pipeline) MaxUploadBytes() int64 {
	return p.maxUploadBytes
}

// Transcribe turns an uploaded file into a blog draft.
//
// Uploaded objects and started jobs are left in place when a later stage
// fails; they are logged so storage lifecycle rules can reclaim them.
func (p *Pipeline) Transcribe(ctx context.Context, file []byte, filename, mimeType string) (*model.TranscriptionOutcome, error) {
	startTime := time.Now()
	req := model.UploadRequest{
		Data:     file,
		Filename: filename,
		MIMEType: mimeType,
		Size:     int64(len(file)),
	}

	if err := Validate(req, p.maxUploadBytes); err != nil {
		log.Printf("[Pipeline] Rejected %q (%s, %d bytes): %v", filename, mimeType, req.Size, err)
		return nil, err
	}

	if err := between(ctx, StageUpload); err != nil {
		return nil, err
	}
	ref, err := p.uploader.Upload(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := between(ctx, StageSubmission); err != nil {
		logOrphan(ref, "")
		return nil, err
	}
	job, err := p.submitter.Submit(ctx, ref.URL)
	if err != nil {
		logOrphan(ref, "")
		return nil, err
	}

	if err := between(ctx, StagePolling); err != nil {
		logOrphan(ref, job.Name)
		return nil, err
	}
	polled, err := p.poller.Poll(ctx, job.Name, job.OutputBucket)
	if err != nil {
		logOrphan(ref, job.Name)
		return nil, err
	}

	transcript := polled.Result.Text()
	log.Printf("[Pipeline] Job %s produced %d characters of transcript after %d polls",
		job.Name, len(transcript), polled.Attempts)

	if err := between(ctx, StageEnrichment); err != nil {
		logOrphan(ref, job.Name)
		return nil, err
	}
	draft, err := p.enricher.Enrich(ctx, transcript)
	if err != nil {
		return nil, asEnrichmentError(err)
	}
	draft.Transcript = transcript

	log.Printf("[Pipeline] Completed %q in %v", filename, time.Since(startTime))
	return &model.TranscriptionOutcome{
		EnrichmentDraft:  *draft,
		FileURL:          ref.URL,
		JobName:          job.Name,
		TranscriptionURL: polled.Job.TranscriptURI,
	}, nil
}

// between stops the run when the caller has gone away before the next stage.
func between(ctx context.Context, next string) error {
	if err := ctx.Err(); err != nil {
		return stageError(next, err, "Request cancelled before "+next, nil)
	}
	return nil
}

func asEnrichmentError(err error) error {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return err
	}
	return stageError(StageEnrichment, ErrEnrichmentService, "Failed to generate blog draft", err)
}

func logOrphan(ref model.StoredObjectRef, jobName string) {
	if jobName == "" {
		log.Printf("[Pipeline] Leaving uploaded object s3://%s/%s in place", ref.Bucket, ref.Key)
		return
	}
	log.Printf("[Pipeline] Leaving uploaded object s3://%s/%s and job %s in place", ref.Bucket, ref.Key, jobName)
}
