package transcribe

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrValidation is returned for uploads the caller can fix.
	ErrValidation = errors.New("validation error")
	// ErrStorage is returned when the upload cannot be persisted.
	ErrStorage = errors.New("storage error")
	// ErrSubmission is returned when a transcription job cannot be started.
	ErrSubmission = errors.New("submission error")
	// ErrJobStatus is returned when the job status cannot be queried.
	ErrJobStatus = errors.New("job status error")
	// ErrJobFailed is returned when the transcription service gives up on a job.
	ErrJobFailed = errors.New("transcription job failed")
	// ErrTimeout is returned when polling exhausts its attempts.
	ErrTimeout = errors.New("transcription timeout exceeded")
	// ErrContentNotFound is returned when the job output is missing or empty.
	ErrContentNotFound = errors.New("transcription content not found")
	// ErrContentParse is returned when the job output is not a transcript payload.
	ErrContentParse = errors.New("transcription content parse error")
	// ErrEnrichmentService is returned when the generative service cannot be reached.
	ErrEnrichmentService = errors.New("enrichment service error")
	// ErrEnrichmentParse is returned when the generative service answers in an unexpected shape.
	ErrEnrichmentParse = errors.New("enrichment parse error")
)

const (
	StageValidation = "validation"
	StageUpload     = "upload"
	StageSubmission = "submission"
	StagePolling    = "polling"
	StageFetch      = "fetch"
	StageEnrichment = "enrichment"
)

// PipelineError is a stage-aware error. It matches both its Kind and the
// underlying cause with errors.Is.
type PipelineError struct {
	Stage   string
	Kind    error
	Message string
	Err     error
}

func (e *PipelineError) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Message
	if msg == "" && e.Kind != nil {
		msg = e.Kind.Error()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Stage, msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Stage, msg)
}

func (e *PipelineError) Unwrap() []error {
	if e == nil {
		return nil
	}
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func stageError(stage string, kind error, message string, err error) *PipelineError {
	return &PipelineError{Stage: stage, Kind: kind, Message: message, Err: err}
}

// StatusCode maps a pipeline error to the HTTP status reported to callers.
func StatusCode(err error) int {
	if errors.Is(err, ErrValidation) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Message returns the caller-facing message for err.
func Message(err error) string {
	var pe *PipelineError
	if errors.As(err, &pe) && pe.Message != "" {
		return pe.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
