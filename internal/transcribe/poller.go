package transcribe

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/Parag0712/levalsupermind/internal/model"
)

// ResultFetcher reads a completed job's output
type ResultFetcher interface {
	Fetch(ctx context.Context, bucket, jobName string) (*model.TranscriptionResult, error)
}

// PollResult is what the poller returns once a job's output has been read
type PollResult struct {
	Job      model.TranscriptionJob
	Result   *model.TranscriptionResult
	State    model.JobState
	Attempts int
}

// Poller waits for a transcription job to reach a terminal state.
//
// The outer loop follows the job status with exponential backoff. Once the
// job is COMPLETED the inner step reads its output; an output that is not
// visible yet sends the loop back to polling instead of failing the job.
type Poller struct {
	service TranscriptionService
	fetcher ResultFetcher
	policy  PollPolicy
	sleep   func(ctx context.Context, d time.Duration) error
	onState func(jobName string, state model.JobState)
}

// NewPoller creates a poller. Zero fields of policy take the defaults.
func NewPoller(service TranscriptionService, fetcher ResultFetcher, policy PollPolicy) *Poller {
	return &Poller{
		service: service,
		fetcher: fetcher,
		policy:  policy.withDefaults(),
		sleep:   sleepContext,
	}
}

// OnState registers a callback invoked on every state transition.
func (p *Poller) OnState(fn func(jobName string, state model.JobState)) {
	p.onState = fn
}

// Policy returns the effective polling policy.
func (p *Poller) Policy() PollPolicy {
	return p.policy
}

// Poll blocks until the job's output has been read, the job failed, the
// attempts ran out or ctx is done.
func (p *Poller) Poll(ctx context.Context, jobName, bucket string) (*PollResult, error) {
	p.emit(jobName, model.JobStateSubmitted)

	attempts := 0
	delay := p.policy.Backoff.Base
	var lastContentErr error

	p.emit(jobName, model.JobStatePolling)
	for attempts < p.policy.MaxAttempts {
		job, err := p.service.GetJobStatus(ctx, jobName)
		if err != nil {
			log.Printf("[Poller] Failed to query job %s: %v", jobName, err)
			return nil, stageError(StagePolling, ErrJobStatus, "Failed to query transcription job status", err)
		}

		switch job.Status {
		case model.JobStatusCompleted:
			result, err := p.collect(ctx, bucket, jobName)
			if err == nil {
				p.emit(jobName, model.JobStateCompleted)
				return &PollResult{
					Job:      job,
					Result:   result,
					State:    model.JobStateCompleted,
					Attempts: attempts + 1,
				}, nil
			}
			if !isTransientContentError(err) {
				return nil, err
			}
			lastContentErr = err
			log.Printf("[Poller] Job %s completed, waiting for output to become available: %v", jobName, err)

		case model.JobStatusQueued, model.JobStatusInProgress:
			log.Printf("[Poller] Job %s is %s (attempt %d/%d)", jobName, job.Status, attempts+1, p.policy.MaxAttempts)

		case model.JobStatusFailed:
			p.emit(jobName, model.JobStateFailed)
			msg := "Transcription job failed"
			if job.FailureReason != "" {
				msg = msg + ": " + job.FailureReason
			}
			log.Printf("[Poller] Job %s failed: %s", jobName, job.FailureReason)
			return nil, stageError(StagePolling, ErrJobFailed, msg, nil)
		}

		attempts++
		if attempts >= p.policy.MaxAttempts {
			break
		}
		if err := p.sleep(ctx, delay); err != nil {
			return nil, stageError(StagePolling, err, "Transcription polling cancelled", nil)
		}
		delay = p.policy.Backoff.Next(delay)
	}

	p.emit(jobName, model.JobStateTimedOut)
	log.Printf("[Poller] Job %s timed out after %d attempts", jobName, attempts)
	return nil, stageError(StagePolling, ErrTimeout, "Transcription timeout exceeded", lastContentErr)
}

// collect waits the grace period and reads the job output once.
func (p *Poller) collect(ctx context.Context, bucket, jobName string) (*model.TranscriptionResult, error) {
	if p.policy.Grace > 0 {
		if err := p.sleep(ctx, p.policy.Grace); err != nil {
			return nil, stageError(StagePolling, err, "Transcription polling cancelled", nil)
		}
	}
	return p.fetcher.Fetch(ctx, bucket, jobName)
}

func (p *Poller) emit(jobName string, state model.JobState) {
	if p.onState != nil {
		p.onState(jobName, state)
	}
}

// isTransientContentError reports whether the output may appear on a later
// read. Only a missing or empty object qualifies. Unlike the service this
// pipeline replaced, which retried every content error, a payload that does
// not parse or a store that refuses the read fails the job at once instead
// of polling until the timeout.
func isTransientContentError(err error) bool {
	return errors.Is(err, ErrContentNotFound)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
