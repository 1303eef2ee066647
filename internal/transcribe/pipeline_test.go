package transcribe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"testing"

	"github.com/Parag0712/levalsupermind/internal/model"
)

type pipelineFixture struct {
	store    *fakeStore
	svc      *fakeService
	enricher *fakeEnricher
	sleeps   *sleepRecorder
	pipeline *Pipeline
}

func newPipelineFixture(t *testing.T, statuses ...model.JobStatus) *pipelineFixture {
	t.Helper()

	f := &pipelineFixture{
		store: &fakeStore{getResp: []fakeGet{{body: []byte(sampleTranscriptJSON)}}},
		svc:   &fakeService{statuses: statuses},
		enricher: &fakeEnricher{draft: &model.EnrichmentDraft{
			Title:       "Welcome",
			Description: "An introduction to the show",
			Keywords:    []string{"show", "intro"},
		}},
	}

	uploader, err := NewUploader(f.store, "media-bucket", "us-east-1")
	if err != nil {
		t.Fatalf("uploader: %v", err)
	}
	submitter, err := NewSubmitter(f.svc, SubmitterConfig{OutputBucket: "media-bucket"})
	if err != nil {
		t.Fatalf("submitter: %v", err)
	}
	poller, sleeps := newTestPoller(f.svc, f.store, DefaultPollPolicy())
	f.sleeps = sleeps

	f.pipeline, err = NewPipeline(Options{
		Uploader:       uploader,
		Submitter:      submitter,
		Poller:         poller,
		Enricher:       f.enricher,
		MaxUploadBytes: 1024,
	})
	if err != nil {
		t.Fatalf("pipeline: %v", err)
	}
	return f
}

func (f *pipelineFixture) networkCalls() int {
	return len(f.store.puts) + len(f.store.gets) + len(f.svc.started) + f.svc.queries + f.enricher.calls
}

func TestPipelineSuccess(t *testing.T) {
	f := newPipelineFixture(t, model.JobStatusInProgress, model.JobStatusInProgress, model.JobStatusCompleted)

	out, err := f.pipeline.Transcribe(context.Background(), []byte("video"), "talk.mp4", "video/mp4")
	if err != nil {
		t.Fatalf("transcribe: %v", err)
	}

	if f.svc.queries != 3 || len(f.store.gets) != 1 {
		t.Fatalf("expected 3 status queries and 1 fetch, got %d and %d", f.svc.queries, len(f.store.gets))
	}
	if f.enricher.calls != 1 {
		t.Fatalf("expected 1 enrichment call, got %d", f.enricher.calls)
	}
	if out.Title != "Welcome" || out.Transcript != "Hello and welcome to the show." {
		t.Fatalf("unexpected outcome %+v", out)
	}
	if out.JobName != f.svc.started[0].JobName {
		t.Fatalf("expected job name %s, got %s", f.svc.started[0].JobName, out.JobName)
	}
	if out.FileURL != f.svc.started[0].MediaURI {
		t.Fatalf("expected submitted media uri to equal file url, got %s vs %s", f.svc.started[0].MediaURI, out.FileURL)
	}
	if out.TranscriptionURL == "" {
		t.Fatal("expected transcription url")
	}
}

func TestPipelineValidationMakesNoNetworkCalls(t *testing.T) {
	cases := []struct {
		name     string
		data     []byte
		mimeType string
	}{
		{"empty", []byte{}, "video/mp4"},
		{"oversized", make([]byte, 1025), "video/mp4"},
		{"disallowed type", []byte("x"), "audio/wav"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newPipelineFixture(t, model.JobStatusCompleted)

			_, err := f.pipeline.Transcribe(context.Background(), tc.data, "f.bin", tc.mimeType)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			if n := f.networkCalls(); n != 0 {
				t.Fatalf("expected no network calls, got %d", n)
			}
		})
	}
}

func TestPipelineJobFailure(t *testing.T) {
	f := newPipelineFixture(t, model.JobStatusFailed)

	_, err := f.pipeline.Transcribe(context.Background(), []byte("video"), "talk.mp4", "video/mp4")
	if !errors.Is(err, ErrJobFailed) {
		t.Fatalf("expected ErrJobFailed, got %v", err)
	}
	if StatusCode(err) != 500 {
		t.Fatalf("expected 500, got %d", StatusCode(err))
	}
	if f.enricher.calls != 0 {
		t.Fatal("enrichment must not run after a failed job")
	}
}

func TestPipelineStorageFailureStopsBeforeSubmission(t *testing.T) {
	f := newPipelineFixture(t, model.JobStatusCompleted)
	f.store.putErr = errors.New("AccessDenied")

	_, err := f.pipeline.Transcribe(context.Background(), []byte("video"), "talk.mp4", "video/mp4")
	if !errors.Is(err, ErrStorage) {
		t.Fatalf("expected ErrStorage, got %v", err)
	}
	if len(f.svc.started) != 0 {
		t.Fatal("expected no job submission after failed upload")
	}
}

func TestPipelineEnrichmentErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"typed parse error", stageError(StageEnrichment, ErrEnrichmentParse, "bad", nil), ErrEnrichmentParse},
		{"untyped error", fmt.Errorf("dial tcp: connection refused"), ErrEnrichmentService},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newPipelineFixture(t, model.JobStatusCompleted)
			f.enricher.err = tc.err

			_, err := f.pipeline.Transcribe(context.Background(), []byte("video"), "talk.mp4", "video/mp4")
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestPipelineCancelledBeforeUpload(t *testing.T) {
	f := newPipelineFixture(t, model.JobStatusCompleted)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.pipeline.Transcribe(ctx, []byte("video"), "talk.mp4", "video/mp4")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if n := f.networkCalls(); n != 0 {
		t.Fatalf("expected no network calls, got %d", n)
	}
}

func TestPipelineCancelledBeforeEnrichment(t *testing.T) {
	f := newPipelineFixture(t, model.JobStatusCompleted)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	f.pipeline.poller.OnState(func(jobName string, state model.JobState) {
		if state == model.JobStateCompleted {
			cancel()
		}
	})

	var logs bytes.Buffer
	log.SetOutput(&logs)
	defer log.SetOutput(os.Stderr)

	_, err := f.pipeline.Transcribe(ctx, []byte("video"), "talk.mp4", "video/mp4")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	var pe *PipelineError
	if !errors.As(err, &pe) || pe.Stage != StageEnrichment {
		t.Fatalf("expected enrichment stage, got %v", err)
	}
	if f.enricher.calls != 0 {
		t.Fatalf("enricher should not run, got %d calls", f.enricher.calls)
	}
	if !strings.Contains(logs.String(), "Leaving uploaded object s3://media-bucket/") {
		t.Fatalf("expected the uploaded object to be reported, got %q", logs.String())
	}
}

func TestStatusCodeAndMessage(t *testing.T) {
	err := stageError(StagePolling, ErrTimeout, "Transcription timeout exceeded", nil)
	if StatusCode(err) != 500 {
		t.Fatalf("expected 500, got %d", StatusCode(err))
	}
	if Message(err) != "Transcription timeout exceeded" {
		t.Fatalf("unexpected message %q", Message(err))
	}
	wrapped := fmt.Errorf("handler: %w", stageError(StageValidation, ErrValidation, "File is empty", nil))
	if StatusCode(wrapped) != 400 || Message(wrapped) != "File is empty" {
		t.Fatalf("unexpected mapping for wrapped validation error: %d %q", StatusCode(wrapped), Message(wrapped))
	}
}
