package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/Parag0712/levalsupermind/internal/model"
)

// Fetcher reads a completed job's output from the object store
type Fetcher struct {
	store ObjectStore
}

// NewFetcher creates a fetcher over store.
func NewFetcher(store ObjectStore) *Fetcher {
	return &Fetcher{store: store}
}

// OutputKey is the object key the transcription service writes for a job.
func OutputKey(jobName string) string {
	return jobName + ".json"
}

// Fetch reads and parses {jobName}.json from bucket. It does not retry.
// A missing or empty object yields ErrContentNotFound; any other read
// failure yields ErrStorage.
func (f *Fetcher) Fetch(ctx context.Context, bucket, jobName string) (*model.TranscriptionResult, error) {
	key := OutputKey(jobName)

	body, err := f.store.Get(ctx, bucket, key)
	if errors.Is(err, ErrObjectNotFound) {
		return nil, stageError(StageFetch, ErrContentNotFound, "Transcription output is not available", err)
	}
	if err != nil {
		log.Printf("[Fetcher] Failed to read %s/%s: %v", bucket, key, err)
		return nil, stageError(StageFetch, ErrStorage, "Failed to read transcription output", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, stageError(StageFetch, ErrContentNotFound, "No content found in transcription file", nil)
	}

	var payload struct {
		JobName   string                   `json:"jobName"`
		AccountID string                   `json:"accountId"`
		Status    string                   `json:"status"`
		Results   *model.TranscriptResults `json:"results"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		log.Printf("[Fetcher] Failed to parse %s/%s: %v", bucket, key, err)
		return nil, stageError(StageFetch, ErrContentParse, "Failed to process transcription content", err)
	}
	if payload.Results == nil {
		return nil, stageError(StageFetch, ErrContentParse, "Transcription content has no results", nil)
	}

	return &model.TranscriptionResult{
		JobName:   payload.JobName,
		AccountID: payload.AccountID,
		Status:    payload.Status,
		Results: model.TranscriptResults{
			Transcripts:   payload.Results.Transcripts,
			SpeakerLabels: payload.Results.SpeakerLabels,
			Items:         payload.Results.Items,
		},
	}, nil
}
