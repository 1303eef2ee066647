package transcribe

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Parag0712/levalsupermind/internal/model"
)

var errNoSuchKey = fmt.Errorf("NoSuchKey: the specified key does not exist: %w", ErrObjectNotFound)

// fakeStore records puts and serves gets from a queue of responses.
type fakeStore struct {
	mu      sync.Mutex
	puts    []PutObjectInput
	putErr  error
	gets    []string
	getResp []fakeGet
}

type fakeGet struct {
	body []byte
	err  error
}

func (s *fakeStore) Put(ctx context.Context, in PutObjectInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.puts = append(s.puts, in)
	return s.putErr
}

func (s *fakeStore) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gets = append(s.gets, bucket+"/"+key)
	if len(s.getResp) == 0 {
		return nil, errNoSuchKey
	}
	resp := s.getResp[0]
	if len(s.getResp) > 1 {
		s.getResp = s.getResp[1:]
	}
	return resp.body, resp.err
}

// fakeService plays back a sequence of job statuses; the last one repeats.
type fakeService struct {
	mu        sync.Mutex
	started   []model.JobRequest
	startErr  error
	statuses  []model.JobStatus
	statusErr error
	queries   int
}

func (s *fakeService) StartJob(ctx context.Context, req model.JobRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started = append(s.started, req)
	return s.startErr
}

func (s *fakeService) GetJobStatus(ctx context.Context, jobName string) (model.TranscriptionJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries++
	if s.statusErr != nil {
		return model.TranscriptionJob{}, s.statusErr
	}
	status := model.JobStatusInProgress
	if len(s.statuses) > 0 {
		status = s.statuses[0]
		if len(s.statuses) > 1 {
			s.statuses = s.statuses[1:]
		}
	}
	job := model.TranscriptionJob{Name: jobName, Status: status}
	if status == model.JobStatusCompleted {
		job.TranscriptURI = "https://s3.us-east-1.amazonaws.com/out-bucket/" + jobName + ".json"
	}
	if status == model.JobStatusFailed {
		job.FailureReason = "The media format provided does not match the detected media format."
	}
	return job, nil
}

type fakeEnricher struct {
	calls int
	draft *model.EnrichmentDraft
	err   error
}

func (e *fakeEnricher) Enrich(ctx context.Context, transcript string) (*model.EnrichmentDraft, error) {
	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	d := *e.draft
	return &d, nil
}

// sleepRecorder replaces real waits in poller tests.
type sleepRecorder struct {
	delays []time.Duration
}

func (r *sleepRecorder) sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.delays = append(r.delays, d)
	return nil
}

const sampleTranscriptJSON = `{
  "jobName": "transcription_1700000000000_abc1234",
  "accountId": "123456789012",
  "status": "COMPLETED",
  "results": {
    "transcripts": [{"transcript": "Hello and welcome to the show."}],
    "speaker_labels": {
      "speakers": 2,
      "segments": [
        {"start_time": "0.0", "end_time": "1.2", "speaker_label": "spk_0",
         "items": [{"start_time": "0.0", "end_time": "0.4", "speaker_label": "spk_0"}]}
      ]
    },
    "items": [
      {"start_time": "0.0", "end_time": "0.4", "type": "pronunciation",
       "alternatives": [{"confidence": "0.99", "content": "Hello"}]},
      {"type": "punctuation", "alternatives": [{"confidence": "0.0", "content": "."}]}
    ]
  }
}`
