package transcribe

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/Parag0712/levalsupermind/internal/model"
)

const (
	defaultJobPrefix    = "transcription"
	defaultLanguageCode = "en-US"
	defaultMediaFormat  = "mp4"
	defaultMaxSpeakers  = 2
	jobSuffixLength     = 7
	base36Alphabet      = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// SubmitterConfig is the static configuration of the job submitter
type SubmitterConfig struct {
	OutputBucket   string
	LanguageCode   string
	MediaFormat    string
	VocabularyName string
	JobPrefix      string
	MaxSpeakers    int32
}

// Submitter starts transcription jobs for uploaded media
type Submitter struct {
	service TranscriptionService
	cfg     SubmitterConfig
	now     func() time.Time
}

// NewSubmitter checks the static configuration and fills in defaults.
func NewSubmitter(service TranscriptionService, cfg SubmitterConfig) (*Submitter, error) {
	if service == nil {
		return nil, stageError(StageSubmission, ErrSubmission, "transcription service is not configured", nil)
	}
	if strings.TrimSpace(cfg.OutputBucket) == "" {
		return nil, stageError(StageSubmission, ErrSubmission, "transcription output bucket is not configured", nil)
	}
	if cfg.LanguageCode == "" {
		cfg.LanguageCode = defaultLanguageCode
	}
	if cfg.MediaFormat == "" {
		cfg.MediaFormat = defaultMediaFormat
	}
	if cfg.JobPrefix == "" {
		cfg.JobPrefix = defaultJobPrefix
	}
	if cfg.MaxSpeakers <= 0 {
		cfg.MaxSpeakers = defaultMaxSpeakers
	}
	return &Submitter{service: service, cfg: cfg, now: time.Now}, nil
}

// Submit starts a job transcribing the media at mediaURL.
func (s *Submitter) Submit(ctx context.Context, mediaURL string) (model.TranscriptionJob, error) {
	jobName := GenerateJobName(s.cfg.JobPrefix, s.now())

	req := model.JobRequest{
		JobName:      jobName,
		LanguageCode: s.cfg.LanguageCode,
		MediaFormat:  s.cfg.MediaFormat,
		MediaURI:     mediaURL,
		OutputBucket: s.cfg.OutputBucket,
		Settings: model.JobSettings{
			ShowSpeakerLabels: true,
			MaxSpeakerLabels:  s.cfg.MaxSpeakers,
			VocabularyName:    s.cfg.VocabularyName,
		},
	}

	if err := s.service.StartJob(ctx, req); err != nil {
		log.Printf("[Submitter] Failed to start job %s: %v", jobName, err)
		return model.TranscriptionJob{}, stageError(StageSubmission, ErrSubmission, "Failed to start transcription job", err)
	}

	log.Printf("[Submitter] Started job %s for %s", jobName, mediaURL)
	return model.TranscriptionJob{
		Name:         jobName,
		Status:       model.JobStatusInProgress,
		OutputBucket: s.cfg.OutputBucket,
	}, nil
}

// GenerateJobName returns {prefix}_{unix-millis}_{7 base36 chars}.
func GenerateJobName(prefix string, now time.Time) string {
	if prefix == "" {
		prefix = defaultJobPrefix
	}
	suffix := make([]byte, jobSuffixLength)
	for i := range suffix {
		suffix[i] = base36Alphabet[rand.IntN(len(base36Alphabet))]
	}
	return fmt.Sprintf("%s_%d_%s", prefix, now.UnixMilli(), suffix)
}
