package awsclient

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	awstranscribe "github.com/aws/aws-sdk-go-v2/service/transcribe"
	"github.com/aws/aws-sdk-go-v2/service/transcribe/types"

	"github.com/Parag0712/levalsupermind/internal/model"
)

type transcribeAPI interface {
	StartTranscriptionJob(ctx context.Context, params *awstranscribe.StartTranscriptionJobInput, optFns ...func(*awstranscribe.Options)) (*awstranscribe.StartTranscriptionJobOutput, error)
	GetTranscriptionJob(ctx context.Context, params *awstranscribe.GetTranscriptionJobInput, optFns ...func(*awstranscribe.Options)) (*awstranscribe.GetTranscriptionJobOutput, error)
}

// TranscribeService runs jobs on Amazon Transcribe
type TranscribeService struct {
	client transcribeAPI
}

// NewTranscribeService wraps a Transcribe client.
func NewTranscribeService(client transcribeAPI) *TranscribeService {
	return &TranscribeService{client: client}
}

// StartJob submits req. Output is written to req.OutputBucket as {JobName}.json.
func (s *TranscribeService) StartJob(ctx context.Context, req model.JobRequest) error {
	input := &awstranscribe.StartTranscriptionJobInput{
		TranscriptionJobName: aws.String(req.JobName),
		LanguageCode:         types.LanguageCode(req.LanguageCode),
		MediaFormat:          types.MediaFormat(req.MediaFormat),
		Media:                &types.Media{MediaFileUri: aws.String(req.MediaURI)},
		OutputBucketName:     aws.String(req.OutputBucket),
		Settings:             jobSettings(req.Settings),
	}

	if _, err := s.client.StartTranscriptionJob(ctx, input); err != nil {
		return fmt.Errorf("start transcription job %s: %w", req.JobName, err)
	}
	log.Printf("[Transcribe] Started job %s for %s", req.JobName, req.MediaURI)
	return nil
}

// GetJobStatus returns the current status of jobName.
func (s *TranscribeService) GetJobStatus(ctx context.Context, jobName string) (model.TranscriptionJob, error) {
	out, err := s.client.GetTranscriptionJob(ctx, &awstranscribe.GetTranscriptionJobInput{
		TranscriptionJobName: aws.String(jobName),
	})
	if err != nil {
		return model.TranscriptionJob{}, fmt.Errorf("get transcription job %s: %w", jobName, err)
	}
	if out.TranscriptionJob == nil {
		return model.TranscriptionJob{}, fmt.Errorf("get transcription job %s: empty response", jobName)
	}

	job := out.TranscriptionJob
	result := model.TranscriptionJob{
		Name:          jobName,
		Status:        model.JobStatus(job.TranscriptionJobStatus),
		FailureReason: aws.ToString(job.FailureReason),
	}
	if job.Transcript != nil {
		result.TranscriptURI = aws.ToString(job.Transcript.TranscriptFileUri)
	}
	return result, nil
}

func jobSettings(s model.JobSettings) *types.Settings {
	settings := &types.Settings{
		VocabularyName: optionalString(s.VocabularyName),
	}
	// MaxSpeakerLabels is rejected unless speaker labels are on
	if s.ShowSpeakerLabels {
		settings.ShowSpeakerLabels = aws.Bool(true)
		settings.MaxSpeakerLabels = aws.Int32(s.MaxSpeakerLabels)
	}
	return settings
}
