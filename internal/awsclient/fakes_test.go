package awsclient

import (
	"context"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	awstranscribe "github.com/aws/aws-sdk-go-v2/service/transcribe"
	"github.com/aws/aws-sdk-go-v2/service/translate"
)

type fakeS3 struct {
	putInput *s3.PutObjectInput
	putBody  string
	putErr   error

	getInput *s3.GetObjectInput
	getBody  string
	getErr   error
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.putInput = params
	if params.Body != nil {
		data, _ := io.ReadAll(params.Body)
		f.putBody = string(data)
	}
	if f.putErr != nil {
		return nil, f.putErr
	}
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.getInput = params
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(f.getBody))}, nil
}

type fakeTranscribe struct {
	started  *awstranscribe.StartTranscriptionJobInput
	startErr error

	job    *awstranscribe.GetTranscriptionJobOutput
	getErr error
}

func (f *fakeTranscribe) StartTranscriptionJob(ctx context.Context, params *awstranscribe.StartTranscriptionJobInput, optFns ...func(*awstranscribe.Options)) (*awstranscribe.StartTranscriptionJobOutput, error) {
	f.started = params
	if f.startErr != nil {
		return nil, f.startErr
	}
	return &awstranscribe.StartTranscriptionJobOutput{}, nil
}

func (f *fakeTranscribe) GetTranscriptionJob(ctx context.Context, params *awstranscribe.GetTranscriptionJobInput, optFns ...func(*awstranscribe.Options)) (*awstranscribe.GetTranscriptionJobOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.job, nil
}

type fakeTranslate struct {
	input *translate.TranslateTextInput
	err   error
}

func (f *fakeTranslate) TranslateText(ctx context.Context, params *translate.TranslateTextInput, optFns ...func(*translate.Options)) (*translate.TranslateTextOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	text := "[" + *params.TargetLanguageCode + "] " + *params.Text
	return &translate.TranslateTextOutput{TranslatedText: &text}, nil
}
