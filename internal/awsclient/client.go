package awsclient

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	awstranscribe "github.com/aws/aws-sdk-go-v2/service/transcribe"
	"github.com/aws/aws-sdk-go-v2/service/translate"

	"github.com/Parag0712/levalsupermind/internal/config"
)

// Clients bundles the AWS adapters used by the server
type Clients struct {
	Store      *S3Store
	Transcribe *TranscribeService
	Translate  *Translator
}

// LoadConfig builds an aws.Config from explicit settings instead of the
// ambient credential chain.
func LoadConfig(ctx context.Context, cfg config.AWSConfig) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
	}
	if cfg.MaxAttempts > 0 {
		opts = append(opts, awsconfig.WithRetryMaxAttempts(cfg.MaxAttempts))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return awsCfg, nil
}

// New creates the S3, Transcribe and Translate adapters from one aws.Config.
func New(ctx context.Context, cfg config.AWSConfig) (*Clients, error) {
	awsCfg, err := LoadConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	log.Printf("[AWS] Clients configured for region %s (max attempts %d)", cfg.Region, cfg.MaxAttempts)
	return &Clients{
		Store:      NewS3Store(s3.NewFromConfig(awsCfg)),
		Transcribe: NewTranscribeService(awstranscribe.NewFromConfig(awsCfg)),
		Translate:  NewTranslator(translate.NewFromConfig(awsCfg)),
	}, nil
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return aws.String(s)
}
