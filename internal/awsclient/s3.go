package awsclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/Parag0712/levalsupermind/internal/transcribe"
)

type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Store is an object store backed by Amazon S3
type S3Store struct {
	client s3API
}

// NewS3Store wraps an S3 client.
func NewS3Store(client s3API) *S3Store {
	return &S3Store{client: client}
}

// Put uploads in.Body as a single object.
func (s *S3Store) Put(ctx context.Context, in transcribe.PutObjectInput) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:             aws.String(in.Bucket),
		Key:                aws.String(in.Key),
		Body:               bytes.NewReader(in.Body),
		ContentLength:      aws.Int64(int64(len(in.Body))),
		ContentType:        optionalString(in.ContentType),
		ContentDisposition: optionalString(in.ContentDisposition),
		CacheControl:       optionalString(in.CacheControl),
	})
	if err != nil {
		return fmt.Errorf("s3 put %s/%s: %w", in.Bucket, in.Key, err)
	}
	log.Printf("[S3] Stored s3://%s/%s (%d bytes)", in.Bucket, in.Key, len(in.Body))
	return nil
}

// Get reads the whole object at bucket/key.
func (s *S3Store) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, fmt.Errorf("s3 get %s/%s: %w: %w", bucket, key, transcribe.ErrObjectNotFound, err)
		}
		return nil, fmt.Errorf("s3 get %s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("s3 read %s/%s: %w", bucket, key, err)
	}
	return data, nil
}
