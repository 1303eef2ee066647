package awsclient

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/Parag0712/levalsupermind/internal/transcribe"
)

func TestS3StorePut(t *testing.T) {
	fake := &fakeS3{}
	store := NewS3Store(fake)

	err := store.Put(context.Background(), transcribe.PutObjectInput{
		Bucket:             "media",
		Key:                "uploads/1-clip.mp4",
		Body:               []byte("video-bytes"),
		ContentType:        "video/mp4",
		ContentDisposition: "attachment",
		CacheControl:       "max-age=31536000",
	})
	if err != nil {
		t.Fatalf("put: %v", err)
	}

	in := fake.putInput
	if aws.ToString(in.Bucket) != "media" || aws.ToString(in.Key) != "uploads/1-clip.mp4" {
		t.Fatalf("unexpected target %s/%s", aws.ToString(in.Bucket), aws.ToString(in.Key))
	}
	if aws.ToString(in.ContentType) != "video/mp4" ||
		aws.ToString(in.ContentDisposition) != "attachment" ||
		aws.ToString(in.CacheControl) != "max-age=31536000" {
		t.Fatalf("unexpected headers %+v", in)
	}
	if aws.ToInt64(in.ContentLength) != 11 || fake.putBody != "video-bytes" {
		t.Fatalf("unexpected body %q (%d)", fake.putBody, aws.ToInt64(in.ContentLength))
	}
}

func TestS3StorePutOmitsEmptyHeaders(t *testing.T) {
	fake := &fakeS3{}
	if err := NewS3Store(fake).Put(context.Background(), transcribe.PutObjectInput{Bucket: "b", Key: "k", Body: []byte("x")}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if fake.putInput.ContentDisposition != nil || fake.putInput.CacheControl != nil {
		t.Fatalf("expected unset headers, got %+v", fake.putInput)
	}
}

func TestS3StorePutError(t *testing.T) {
	fake := &fakeS3{putErr: errors.New("access denied")}
	err := NewS3Store(fake).Put(context.Background(), transcribe.PutObjectInput{Bucket: "b", Key: "k"})
	if err == nil || !errors.Is(err, fake.putErr) {
		t.Fatalf("expected wrapped put error, got %v", err)
	}
}

func TestS3StoreGet(t *testing.T) {
	fake := &fakeS3{getBody: `{"results":{}}`}
	data, err := NewS3Store(fake).Get(context.Background(), "media", "job.json")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(data) != `{"results":{}}` {
		t.Fatalf("unexpected body %q", data)
	}
	if aws.ToString(fake.getInput.Key) != "job.json" {
		t.Fatalf("unexpected key %s", aws.ToString(fake.getInput.Key))
	}
}

func TestS3StoreGetNoSuchKey(t *testing.T) {
	fake := &fakeS3{getErr: &types.NoSuchKey{}}
	if _, err := NewS3Store(fake).Get(context.Background(), "media", "missing.json"); !errors.Is(err, transcribe.ErrObjectNotFound) {
		t.Fatalf("expected ErrObjectNotFound, got %v", err)
	}
}
