package transcribe

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/Parag0712/levalsupermind/internal/model"
)

const (
	uploadPrefix       = "uploads"
	contentDisposition = "attachment"
	cacheControl       = "max-age=31536000"
)

// Uploader persists validated uploads to the object store
type Uploader struct {
	store  ObjectStore
	bucket string
	region string
	now    func() time.Time
}

// NewUploader creates an uploader writing to bucket in region.
func NewUploader(store ObjectStore, bucket, region string) (*Uploader, error) {
	if store == nil {
		return nil, fmt.Errorf("object store is required")
	}
	if bucket == "" {
		return nil, fmt.Errorf("upload bucket is required")
	}
	if region == "" {
		return nil, fmt.Errorf("upload region is required")
	}
	return &Uploader{store: store, bucket: bucket, region: region, now: time.Now}, nil
}

// Upload writes the whole payload as one object and returns its durable URL.
// A failed upload is not resumed.
func (u *Uploader) Upload(ctx context.Context, req model.UploadRequest) (model.StoredObjectRef, error) {
	key := ObjectKey(u.now(), req.Filename)

	err := u.store.Put(ctx, PutObjectInput{
		Bucket:             u.bucket,
		Key:                key,
		Body:               req.Data,
		ContentType:        req.MIMEType,
		ContentDisposition: contentDisposition,
		CacheControl:       cacheControl,
	})
	if err != nil {
		log.Printf("[Uploader] Failed to upload %s to bucket %s: %v", key, u.bucket, err)
		return model.StoredObjectRef{}, stageError(StageUpload, ErrStorage, "Failed to upload file to storage", err)
	}

	ref := model.StoredObjectRef{
		Bucket: u.bucket,
		Key:    key,
		URL:    ObjectURL(u.bucket, u.region, key),
	}
	log.Printf("[Uploader] Uploaded %d bytes to %s", len(req.Data), ref.URL)
	return ref, nil
}

// ObjectKey builds uploads/{unix-millis}-{filename}.
func ObjectKey(now time.Time, filename string) string {
	return fmt.Sprintf("%s/%d-%s", uploadPrefix, now.UnixMilli(), sanitizeFilename(filename))
}

// ObjectURL builds the virtual-hosted URL of an object without asking the store.
// Each key segment is escaped so '#', '?' and '%' stay part of the key.
func ObjectURL(bucket, region, key string) string {
	segments := strings.Split(key, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, region, strings.Join(segments, "/"))
}

func sanitizeFilename(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		return "upload"
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '-'
		}
		return r
	}, base)
}
