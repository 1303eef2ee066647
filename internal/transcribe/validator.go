package transcribe

import (
	"fmt"
	"strings"

	"github.com/Parag0712/levalsupermind/internal/model"
)

// DefaultMaxUploadBytes is the largest accepted upload (100 MiB).
const DefaultMaxUploadBytes int64 = 100 * 1024 * 1024

// AllowedMIMETypes lists the upload types the pipeline accepts.
var AllowedMIMETypes = []string{
	"video/mp4",
	"video/quicktime",
	"video/x-msvideo",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/pdf",
}

var allowedMIMETypes = func() map[string]struct{} {
	m := make(map[string]struct{}, len(AllowedMIMETypes))
	for _, t := range AllowedMIMETypes {
		m[t] = struct{}{}
	}
	return m
}()

// IsAllowedMIMEType reports whether uploads of the given type are accepted.
func IsAllowedMIMEType(mimeType string) bool {
	_, ok := allowedMIMETypes[strings.ToLower(strings.TrimSpace(mimeType))]
	return ok
}

// Validate rejects uploads before any network call is made.
func Validate(req model.UploadRequest, maxBytes int64) error {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	if req.Data == nil {
		return stageError(StageValidation, ErrValidation, "No file provided", nil)
	}
	size := int64(len(req.Data))
	if req.Size > size {
		size = req.Size
	}
	if size == 0 {
		return stageError(StageValidation, ErrValidation, "File is empty", nil)
	}
	if size > maxBytes {
		return stageError(StageValidation, ErrValidation,
			fmt.Sprintf("File size exceeds maximum limit of %d bytes", maxBytes), nil)
	}
	if !IsAllowedMIMEType(req.MIMEType) {
		return stageError(StageValidation, ErrValidation,
			"Invalid file type. Only MP4, MOV, AVI, DOC, DOCX, and PDF files are allowed", nil)
	}
	return nil
}
