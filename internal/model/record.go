package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	RecordStatusProcessing = "processing"
	RecordStatusCompleted  = "completed"
	RecordStatusFailed     = "failed"
)

// TranscriptionRecord represents one pipeline invocation stored for a user
type TranscriptionRecord struct {
	ID               uuid.UUID              `json:"id"`
	UserID           string                 `json:"user_id"`
	Filename         string                 `json:"filename"`
	MIMEType         string                 `json:"mime_type"`
	SizeBytes        int64                  `json:"size_bytes"`
	FileURL          string                 `json:"file_url,omitempty"`
	JobName          string                 `json:"job_name,omitempty"`
	Status           string                 `json:"status"`
	Transcript       *string                `json:"transcript,omitempty"`
	ErrorMessage     *string                `json:"error_message,omitempty"`
	ProcessingTimeMs *int                   `json:"processing_time_ms,omitempty"`
	Metadata         map[string]interface{} `json:"metadata"`
	CreatedAt        time.Time              `json:"created_at"`
}
