package model

// JobStatus is the status reported by the transcription service
type JobStatus string

const (
	JobStatusQueued     JobStatus = "QUEUED"
	JobStatusInProgress JobStatus = "IN_PROGRESS"
	JobStatusCompleted  JobStatus = "COMPLETED"
	JobStatusFailed     JobStatus = "FAILED"
)

// JobState is the poller's view of a job
type JobState string

const (
	JobStateSubmitted JobState = "SUBMITTED"
	JobStatePolling   JobState = "POLLING"
	JobStateCompleted JobState = "COMPLETED"
	JobStateFailed    JobState = "FAILED"
	JobStateTimedOut  JobState = "TIMED_OUT"
)

// IsTerminal reports whether no further transitions can happen from s.
func (s JobState) IsTerminal() bool {
	return s == JobStateCompleted || s == JobStateFailed || s == JobStateTimedOut
}

// JobSettings controls diarization and vocabulary for a job
type JobSettings struct {
	ShowSpeakerLabels bool
	MaxSpeakerLabels  int32
	VocabularyName    string // optional
}

// JobRequest is everything needed to start a transcription job
type JobRequest struct {
	JobName      string
	LanguageCode string
	MediaFormat  string
	MediaURI     string
	OutputBucket string
	Settings     JobSettings
}

// TranscriptionJob is a handle on an asynchronous transcription job
type TranscriptionJob struct {
	Name          string    `json:"job_name"`
	Status        JobStatus `json:"status"`
	OutputBucket  string    `json:"output_bucket"`
	TranscriptURI string    `json:"transcript_uri,omitempty"`
	FailureReason string    `json:"failure_reason,omitempty"`
}
