package model

import "strings"

// TranscriptionResult is the normalized transcript payload written by the
// transcription service to the output bucket as {job_name}.json.
type TranscriptionResult struct {
	JobName   string            `json:"jobName"`
	AccountID string            `json:"accountId"`
	Status    string            `json:"status"`
	Results   TranscriptResults `json:"results"`
}

// TranscriptResults holds transcript segments, speaker labels and aligned items
type TranscriptResults struct {
	Transcripts   []Transcript   `json:"transcripts"`
	SpeakerLabels *SpeakerLabels `json:"speaker_labels,omitempty"`
	Items         []Item         `json:"items"`
}

// Transcript is one transcript segment
type Transcript struct {
	Transcript string `json:"transcript"`
}

// SpeakerLabels is the diarization output
type SpeakerLabels struct {
	Speakers int              `json:"speakers"`
	Segments []SpeakerSegment `json:"segments"`
}

// SpeakerSegment is a time range attributed to one speaker
type SpeakerSegment struct {
	StartTime    string        `json:"start_time"`
	EndTime      string        `json:"end_time"`
	SpeakerLabel string        `json:"speaker_label"`
	Items        []SpeakerItem `json:"items"`
}

// SpeakerItem is one word-level entry inside a speaker segment
type SpeakerItem struct {
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	SpeakerLabel string `json:"speaker_label"`
}

// Item is a word or punctuation mark aligned to time
type Item struct {
	StartTime    string        `json:"start_time,omitempty"`
	EndTime      string        `json:"end_time,omitempty"`
	Type         string        `json:"type"`
	SpeakerLabel string        `json:"speaker_label,omitempty"`
	Alternatives []Alternative `json:"alternatives"`
}

// Alternative is one recognition candidate for an item
type Alternative struct {
	Confidence string `json:"confidence"`
	Content    string `json:"content"`
}

// Text joins all transcript segments, one per line.
func (r *TranscriptionResult) Text() string {
	if r == nil {
		return ""
	}
	parts := make([]string, 0, len(r.Results.Transcripts))
	for _, t := range r.Results.Transcripts {
		parts = append(parts, t.Transcript)
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}
