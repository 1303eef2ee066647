package model

// EnrichmentDraft is the blog metadata generated from a transcript
type EnrichmentDraft struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Keywords        []string `json:"keywords"`
	MetaTitle       string   `json:"metaTitle"`
	MetaDescription string   `json:"metaDescription"`
	MetaTag         string   `json:"metaTag"`
	Transcript      string   `json:"transcript"`
}

// TranscriptionOutcome is returned to the caller when the pipeline succeeds
type TranscriptionOutcome struct {
	EnrichmentDraft
	FileURL          string `json:"fileUrl"`
	JobName          string `json:"jobName"`
	TranscriptionURL string `json:"transcriptionUrl"`
}
