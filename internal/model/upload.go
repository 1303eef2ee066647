package model

// UploadRequest is one incoming file handed to the transcription pipeline
type UploadRequest struct {
	Data     []byte
	Filename string
	MIMEType string
	Size     int64
}

// StoredObjectRef points at an uploaded object
type StoredObjectRef struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
	URL    string `json:"url"`
}
