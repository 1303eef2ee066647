package api

import (
	"context"
	"errors"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Parag0712/levalsupermind/internal/model"
	"github.com/Parag0712/levalsupermind/internal/transcribe"
	"github.com/Parag0712/levalsupermind/internal/utils"
)

// anonymousUser owns invocations that carry no caller id
const anonymousUser = "anonymous"

// handleHealth returns server health status
func (a *API) handleHealth(c *gin.Context) {
	utils.Success(c, gin.H{
		"status":  "ok",
		"service": "levalsupermind-backend",
	})
}

// handleTranscribeVideo runs the pipeline on the multipart field "file"
func (a *API) handleTranscribeVideo(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.Error(c, http.StatusBadRequest, "File size exceeds the upload limit")
			return
		}
		log.Printf("[Upload] FormFile error: %v", err)
		utils.Error(c, http.StatusBadRequest, "No file provided")
		return
	}

	data, err := readUpload(fileHeader)
	if err != nil {
		log.Printf("[Upload] Failed to read %q: %v", fileHeader.Filename, err)
		utils.Error(c, http.StatusInternalServerError, "Failed to read uploaded file")
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	log.Printf("[Upload] Received %q (%s, %d bytes)", fileHeader.Filename, mimeType, len(data))

	ctx := c.Request.Context()
	startTime := a.now()
	recordID := a.createRecord(ctx, callerID(c), fileHeader.Filename, mimeType, int64(len(data)))

	outcome, err := a.transcriber.Transcribe(ctx, data, fileHeader.Filename, mimeType)
	elapsed := int(a.now().Sub(startTime) / time.Millisecond)
	if err != nil {
		log.Printf("[Upload] Pipeline failed for %q: %v", fileHeader.Filename, err)
		a.recordFailure(recordID, err, elapsed)
		utils.Error(c, transcribe.StatusCode(err), transcribe.Message(err))
		return
	}
	a.recordSuccess(recordID, outcome, elapsed)

	body := gin.H{
		"message":          "Video transcribed successfully",
		"title":            outcome.Title,
		"description":      outcome.Description,
		"keywords":         outcome.Keywords,
		"metaDescription":  outcome.MetaDescription,
		"metaTitle":        outcome.MetaTitle,
		"metaTag":          outcome.MetaTag,
		"transcript":       outcome.Transcript,
		"fileUrl":          outcome.FileURL,
		"jobName":          outcome.JobName,
		"transcriptionUrl": outcome.TranscriptionURL,
	}
	if recordID != uuid.Nil {
		body["recordId"] = recordID.String()
	}
	utils.SuccessFields(c, body)
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// callerID reads the caller from the X-User-ID header or user_id query parameter
func callerID(c *gin.Context) string {
	if id := strings.TrimSpace(c.GetHeader("X-User-ID")); id != "" {
		return id
	}
	if id := strings.TrimSpace(c.Query("user_id")); id != "" {
		return id
	}
	return anonymousUser
}

// createRecord stores a processing record for the invocation. Returns
// uuid.Nil when there is no repository or the insert fails; persistence
// never fails the request.
func (a *API) createRecord(ctx context.Context, userID, filename, mimeType string, size int64) uuid.UUID {
	if a.records == nil {
		return uuid.Nil
	}

	rec := &model.TranscriptionRecord{
		ID:        uuid.New(),
		UserID:    userID,
		Filename:  filename,
		MIMEType:  mimeType,
		SizeBytes: size,
		Status:    model.RecordStatusProcessing,
		Metadata:  map[string]interface{}{},
		CreatedAt: a.now(),
	}
	if err := a.records.Create(ctx, rec); err != nil {
		log.Printf("Warning: Failed to create transcription record for %q: %v", filename, err)
		return uuid.Nil
	}
	return rec.ID
}

func (a *API) recordSuccess(id uuid.UUID, outcome *model.TranscriptionOutcome, elapsedMs int) {
	if a.records == nil || id == uuid.Nil {
		return
	}

	transcript := outcome.Transcript
	update := &model.TranscriptionRecord{
		ID:               id,
		Status:           model.RecordStatusCompleted,
		FileURL:          outcome.FileURL,
		JobName:          outcome.JobName,
		Transcript:       &transcript,
		ProcessingTimeMs: &elapsedMs,
		Metadata: map[string]interface{}{
			"title":             outcome.Title,
			"description":       outcome.Description,
			"keywords":          outcome.Keywords,
			"meta_title":        outcome.MetaTitle,
			"meta_description":  outcome.MetaDescription,
			"meta_tag":          outcome.MetaTag,
			"transcription_url": outcome.TranscriptionURL,
		},
	}
	a.updateRecord(update)
}

func (a *API) recordFailure(id uuid.UUID, pipelineErr error, elapsedMs int) {
	if a.records == nil || id == uuid.Nil {
		return
	}

	msg := transcribe.Message(pipelineErr)
	update := &model.TranscriptionRecord{
		ID:               id,
		Status:           model.RecordStatusFailed,
		ErrorMessage:     &msg,
		ProcessingTimeMs: &elapsedMs,
	}
	var pe *transcribe.PipelineError
	if errors.As(pipelineErr, &pe) {
		update.Metadata = map[string]interface{}{"failed_stage": pe.Stage}
	}
	a.updateRecord(update)
}

// updateRecord runs detached from the request so a disconnected caller
// still gets the outcome stored.
func (a *API) updateRecord(update *model.TranscriptionRecord) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.records.UpdateResult(ctx, update); err != nil {
		log.Printf("Warning: Failed to update transcription record %s: %v", update.ID, err)
	}
}
