package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Parag0712/levalsupermind/internal/model"
	"github.com/Parag0712/levalsupermind/internal/repository"
	"github.com/Parag0712/levalsupermind/internal/utils"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// handleListTranscriptions handles GET /api/v1/transcriptions
func (a *API) handleListTranscriptions(c *gin.Context) {
	if a.records == nil {
		utils.Error(c, http.StatusServiceUnavailable, "transcription history is not available")
		return
	}

	// Parse pagination parameters
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))
	if err != nil || limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	records, err := a.records.ListByUser(c.Request.Context(), callerID(c), limit, offset)
	if err != nil {
		log.Printf("Error listing transcriptions: %v", err)
		utils.Error(c, http.StatusInternalServerError, "failed to retrieve history")
		return
	}

	items := make([]gin.H, 0, len(records))
	for _, rec := range records {
		item := gin.H{
			"id":         rec.ID.String(),
			"filename":   rec.Filename,
			"status":     rec.Status,
			"created_at": rec.CreatedAt,
		}
		if title, ok := rec.Metadata["title"]; ok {
			item["title"] = title
		}

		// Add transcript preview (first 100 chars)
		if rec.Transcript != nil && *rec.Transcript != "" {
			transcript := []rune(*rec.Transcript)
			if len(transcript) > 100 {
				item["transcript_preview"] = string(transcript[:100]) + "..."
			} else {
				item["transcript_preview"] = string(transcript)
			}
		}

		items = append(items, item)
	}

	utils.Success(c, gin.H{
		"items":  items,
		"limit":  limit,
		"offset": offset,
		"count":  len(items),
	})
}

// handleGetTranscription handles GET /api/v1/transcriptions/:id
func (a *API) handleGetTranscription(c *gin.Context) {
	if a.records == nil {
		utils.Error(c, http.StatusServiceUnavailable, "transcription history is not available")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid id format")
		return
	}

	rec, err := a.records.GetByID(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		utils.Error(c, http.StatusNotFound, "transcription not found")
		return
	}
	if err != nil {
		log.Printf("Error getting transcription %s: %v", id, err)
		utils.Error(c, http.StatusInternalServerError, "failed to retrieve transcription")
		return
	}

	if rec.UserID != callerID(c) {
		utils.Error(c, http.StatusNotFound, "transcription not found")
		return
	}

	utils.Success(c, recordDetail(rec))
}

func recordDetail(rec *model.TranscriptionRecord) gin.H {
	response := gin.H{
		"id":         rec.ID.String(),
		"user_id":    rec.UserID,
		"filename":   rec.Filename,
		"mime_type":  rec.MIMEType,
		"size_bytes": rec.SizeBytes,
		"status":     rec.Status,
		"created_at": rec.CreatedAt,
	}

	// Add optional fields
	if rec.FileURL != "" {
		response["file_url"] = rec.FileURL
	}
	if rec.JobName != "" {
		response["job_name"] = rec.JobName
	}
	if rec.Transcript != nil {
		response["transcript"] = *rec.Transcript
	}
	if rec.ErrorMessage != nil {
		response["error_message"] = *rec.ErrorMessage
	}
	if rec.ProcessingTimeMs != nil {
		response["processing_time_ms"] = *rec.ProcessingTimeMs
	}
	if len(rec.Metadata) > 0 {
		response["metadata"] = rec.Metadata
	}
	return response
}
