package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Parag0712/levalsupermind/internal/model"
)

// ErrNotFound is returned when no record has the requested id
var ErrNotFound = errors.New("transcription record not found")

// TranscriptionRepository defines data access for transcription records
type TranscriptionRepository interface {
	// Create creates a new record
	Create(ctx context.Context, rec *model.TranscriptionRecord) error

	// UpdateResult updates status, transcript, error and timing. Metadata is
	// merged into the stored metadata.
	UpdateResult(ctx context.Context, rec *model.TranscriptionRecord) error

	// GetByID retrieves a record by ID
	GetByID(ctx context.Context, id uuid.UUID) (*model.TranscriptionRecord, error)

	// ListByUser retrieves a user's records, newest first
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]model.TranscriptionRecord, error)
}
