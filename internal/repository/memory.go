package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/Parag0712/levalsupermind/internal/model"
)

type memoryRepository struct {
	mu      sync.RWMutex
	records map[uuid.UUID]model.TranscriptionRecord
}

// NewMemoryRepository creates a repository that keeps records in process
// memory. Used when DATABASE_URL is not set.
func NewMemoryRepository() TranscriptionRepository {
	return &memoryRepository{records: make(map[uuid.UUID]model.TranscriptionRecord)}
}

func (r *memoryRepository) Create(ctx context.Context, rec *model.TranscriptionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *rec
	stored.Metadata = copyMetadata(rec.Metadata)
	r.records[rec.ID] = stored
	return nil
}

func (r *memoryRepository) UpdateResult(ctx context.Context, rec *model.TranscriptionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.records[rec.ID]
	if !ok {
		return ErrNotFound
	}

	if rec.Status != "" {
		stored.Status = rec.Status
	}
	if rec.FileURL != "" {
		stored.FileURL = rec.FileURL
	}
	if rec.JobName != "" {
		stored.JobName = rec.JobName
	}
	if rec.Transcript != nil {
		stored.Transcript = rec.Transcript
	}
	if rec.ErrorMessage != nil {
		stored.ErrorMessage = rec.ErrorMessage
	}
	if rec.ProcessingTimeMs != nil {
		stored.ProcessingTimeMs = rec.ProcessingTimeMs
	}

	// Merge new metadata with existing
	merged := copyMetadata(stored.Metadata)
	for k, v := range rec.Metadata {
		merged[k] = v
	}
	stored.Metadata = merged

	r.records[rec.ID] = stored
	return nil
}

func (r *memoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.TranscriptionRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	stored.Metadata = copyMetadata(stored.Metadata)
	return &stored, nil
}

func (r *memoryRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]model.TranscriptionRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := []model.TranscriptionRecord{}
	for _, rec := range r.records {
		if rec.UserID == userID {
			rec.Metadata = copyMetadata(rec.Metadata)
			records = append(records, rec)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})

	if offset >= len(records) {
		return []model.TranscriptionRecord{}, nil
	}
	records = records[offset:]
	if limit > 0 && limit < len(records) {
		records = records[:limit]
	}
	return records, nil
}

func copyMetadata(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
