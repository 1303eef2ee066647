package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Parag0712/levalsupermind/internal/model"
)

const recordColumns = `
	id, user_id, filename, mime_type, size_bytes, file_url, job_name,
	status, transcript, error_message, processing_time_ms, metadata, created_at`

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(db *sql.DB) TranscriptionRepository {
	return &postgresRepository{db: db}
}

// Create creates a new transcription record
func (r *postgresRepository) Create(ctx context.Context, rec *model.TranscriptionRecord) error {
	query := `
		INSERT INTO transcriptions (` + recordColumns + `
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		)
	`

	// Convert metadata to JSONB
	metadataJSON, err := marshalMetadata(rec.Metadata)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, query,
		rec.ID,
		rec.UserID,
		rec.Filename,
		rec.MIMEType,
		rec.SizeBytes,
		rec.FileURL,
		rec.JobName,
		rec.Status,
		rec.Transcript,
		rec.ErrorMessage,
		rec.ProcessingTimeMs,
		metadataJSON,
		rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create transcription record: %w", err)
	}

	return nil
}

// UpdateResult updates the pipeline result. Empty strings and nil pointers
// leave the stored column unchanged.
func (r *postgresRepository) UpdateResult(ctx context.Context, rec *model.TranscriptionRecord) error {
	query := `
		UPDATE transcriptions
		SET
			status = COALESCE(NULLIF($1, ''), status),
			file_url = COALESCE(NULLIF($2, ''), file_url),
			job_name = COALESCE(NULLIF($3, ''), job_name),
			transcript = COALESCE($4, transcript),
			error_message = COALESCE($5, error_message),
			processing_time_ms = COALESCE($6, processing_time_ms),
			metadata = metadata || $7::jsonb
		WHERE id = $8
	`

	metadataJSON, err := marshalMetadata(rec.Metadata)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, query,
		rec.Status,
		rec.FileURL,
		rec.JobName,
		rec.Transcript,
		rec.ErrorMessage,
		rec.ProcessingTimeMs,
		metadataJSON,
		rec.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transcription record: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID retrieves a transcription record by ID
func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.TranscriptionRecord, error) {
	query := `SELECT ` + recordColumns + `
		FROM transcriptions
		WHERE id = $1
	`

	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transcription record: %w", err)
	}
	return rec, nil
}

// ListByUser retrieves transcription records for a user with pagination
func (r *postgresRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]model.TranscriptionRecord, error) {
	query := `SELECT ` + recordColumns + `
		FROM transcriptions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query transcription records: %w", err)
	}
	defer rows.Close()

	records := []model.TranscriptionRecord{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transcription record: %w", err)
		}
		records = append(records, *rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return records, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row rowScanner) (*model.TranscriptionRecord, error) {
	var rec model.TranscriptionRecord
	var metadataJSON []byte

	err := row.Scan(
		&rec.ID,
		&rec.UserID,
		&rec.Filename,
		&rec.MIMEType,
		&rec.SizeBytes,
		&rec.FileURL,
		&rec.JobName,
		&rec.Status,
		&rec.Transcript,
		&rec.ErrorMessage,
		&rec.ProcessingTimeMs,
		&metadataJSON,
		&rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	// Parse metadata JSON
	rec.Metadata = make(map[string]interface{})
	if len(metadataJSON) > 0 {
		if err := json.Unmarshal(metadataJSON, &rec.Metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
		}
	}
	return &rec, nil
}

func marshalMetadata(m map[string]interface{}) ([]byte, error) {
	if m == nil {
		m = map[string]interface{}{}
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata: %w", err)
	}
	return data, nil
}
