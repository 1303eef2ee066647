package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS transcriptions (
	id                 UUID PRIMARY KEY,
	user_id            TEXT NOT NULL,
	filename           TEXT NOT NULL,
	mime_type          TEXT NOT NULL,
	size_bytes         BIGINT NOT NULL,
	file_url           TEXT NOT NULL DEFAULT '',
	job_name           TEXT NOT NULL DEFAULT '',
	status             TEXT NOT NULL,
	transcript         TEXT,
	error_message      TEXT,
	processing_time_ms INTEGER,
	metadata           JSONB NOT NULL DEFAULT '{}'::jsonb,
	created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_transcriptions_user_created ON transcriptions (user_id, created_at DESC);
`

// Open connects to Postgres at databaseURL, checks the connection and
// creates the transcriptions table if needed.
func Open(ctx context.Context, databaseURL string) (*sql.DB, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	conn, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := Migrate(ctx, conn); err != nil {
		conn.Close()
		return nil, err
	}

	log.Printf("[DB] Connected to PostgreSQL")
	return conn, nil
}

// Migrate creates the schema used by the record store.
func Migrate(ctx context.Context, conn *sql.DB) error {
	if _, err := conn.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
