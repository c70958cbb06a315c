// Package db provides PostgreSQL access for resume documents and pagination runs.
package db

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrDocumentNotFound is returned when no document matches the requested ID
var ErrDocumentNotFound = errors.New("document not found")

//go:embed schema.sql
var schemaSQL string

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Ping checks that the database is reachable
func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

// Migrate creates the documents and pagination_runs tables if they are missing
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// CreateDocument stores a new document snapshot owned by userID
func (db *DB) CreateDocument(ctx context.Context, userID uuid.UUID, content any) (uuid.UUID, error) {
	jsonBytes, err := json.Marshal(content)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal document: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO documents (user_id, content) VALUES ($1, $2) RETURNING id`,
		userID, jsonBytes,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create document: %w", err)
	}
	return id, nil
}

// GetDocument loads the latest snapshot of a document
func (db *DB) GetDocument(ctx context.Context, id uuid.UUID) (*DocumentRecord, error) {
	var rec DocumentRecord
	var content []byte

	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, content, created_at, updated_at
		 FROM documents WHERE id = $1`,
		id,
	).Scan(&rec.ID, &rec.UserID, &content, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	if err := json.Unmarshal(content, &rec.Content); err != nil {
		return nil, fmt.Errorf("failed to decode document %s: %w", id, err)
	}
	return &rec, nil
}

// SavePaginationRun persists a pagination run
func (db *DB) SavePaginationRun(ctx context.Context, run *PaginationRun) error {
	err := db.pool.QueryRow(ctx,
		`INSERT INTO pagination_runs (id, document_id, topology, page_count, unit_count, pages)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at`,
		run.ID, run.DocumentID, run.Topology, run.PageCount, run.UnitCount, []byte(run.Pages),
	).Scan(&run.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save pagination run: %w", err)
	}
	return nil
}

// GetLatestPaginationRun returns the most recent run for a document, or nil if none exists
func (db *DB) GetLatestPaginationRun(ctx context.Context, documentID uuid.UUID) (*PaginationRun, error) {
	var run PaginationRun
	var pages []byte

	err := db.pool.QueryRow(ctx,
		`SELECT id, document_id, topology, page_count, unit_count, pages, created_at
		 FROM pagination_runs WHERE document_id = $1
		 ORDER BY created_at DESC LIMIT 1`,
		documentID,
	).Scan(&run.ID, &run.DocumentID, &run.Topology, &run.PageCount, &run.UnitCount, &pages, &run.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest pagination run: %w", err)
	}
	run.Pages = pages
	return &run, nil
}

// ListPaginationRuns returns recent runs for a document without their pages
func (db *DB) ListPaginationRuns(ctx context.Context, documentID uuid.UUID, limit int) ([]PaginationRun, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, document_id, topology, page_count, unit_count, created_at
		 FROM pagination_runs WHERE document_id = $1
		 ORDER BY created_at DESC LIMIT $2`,
		documentID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list pagination runs: %w", err)
	}
	defer rows.Close()

	var runs []PaginationRun
	for rows.Next() {
		var run PaginationRun
		if err := rows.Scan(&run.ID, &run.DocumentID, &run.Topology, &run.PageCount, &run.UnitCount, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan pagination run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
