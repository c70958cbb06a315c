package db

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-paginator/internal/pagination"
	"github.com/jonathan/resume-paginator/internal/types"
)

// DocumentRecord is a stored resume snapshot and its owner
type DocumentRecord struct {
	ID        uuid.UUID      `json:"id"`
	UserID    uuid.UUID      `json:"user_id"`
	Content   types.Document `json:"content"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// PaginationRun is a persisted pagination result for one document.
// Pages is empty when the run was loaded by ListPaginationRuns.
type PaginationRun struct {
	ID         uuid.UUID       `json:"id"`
	DocumentID uuid.UUID       `json:"document_id"`
	Topology   string          `json:"topology"`
	PageCount  int             `json:"page_count"`
	UnitCount  int             `json:"unit_count"`
	Pages      json.RawMessage `json:"pages,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// NewPaginationRun builds a run record from an engine result
func NewPaginationRun(documentID uuid.UUID, result *pagination.Result) (*PaginationRun, error) {
	if result == nil {
		return nil, fmt.Errorf("pagination result is nil")
	}
	pages, err := json.Marshal(result.Pages)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal pages: %w", err)
	}
	return &PaginationRun{
		ID:         result.RunID,
		DocumentID: documentID,
		Topology:   string(result.Topology),
		PageCount:  result.PageCount(),
		UnitCount:  result.UnitCount,
		Pages:      pages,
	}, nil
}

// Result rebuilds the engine result stored in the run
func (r *PaginationRun) Result() (*pagination.Result, error) {
	res := &pagination.Result{
		RunID:     r.ID,
		Topology:  pagination.Topology(r.Topology),
		UnitCount: r.UnitCount,
	}
	if err := json.Unmarshal(r.Pages, &res.Pages); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stored pages: %w", err)
	}
	return res, nil
}
