package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-paginator/internal/db"
	"github.com/jonathan/resume-paginator/internal/pagination"
	"github.com/jonathan/resume-paginator/internal/preview"
	"github.com/jonathan/resume-paginator/internal/schemas"
	"github.com/jonathan/resume-paginator/internal/server/middleware"
)

const maxBodyBytes = 1 << 20

// Page size bounds for GET /documents/{id}/runs
const (
	defaultRunsLimit = 20
	maxRunsLimit     = 100
)

// PaginateRequest is the body of POST /paginate
type PaginateRequest struct {
	Document json.RawMessage `json:"document"`
	Topology string          `json:"topology,omitempty"`
}

// handlePaginate paginates a document sent in the request body. Nothing is persisted.
func (s *Server) handlePaginate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req PaginateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if len(req.Document) == 0 {
		s.writeError(w, &ErrValidation{Field: "document", Message: "is required"})
		return
	}

	doc, err := schemas.DecodeDocument(req.Document)
	if err != nil {
		s.writeError(w, err)
		return
	}

	engine, err := s.engineFor(req.Topology)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if doc.IsEmpty() {
		s.logger.Debug("document has no placeable content")
	}

	start := time.Now()
	res, err := engine.Paginate(doc)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.logRun(res, uuid.Nil, start)
	s.jsonResponse(w, http.StatusOK, res)
}

// handleCreateDocument stores a document snapshot owned by the caller
func (s *Server) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if !json.Valid(data) {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body: malformed JSON")
		return
	}

	doc, err := schemas.DecodeDocument(data)
	if err != nil {
		s.writeError(w, err)
		return
	}

	userID, _ := middleware.UserID(r.Context())
	id, err := s.store.CreateDocument(r.Context(), userID, doc)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.logger.Debug("stored document", "document", id, "user", userID, "empty", doc.IsEmpty())
	s.jsonResponse(w, http.StatusCreated, map[string]any{"id": id})
}

// handleDocumentPages paginates the stored snapshot of a document owned by the caller
func (s *Server) handleDocumentPages(w http.ResponseWriter, r *http.Request) {
	rec, engine, err := s.documentRequest(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	res, stale, err := s.paginateDocument(r.Context(), engine, rec)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("X-Run-Stale", strconv.FormatBool(stale))
	s.jsonResponse(w, http.StatusOK, res)
}

// handleDocumentPreview returns a wireframe PDF of the document's pages
func (s *Server) handleDocumentPreview(w http.ResponseWriter, r *http.Request) {
	rec, engine, err := s.documentRequest(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	res, _, err := s.paginateDocument(r.Context(), engine, rec)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var buf bytes.Buffer
	renderer := preview.NewRenderer(s.budget, preview.Options{
		Title:      rec.Content.PersonalInfo.Name,
		ShowLabels: r.URL.Query().Get("labels") != "false",
	})
	if err := renderer.Render(&buf, res); err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		s.logger.Error("failed to write preview", "document", rec.ID, "err", err)
	}
}

// handleListRuns lists the persisted runs of a document, newest first, without pages
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := defaultRunsLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			s.writeError(w, &ErrValidation{Field: "limit", Message: "must be a positive integer"})
			return
		}
		limit = min(n, maxRunsLimit)
	}

	rec, err := s.ownedDocument(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	runs, err := s.store.ListPaginationRuns(r.Context(), rec.ID, limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if runs == nil {
		runs = []db.PaginationRun{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"document_id": rec.ID,
		"runs":        runs,
	})
}

// handleLatestRun returns the most recently persisted pages of a document
// without running the engine again
func (s *Server) handleLatestRun(w http.ResponseWriter, r *http.Request) {
	rec, err := s.ownedDocument(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	run, err := s.store.GetLatestPaginationRun(r.Context(), rec.ID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if run == nil {
		s.writeError(w, &ErrNoRuns{DocumentID: rec.ID})
		return
	}

	res, err := run.Result()
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Last-Modified", run.CreatedAt.UTC().Format(http.TimeFormat))
	s.jsonResponse(w, http.StatusOK, res)
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"documents": s.store != nil,
	})
}

// documentRequest picks the engine for the request and loads the caller's document
func (s *Server) documentRequest(r *http.Request) (*db.DocumentRecord, *pagination.Engine, error) {
	engine, err := s.engineFor(r.URL.Query().Get("topology"))
	if err != nil {
		return nil, nil, err
	}

	rec, err := s.ownedDocument(r)
	if err != nil {
		return nil, nil, err
	}
	return rec, engine, nil
}

// ownedDocument resolves the path document and checks the caller owns it
func (s *Server) ownedDocument(r *http.Request) (*db.DocumentRecord, error) {
	raw := r.PathValue("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, &ErrInvalidID{Value: raw}
	}

	rec, err := s.store.GetDocument(r.Context(), id)
	if err != nil {
		return nil, err
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok || rec.UserID != userID {
		return nil, &ErrForbidden{DocumentID: id}
	}
	return rec, nil
}

// paginateDocument runs the engine on a stored snapshot. When a newer run for the
// same document committed first, the result is reported stale and not persisted.
func (s *Server) paginateDocument(ctx context.Context, engine *pagination.Engine, rec *db.DocumentRecord) (*pagination.Result, bool, error) {
	key := rec.ID.String()
	seq := s.tracker.Begin(key)

	start := time.Now()
	res, err := engine.Paginate(&rec.Content)
	if err != nil {
		return nil, false, err
	}
	s.logRun(res, rec.ID, start)

	if !s.tracker.Commit(key, seq) {
		s.logger.Debug("discarding stale run", "document", rec.ID, "run", res.RunID, "seq", seq)
		return res, true, nil
	}

	run, err := db.NewPaginationRun(rec.ID, res)
	if err == nil {
		err = s.store.SavePaginationRun(ctx, run)
	}
	if err != nil {
		s.logger.Warn("failed to persist pagination run", "document", rec.ID, "run", res.RunID, "err", err)
	}
	return res, false, nil
}

// engineFor returns the engine for a topology name, or the default one for ""
func (s *Server) engineFor(name string) (*pagination.Engine, error) {
	topology := s.topology
	if name != "" {
		t, err := pagination.ParseTopology(name)
		if err != nil {
			return nil, &ErrValidation{Field: "topology", Message: err.Error()}
		}
		topology = t
	}
	return s.engines[topology], nil
}

func (s *Server) logRun(res *pagination.Result, documentID uuid.UUID, start time.Time) {
	kv := []any{
		"run", res.RunID,
		"topology", res.Topology,
		"pages", res.PageCount(),
		"units", res.UnitCount,
		"elapsed", time.Since(start),
	}
	if documentID != uuid.Nil {
		kv = append(kv, "document", documentID)
	}
	s.logger.Debug("paginated", kv...)
}

// writeError maps err to a status and writes it. Server errors are logged and
// their details withheld from the client.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
		s.errorResponse(w, status, "internal server error")
		return
	}

	var validationErr *schemas.ValidationError
	if errors.As(err, &validationErr) {
		fields := make([]map[string]string, 0, len(validationErr.Errors))
		for _, fe := range validationErr.Errors {
			fields = append(fields, map[string]string{"field": fe.Field, "message": fe.Message})
		}
		s.jsonResponse(w, status, map[string]any{
			"error":  "document does not match schema",
			"fields": fields,
		})
		return
	}

	s.errorResponse(w, status, err.Error())
}
