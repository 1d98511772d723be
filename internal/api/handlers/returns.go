package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dvloznov/cnab-returns/internal/api/middleware"
	"github.com/dvloznov/cnab-returns/internal/cnab"
	"github.com/dvloznov/cnab-returns/internal/gcs"
	infra "github.com/dvloznov/cnab-returns/internal/infra/bigquery"
	"github.com/dvloznov/cnab-returns/internal/jobs"
	"github.com/dvloznov/cnab-returns/internal/logger"
	"github.com/dvloznov/cnab-returns/internal/pipeline"
)

// MaxReturnFileSize bounds request bodies of the parse endpoint.
const MaxReturnFileSize = 32 << 20

// ReturnsHandler handles return-file endpoints.
type ReturnsHandler struct {
	registry    *cnab.Registry
	defaultBank string
	repo        infra.LedgerRepository
	publisher   jobs.Publisher
}

// NewReturnsHandler creates a new returns handler. repo and publisher may be
// nil, in which case the ledger and ingestion endpoints answer 503.
func NewReturnsHandler(registry *cnab.Registry, defaultBank string, repo infra.LedgerRepository, publisher jobs.Publisher) *ReturnsHandler {
	return &ReturnsHandler{
		registry:    registry,
		defaultBank: defaultBank,
		repo:        repo,
		publisher:   publisher,
	}
}

// Parse handles POST /api/returns/parse. The body is the raw return file;
// ?bank=237 forces a bank profile.
func (h *ReturnsHandler) Parse(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxReturnFileSize))
	if err != nil {
		middleware.WriteError(w, http.StatusRequestEntityTooLarge, "Request body too large")
		return
	}
	if len(data) == 0 {
		middleware.WriteError(w, http.StatusBadRequest, "Request body is empty")
		return
	}

	var result *cnab.ParseResult
	if bank := r.URL.Query().Get("bank"); bank != "" {
		profile, lookupErr := h.registry.Lookup(bank)
		if lookupErr != nil {
			middleware.WriteError(w, http.StatusBadRequest, "Unsupported bank: "+bank)
			return
		}
		result, err = pipeline.ParseBytesWithProfile(ctx, data, profile)
	} else {
		result, _, err = pipeline.ParseBytes(ctx, data, h.registry, h.defaultBank)
	}

	var structural *cnab.StructuralError
	switch {
	case err == nil:
	case errors.As(err, &structural):
		middleware.WriteError(w, http.StatusUnprocessableEntity, structural.Error())
		return
	case errors.Is(err, cnab.ErrUnknownBank):
		middleware.WriteError(w, http.StatusBadRequest, "Could not determine the bank of the return file")
		return
	default:
		log.Error().Err(err).Msg("Failed to parse return file")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to parse return file")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, result)
}

// Ingest handles POST /api/returns/ingest.
func (h *ReturnsHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	if h.publisher == nil {
		middleware.WriteError(w, http.StatusServiceUnavailable, "Ingestion is not configured")
		return
	}

	var req struct {
		Source string `json:"source"`
		Force  bool   `json:"force"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Source = strings.TrimSpace(req.Source)
	if !gcs.IsGCSURI(req.Source) {
		middleware.WriteError(w, http.StatusBadRequest, "source must be a gs:// URI")
		return
	}
	if _, _, err := gcs.ParseGCSURI(req.Source); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	log := logger.FromContext(ctx)

	job := &jobs.ParseReturnFileJob{Source: req.Source, Force: req.Force}
	if err := h.publisher.PublishParseReturnFile(ctx, job); err != nil {
		log.Error().Err(err).Msg("Failed to enqueue ingestion job")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to enqueue ingestion job")
		return
	}

	log.Info().Str("job_id", job.JobID).Str("source", req.Source).Msg("Ingestion job enqueued")

	middleware.WriteJSON(w, http.StatusAccepted, map[string]string{
		"job_id": job.JobID,
		"source": job.Source,
		"status": string(job.Status),
	})
}

// ListReturnFiles handles GET /api/returns
func (h *ReturnsHandler) ListReturnFiles(w http.ResponseWriter, r *http.Request) {
	if h.repo == nil {
		middleware.WriteError(w, http.StatusServiceUnavailable, "Ledger is not configured")
		return
	}

	ctx := r.Context()
	limit := 50
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if n, err := strconv.Atoi(limitStr); err == nil && n > 0 {
			limit = n
		}
	}

	files, err := h.repo.ListReturnFiles(ctx, limit)
	if err != nil {
		log := logger.FromContext(ctx)
		log.Error().Err(err).Msg("Failed to list return files")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list return files")
		return
	}

	out := make([]map[string]any, 0, len(files))
	for _, f := range files {
		out = append(out, f.ToSerializable())
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"return_files": out,
		"count":        len(out),
	})
}

// ListTransactions handles GET /api/returns/{fileID}/transactions
func (h *ReturnsHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	if h.repo == nil {
		middleware.WriteError(w, http.StatusServiceUnavailable, "Ledger is not configured")
		return
	}

	ctx := r.Context()
	fileID := chi.URLParam(r, "fileID")

	rows, err := h.repo.ListTransactionsByFile(ctx, fileID)
	if err != nil {
		log := logger.FromContext(ctx)
		log.Error().Err(err).Str("file_id", fileID).Msg("Failed to list transactions")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list transactions")
		return
	}

	out := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.ToSerializable())
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"file_id":      fileID,
		"transactions": out,
		"count":        len(out),
	})
}
