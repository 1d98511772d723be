// Package api exposes return-file parsing and ingestion over HTTP.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/dvloznov/cnab-returns/internal/api/handlers"
	"github.com/dvloznov/cnab-returns/internal/api/middleware"
	"github.com/dvloznov/cnab-returns/internal/cnab"
	infra "github.com/dvloznov/cnab-returns/internal/infra/bigquery"
	"github.com/dvloznov/cnab-returns/internal/jobs"
)

// Deps are the collaborators behind the HTTP surface. Repo, Publisher and
// Jobs may be nil when the server runs without GCP access.
type Deps struct {
	Registry       *cnab.Registry
	DefaultBank    string
	Repo           infra.LedgerRepository
	Publisher      jobs.Publisher
	Jobs           jobs.JobStore
	AllowedOrigins []string
	Log            zerolog.Logger
}

// NewRouter wires middleware and routes.
func NewRouter(deps Deps) http.Handler {
	returns := handlers.NewReturnsHandler(deps.Registry, deps.DefaultBank, deps.Repo, deps.Publisher)

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID(deps.Log))
	r.Use(middleware.Recovery)
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(deps.AllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
			"banks":  deps.Registry.Codes(),
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/returns", func(r chi.Router) {
			r.Get("/", returns.ListReturnFiles)
			r.Post("/parse", returns.Parse)
			r.Post("/ingest", returns.Ingest)
			r.Get("/{fileID}/transactions", returns.ListTransactions)
		})

		if deps.Jobs != nil {
			jobsHandler := handlers.NewJobsHandler(deps.Jobs)
			r.Get("/jobs", jobsHandler.ListJobs)
			r.Get("/jobs/{id}", jobsHandler.GetJob)
		}
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return r
}
