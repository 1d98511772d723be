package pipeline

import (
	"github.com/dvloznov/cnab-returns/internal/cnab"
	"github.com/dvloznov/cnab-returns/internal/gcs"
	infra "github.com/dvloznov/cnab-returns/internal/infra/bigquery"
)

// StorageService is the file delivery used to fetch gs:// sources.
type StorageService = gcs.StorageService

// LedgerRepository is the ledger the pipeline writes to.
type LedgerRepository = infra.LedgerRepository

// Deps are the collaborators of an ingestion.
type Deps struct {
	Repo     LedgerRepository
	Storage  StorageService
	Registry *cnab.Registry
	// DefaultBank is used when a file's header does not name a known bank.
	DefaultBank string
}

// Options tune a single ingestion.
type Options struct {
	// Force reprocesses a file whose checksum is already in the ledger.
	Force bool
}
