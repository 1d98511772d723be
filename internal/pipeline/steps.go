package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	bigquerylib "cloud.google.com/go/bigquery"
	"github.com/google/uuid"

	"github.com/dvloznov/cnab-returns/internal/cnab"
	"github.com/dvloznov/cnab-returns/internal/gcs"
	infra "github.com/dvloznov/cnab-returns/internal/infra/bigquery"
	"github.com/dvloznov/cnab-returns/internal/logger"
)

// PipelineStep represents a single step in the ingestion pipeline.
type PipelineStep interface {
	Execute(ctx context.Context, state *PipelineState) error
}

// PipelineState holds the shared state across all pipeline steps.
type PipelineState struct {
	Source   string
	Options  Options
	Data     []byte
	Checksum string

	FileID       string
	ParsingRunID string
	Reprocess    bool
	// Skip stops the pipeline without error, e.g. for an already ingested file.
	Skip bool

	Profile  *cnab.BankProfile
	Result   *cnab.ParseResult
	ParseErr error
}

// Step 1: FetchFileStep loads the file bytes and their checksum.
type FetchFileStep struct {
	storage StorageService
}

func (s *FetchFileStep) Execute(ctx context.Context, state *PipelineState) error {
	data, err := gcs.ReadSource(ctx, s.storage, state.Source)
	if err != nil {
		return fmt.Errorf("FetchFileStep: %w", err)
	}
	sum := sha256.Sum256(data)
	state.Data = data
	state.Checksum = hex.EncodeToString(sum[:])
	return nil
}

// Step 2: DedupeStep skips files the ledger already holds, unless forced.
// A known file with no successful run (an earlier attempt failed after the
// file row was written) is reprocessed under its existing FileID.
type DedupeStep struct {
	repo LedgerRepository
}

func (s *DedupeStep) Execute(ctx context.Context, state *PipelineState) error {
	log := logger.FromContext(ctx)

	existing, err := s.repo.FindReturnFileByChecksum(ctx, state.Checksum)
	if err != nil {
		return fmt.Errorf("DedupeStep: %w", err)
	}
	if existing == nil {
		return nil
	}

	state.FileID = existing.FileID
	if !state.Options.Force {
		succeeded, err := s.repo.HasSuccessfulParsingRun(ctx, existing.FileID)
		if err != nil {
			return fmt.Errorf("DedupeStep: %w", err)
		}
		if succeeded {
			log.Info().
				Str("file_id", existing.FileID).
				Str("checksum", state.Checksum).
				Msg("return file already ingested, skipping")
			state.Skip = true
			return nil
		}
		log.Info().Str("file_id", existing.FileID).Msg("return file has no successful run, resuming")
		state.Reprocess = true
		return nil
	}

	log.Info().Str("file_id", existing.FileID).Msg("reprocessing return file")
	state.Reprocess = true
	return nil
}

// Step 3: ParseReturnFileStep parses the file in memory. A parse failure is
// kept in the state so it can be recorded against a parsing run.
type ParseReturnFileStep struct {
	registry    *cnab.Registry
	defaultBank string
}

func (s *ParseReturnFileStep) Execute(ctx context.Context, state *PipelineState) error {
	result, profile, err := ParseBytes(ctx, state.Data, s.registry, s.defaultBank)
	state.Result = result
	state.Profile = profile
	state.ParseErr = err
	return nil
}

// Step 4: CreateReturnFileStep records the file in return_files.
type CreateReturnFileStep struct {
	repo LedgerRepository
}

func (s *CreateReturnFileStep) Execute(ctx context.Context, state *PipelineState) error {
	if state.Reprocess {
		return nil
	}

	status := infra.FileStatusParsed
	if state.ParseErr != nil {
		status = infra.FileStatusFailed
	}

	row := &infra.ReturnFileRow{
		FileID:           uuid.NewString(),
		SourceURI:        state.Source,
		OriginalFilename: gcs.SourceFilename(state.Source),
		ChecksumSHA256:   state.Checksum,
		UploadTS:         time.Now(),
		ProcessedTS:      bigquerylib.NullTimestamp{Timestamp: time.Now(), Valid: true},
		ParsingStatus:    status,
	}
	if state.Result != nil {
		infra.ApplyHeader(row, state.Result)
	}

	if err := s.repo.InsertReturnFile(ctx, row); err != nil {
		return fmt.Errorf("CreateReturnFileStep: %w", err)
	}
	state.FileID = row.FileID
	return nil
}

// Step 5: StartParsingRunStep starts a parsing run (status=RUNNING).
type StartParsingRunStep struct {
	repo LedgerRepository
}

func (s *StartParsingRunStep) Execute(ctx context.Context, state *PipelineState) error {
	bankCode := ""
	if state.Profile != nil {
		bankCode = state.Profile.Code
	}
	parsingRunID, err := s.repo.StartParsingRun(ctx, state.FileID, bankCode)
	if err != nil {
		return fmt.Errorf("StartParsingRunStep: %w", err)
	}
	state.ParsingRunID = parsingRunID
	return nil
}

// Step 6: CheckParseStep fails the run when the file could not be parsed.
type CheckParseStep struct {
	repo LedgerRepository
}

func (s *CheckParseStep) Execute(ctx context.Context, state *PipelineState) error {
	if state.ParseErr == nil {
		return nil
	}
	s.repo.MarkParsingRunFailed(ctx, state.ParsingRunID, state.ParseErr)
	return fmt.Errorf("CheckParseStep: %w", state.ParseErr)
}

// Step 7: InsertTransactionsStep writes the kept transactions to the ledger.
type InsertTransactionsStep struct {
	repo LedgerRepository
}

func (s *InsertTransactionsStep) Execute(ctx context.Context, state *PipelineState) error {
	rows := infra.RowsFromResult(state.FileID, state.ParsingRunID, state.Profile.Code, state.Result)
	if err := s.repo.InsertTransactions(ctx, rows); err != nil {
		s.repo.MarkParsingRunFailed(ctx, state.ParsingRunID, err)
		return fmt.Errorf("InsertTransactionsStep: %w", err)
	}
	return nil
}

// Step 8: MarkSuccessStep marks the parsing run as SUCCESS and retires
// earlier runs of a reprocessed file.
type MarkSuccessStep struct {
	repo LedgerRepository
}

func (s *MarkSuccessStep) Execute(ctx context.Context, state *PipelineState) error {
	if err := s.repo.MarkParsingRunSucceeded(ctx, state.ParsingRunID, infra.SummaryFromResult(state.Result)); err != nil {
		return fmt.Errorf("MarkSuccessStep: %w", err)
	}
	if state.Reprocess {
		if err := s.repo.MarkParsingRunsAsSuperseded(ctx, state.FileID, state.ParsingRunID); err != nil {
			return fmt.Errorf("MarkSuccessStep: %w", err)
		}
	}
	return nil
}

// Pipeline executes a sequence of steps in order.
type Pipeline struct {
	steps []PipelineStep
}

// NewPipeline creates a new pipeline with the given steps.
func NewPipeline(steps ...PipelineStep) *Pipeline {
	return &Pipeline{steps: steps}
}

// Execute runs all steps in the pipeline sequentially, stopping early when
// a step sets state.Skip.
func (p *Pipeline) Execute(ctx context.Context, state *PipelineState) error {
	for i, step := range p.steps {
		if err := step.Execute(ctx, state); err != nil {
			return fmt.Errorf("pipeline step %d failed: %w", i+1, err)
		}
		if state.Skip {
			return nil
		}
	}
	return nil
}

// NewReturnFileIngestionPipeline wires the standard ingestion steps.
func NewReturnFileIngestionPipeline(deps Deps) *Pipeline {
	return NewPipeline(
		&FetchFileStep{storage: deps.Storage},
		&DedupeStep{repo: deps.Repo},
		&ParseReturnFileStep{registry: deps.Registry, defaultBank: deps.DefaultBank},
		&CreateReturnFileStep{repo: deps.Repo},
		&StartParsingRunStep{repo: deps.Repo},
		&CheckParseStep{repo: deps.Repo},
		&InsertTransactionsStep{repo: deps.Repo},
		&MarkSuccessStep{repo: deps.Repo},
	)
}
