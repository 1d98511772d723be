package pipeline

import (
	"context"
	"fmt"

	"github.com/dvloznov/cnab-returns/internal/cnab"
	"github.com/dvloznov/cnab-returns/internal/logger"
)

// IngestResult describes what an ingestion did.
type IngestResult struct {
	FileID       string
	ParsingRunID string
	Skipped      bool
	Result       *cnab.ParseResult
}

// IngestReturnFile fetches source (a gs:// URI or local path), parses it and
// loads the reconciled transactions into the ledger.
func IngestReturnFile(ctx context.Context, deps Deps, source string, opts Options) (*IngestResult, error) {
	log := logger.FromContext(ctx).With().Str("source", source).Logger()
	ctx = logger.WithContext(ctx, log)

	state := &PipelineState{Source: source, Options: opts}
	if err := NewReturnFileIngestionPipeline(deps).Execute(ctx, state); err != nil {
		log.Error().Err(err).Str("file_id", state.FileID).Msg("return file ingestion failed")
		return nil, fmt.Errorf("IngestReturnFile: %w", err)
	}

	out := &IngestResult{
		FileID:       state.FileID,
		ParsingRunID: state.ParsingRunID,
		Skipped:      state.Skip,
		Result:       state.Result,
	}
	if !out.Skipped {
		log.Info().
			Str("file_id", out.FileID).
			Str("parsing_run_id", out.ParsingRunID).
			Int("transactions", len(out.Result.Transactions)).
			Msg("return file ingested")
	}
	return out, nil
}
