package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dvloznov/cnab-returns/internal/cnab"
	"github.com/dvloznov/cnab-returns/internal/jobs"
	"github.com/dvloznov/cnab-returns/internal/logger"
)

// NewJobHandler returns a jobs.JobHandler that ingests ParseReturnFileJobs.
// Broken files and unknown banks fail permanently; anything else (GCS or
// BigQuery trouble) is left to the queue's retry. A zero timeout means none.
func NewJobHandler(deps Deps, timeout time.Duration) jobs.JobHandler {
	return func(ctx context.Context, job jobs.Job) error {
		parseJob, ok := job.(*jobs.ParseReturnFileJob)
		if !ok {
			return jobs.Permanent(fmt.Errorf("unexpected job type: %T", job))
		}

		log := logger.WithFields(logger.FromContext(ctx), map[string]interface{}{
			"source": parseJob.Source,
			"force":  parseJob.Force,
		})
		ctx = logger.WithContext(ctx, log)
		log.Info().Msg("Processing return file job")

		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		out, err := IngestReturnFile(ctx, deps, parseJob.Source, Options{Force: parseJob.Force})
		if err != nil {
			if errors.Is(err, cnab.ErrStructural) || errors.Is(err, cnab.ErrUnknownBank) {
				return jobs.Permanent(err)
			}
			return err
		}

		parseJob.FileID = out.FileID
		parseJob.ParsingRunID = out.ParsingRunID
		parseJob.Skipped = out.Skipped
		if out.Result != nil {
			parseJob.Transactions = len(out.Result.Transactions)
		}

		log.Info().
			Str("file_id", out.FileID).
			Bool("skipped", out.Skipped).
			Msg("Return file job completed")
		return nil
	}
}
