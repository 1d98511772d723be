package bigquery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"github.com/dvloznov/cnab-returns/internal/logger"
)

// ParserVersion is recorded on every parsing run.
const ParserVersion = "cnab400-v1"

// maxErrorMessageLen bounds error_message.
const maxErrorMessageLen = 2000

// StartParsingRunWithClient inserts a new row into parsing_runs with status=RUNNING
// and returns the generated parsing_run_id.
func StartParsingRunWithClient(ctx context.Context, client *bigquery.Client, ds Dataset, fileID, bankCode string) (string, error) {
	parsingRunID := uuid.NewString()

	q := client.Query(fmt.Sprintf(`
		INSERT %s (
			parsing_run_id,
			file_id,
			started_ts,
			bank_code,
			parser_version,
			status
		)
		VALUES (
			@parsing_run_id,
			@file_id,
			@started_ts,
			@bank_code,
			@parser_version,
			@status
		)
	`, ds.table(parsingRunsTable)))

	q.Parameters = []bigquery.QueryParameter{
		{Name: "parsing_run_id", Value: parsingRunID},
		{Name: "file_id", Value: fileID},
		{Name: "started_ts", Value: time.Now()},
		{Name: "bank_code", Value: bankCode},
		{Name: "parser_version", Value: ParserVersion},
		{Name: "status", Value: RunStatusRunning},
	}

	if err := runDML(ctx, q, "StartParsingRun"); err != nil {
		return "", err
	}
	return parsingRunID, nil
}

// MarkParsingRunFailedWithClient sets status=FAILED, finished_ts and error_message.
// Failures are logged, not returned: the caller is already handling an error.
func MarkParsingRunFailedWithClient(ctx context.Context, client *bigquery.Client, ds Dataset, parsingRunID string, parseErr error) {
	log := logger.FromContext(ctx)

	errMsg := ""
	if parseErr != nil {
		errMsg = parseErr.Error()
		if len(errMsg) > maxErrorMessageLen {
			errMsg = errMsg[:maxErrorMessageLen]
		}
	}

	q := client.Query(fmt.Sprintf(`
		UPDATE %s
		SET status = @status,
		    finished_ts = @finished_ts,
		    error_message = @error_message
		WHERE parsing_run_id = @parsing_run_id
	`, ds.table(parsingRunsTable)))

	q.Parameters = []bigquery.QueryParameter{
		{Name: "status", Value: RunStatusFailed},
		{Name: "finished_ts", Value: time.Now()},
		{Name: "error_message", Value: errMsg},
		{Name: "parsing_run_id", Value: parsingRunID},
	}

	if err := runDML(ctx, q, "MarkParsingRunFailed"); err != nil {
		log.Error().
			Err(err).
			Str("parsing_run_id", parsingRunID).
			Msg("MarkParsingRunFailed: update failed")
	}
}

// MarkParsingRunSucceededWithClient sets status=SUCCESS, finished_ts and the run summary.
func MarkParsingRunSucceededWithClient(ctx context.Context, client *bigquery.Client, ds Dataset, parsingRunID string, summary RunSummary) error {
	warnings := summary.Warnings
	if warnings == nil {
		warnings = []string{}
	}

	q := client.Query(fmt.Sprintf(`
		UPDATE %s
		SET status = @status,
		    finished_ts = @finished_ts,
		    error_message = "",
		    transactions_kept = @transactions_kept,
		    amount_of_paid = @amount_of_paid,
		    amount_of_retired = @amount_of_retired,
		    amount_of_entered = @amount_of_entered,
		    amount_of_changed = @amount_of_changed,
		    amount_of_errors = @amount_of_errors,
		    warnings = @warnings
		WHERE parsing_run_id = @parsing_run_id
	`, ds.table(parsingRunsTable)))

	q.Parameters = []bigquery.QueryParameter{
		{Name: "status", Value: RunStatusSuccess},
		{Name: "finished_ts", Value: time.Now()},
		{Name: "transactions_kept", Value: summary.TransactionsKept},
		{Name: "amount_of_paid", Value: summary.AmountOfPaid},
		{Name: "amount_of_retired", Value: summary.AmountOfRetired},
		{Name: "amount_of_entered", Value: summary.AmountOfEntered},
		{Name: "amount_of_changed", Value: summary.AmountOfChanged},
		{Name: "amount_of_errors", Value: summary.AmountOfErrors},
		{Name: "warnings", Value: warnings},
		{Name: "parsing_run_id", Value: parsingRunID},
	}

	return runDML(ctx, q, "MarkParsingRunSucceeded")
}

// MarkParsingRunsAsSupersededWithClient retires earlier successful runs of a
// file so only the newest run's transactions are listed.
func MarkParsingRunsAsSupersededWithClient(ctx context.Context, client *bigquery.Client, ds Dataset, fileID, keepRunID string) error {
	q := client.Query(fmt.Sprintf(`
		UPDATE %s
		SET status = @superseded
		WHERE file_id = @file_id
		  AND status = @success
		  AND parsing_run_id != @keep_run_id
	`, ds.table(parsingRunsTable)))

	q.Parameters = []bigquery.QueryParameter{
		{Name: "superseded", Value: RunStatusSuperseded},
		{Name: "success", Value: RunStatusSuccess},
		{Name: "file_id", Value: fileID},
		{Name: "keep_run_id", Value: keepRunID},
	}

	return runDML(ctx, q, "MarkParsingRunsAsSuperseded")
}

// HasSuccessfulParsingRunWithClient reports whether the file has a parsing
// run with status=SUCCESS.
func HasSuccessfulParsingRunWithClient(ctx context.Context, client *bigquery.Client, ds Dataset, fileID string) (bool, error) {
	q := client.Query(fmt.Sprintf(`
		SELECT COUNT(*) AS runs
		FROM %s
		WHERE file_id = @file_id
		  AND status = @status
	`, ds.table(parsingRunsTable)))
	q.Parameters = []bigquery.QueryParameter{
		{Name: "file_id", Value: fileID},
		{Name: "status", Value: RunStatusSuccess},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return false, fmt.Errorf("HasSuccessfulParsingRun: reading query: %w", err)
	}

	var row struct {
		Runs int64 `bigquery:"runs"`
	}
	err = it.Next(&row)
	if errors.Is(err, iterator.Done) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("HasSuccessfulParsingRun: reading row: %w", err)
	}
	return row.Runs > 0, nil
}
