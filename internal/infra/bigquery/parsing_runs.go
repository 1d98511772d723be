package bigquery

import (
	"time"

	"cloud.google.com/go/bigquery"
)

// Parsing run status values.
const (
	RunStatusRunning    = "RUNNING"
	RunStatusSuccess    = "SUCCESS"
	RunStatusFailed     = "FAILED"
	RunStatusSuperseded = "SUPERSEDED"
)

type ParsingRunRow struct {
	ParsingRunID string `bigquery:"parsing_run_id"` // REQUIRED
	FileID       string `bigquery:"file_id"`        // REQUIRED

	StartedTS  time.Time              `bigquery:"started_ts"`  // REQUIRED
	FinishedTS bigquery.NullTimestamp `bigquery:"finished_ts"` // NULLABLE

	BankCode      string `bigquery:"bank_code"`      // NULLABLE
	ParserVersion string `bigquery:"parser_version"` // NULLABLE

	Status       string `bigquery:"status"`        // NULLABLE
	ErrorMessage string `bigquery:"error_message"` // NULLABLE

	TransactionsKept bigquery.NullInt64 `bigquery:"transactions_kept"` // NULLABLE
	AmountOfPaid     bigquery.NullInt64 `bigquery:"amount_of_paid"`    // NULLABLE
	AmountOfRetired  bigquery.NullInt64 `bigquery:"amount_of_retired"` // NULLABLE
	AmountOfEntered  bigquery.NullInt64 `bigquery:"amount_of_entered"` // NULLABLE
	AmountOfChanged  bigquery.NullInt64 `bigquery:"amount_of_changed"` // NULLABLE
	AmountOfErrors   bigquery.NullInt64 `bigquery:"amount_of_errors"`  // NULLABLE

	Warnings []string `bigquery:"warnings"` // REPEATED STRING
}

// RunSummary is what a successful run records about the parsed file.
type RunSummary struct {
	TransactionsKept int
	AmountOfPaid     int
	AmountOfRetired  int
	AmountOfEntered  int
	AmountOfChanged  int
	AmountOfErrors   int
	Warnings         []string
}
