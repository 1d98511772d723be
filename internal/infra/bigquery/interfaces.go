package bigquery

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"
)

// LedgerRepository stores return files, their parsing runs and the
// reconciled transactions.
type LedgerRepository interface {
	InsertReturnFile(ctx context.Context, row *ReturnFileRow) error
	FindReturnFileByChecksum(ctx context.Context, checksum string) (*ReturnFileRow, error)
	ListReturnFiles(ctx context.Context, limit int) ([]*ReturnFileRow, error)
	DeleteReturnFile(ctx context.Context, fileID string) error

	StartParsingRun(ctx context.Context, fileID, bankCode string) (string, error)
	MarkParsingRunFailed(ctx context.Context, parsingRunID string, parseErr error)
	MarkParsingRunSucceeded(ctx context.Context, parsingRunID string, summary RunSummary) error
	MarkParsingRunsAsSuperseded(ctx context.Context, fileID, keepRunID string) error
	HasSuccessfulParsingRun(ctx context.Context, fileID string) (bool, error)

	InsertTransactions(ctx context.Context, rows []*ReturnTransactionRow) error
	ListTransactionsByFile(ctx context.Context, fileID string) ([]*ReturnTransactionRow, error)
}

// BigQueryLedgerRepository is the concrete implementation of LedgerRepository
// that interacts with BigQuery. It holds a shared BigQuery client to avoid
// creating a new connection for each operation.
type BigQueryLedgerRepository struct {
	client *bigquery.Client
	ds     Dataset
}

// NewBigQueryLedgerRepository creates a repository with its own BigQuery client.
func NewBigQueryLedgerRepository(ctx context.Context, ds Dataset) (*BigQueryLedgerRepository, error) {
	client, err := bigquery.NewClient(ctx, ds.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("NewBigQueryLedgerRepository: creating client: %w", err)
	}
	return &BigQueryLedgerRepository{client: client, ds: ds}, nil
}

// Close closes the BigQuery client connection.
func (r *BigQueryLedgerRepository) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}

func (r *BigQueryLedgerRepository) InsertReturnFile(ctx context.Context, row *ReturnFileRow) error {
	return InsertReturnFileWithClient(ctx, r.client, r.ds, row)
}

func (r *BigQueryLedgerRepository) FindReturnFileByChecksum(ctx context.Context, checksum string) (*ReturnFileRow, error) {
	return FindReturnFileByChecksumWithClient(ctx, r.client, r.ds, checksum)
}

func (r *BigQueryLedgerRepository) ListReturnFiles(ctx context.Context, limit int) ([]*ReturnFileRow, error) {
	return ListReturnFilesWithClient(ctx, r.client, r.ds, limit)
}

func (r *BigQueryLedgerRepository) DeleteReturnFile(ctx context.Context, fileID string) error {
	return DeleteReturnFileWithClient(ctx, r.client, r.ds, fileID)
}

func (r *BigQueryLedgerRepository) StartParsingRun(ctx context.Context, fileID, bankCode string) (string, error) {
	return StartParsingRunWithClient(ctx, r.client, r.ds, fileID, bankCode)
}

func (r *BigQueryLedgerRepository) MarkParsingRunFailed(ctx context.Context, parsingRunID string, parseErr error) {
	MarkParsingRunFailedWithClient(ctx, r.client, r.ds, parsingRunID, parseErr)
}

func (r *BigQueryLedgerRepository) MarkParsingRunSucceeded(ctx context.Context, parsingRunID string, summary RunSummary) error {
	return MarkParsingRunSucceededWithClient(ctx, r.client, r.ds, parsingRunID, summary)
}

func (r *BigQueryLedgerRepository) MarkParsingRunsAsSuperseded(ctx context.Context, fileID, keepRunID string) error {
	return MarkParsingRunsAsSupersededWithClient(ctx, r.client, r.ds, fileID, keepRunID)
}

func (r *BigQueryLedgerRepository) HasSuccessfulParsingRun(ctx context.Context, fileID string) (bool, error) {
	return HasSuccessfulParsingRunWithClient(ctx, r.client, r.ds, fileID)
}

func (r *BigQueryLedgerRepository) InsertTransactions(ctx context.Context, rows []*ReturnTransactionRow) error {
	return InsertTransactionsWithClient(ctx, r.client, r.ds, rows)
}

func (r *BigQueryLedgerRepository) ListTransactionsByFile(ctx context.Context, fileID string) ([]*ReturnTransactionRow, error) {
	return ListTransactionsByFileWithClient(ctx, r.client, r.ds, fileID)
}
