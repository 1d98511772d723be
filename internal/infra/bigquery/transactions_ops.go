package bigquery

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"
)

// insertBatchSize keeps streaming inserts under the per-request row limit.
const insertBatchSize = 500

// InsertTransactionsWithClient streams rows into return_transactions in batches.
func InsertTransactionsWithClient(ctx context.Context, client *bigquery.Client, ds Dataset, rows []*ReturnTransactionRow) error {
	if len(rows) == 0 {
		return nil
	}

	inserter := client.DatasetInProject(ds.ProjectID, ds.DatasetID).Table(transactionsTable).Inserter()
	for start := 0; start < len(rows); start += insertBatchSize {
		end := start + insertBatchSize
		if end > len(rows) {
			end = len(rows)
		}
		if err := inserter.Put(ctx, rows[start:end]); err != nil {
			return fmt.Errorf("InsertTransactions: inserting rows %d-%d: %w", start, end, err)
		}
	}

	return nil
}

// ListTransactionsByFileWithClient returns the transactions of a file's
// successful parsing run in file order. Rows of failed or superseded runs
// are excluded.
func ListTransactionsByFileWithClient(ctx context.Context, client *bigquery.Client, ds Dataset, fileID string) ([]*ReturnTransactionRow, error) {
	q := client.Query(fmt.Sprintf(`
		SELECT t.*
		FROM %s t
		INNER JOIN %s pr
		  ON t.parsing_run_id = pr.parsing_run_id
		WHERE t.file_id = @file_id
		  AND pr.status = @status
		ORDER BY t.line_number
	`, ds.table(transactionsTable), ds.table(parsingRunsTable)))
	q.Parameters = []bigquery.QueryParameter{
		{Name: "file_id", Value: fileID},
		{Name: "status", Value: RunStatusSuccess},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("ListTransactionsByFile: query read: %w", err)
	}

	var rows []*ReturnTransactionRow
	for {
		var r ReturnTransactionRow
		err := it.Next(&r)
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ListTransactionsByFile: iter next: %w", err)
		}
		rows = append(rows, &r)
	}

	return rows, nil
}
