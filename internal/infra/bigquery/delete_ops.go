package bigquery

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"
)

// DeleteReturnFileWithClient deletes a return file and everything derived
// from it: transactions first, then parsing runs, then the file row.
func DeleteReturnFileWithClient(ctx context.Context, client *bigquery.Client, ds Dataset, fileID string) error {
	for _, table := range []string{transactionsTable, parsingRunsTable, returnFilesTable} {
		if err := deleteByFileID(ctx, client, ds, table, fileID); err != nil {
			return fmt.Errorf("DeleteReturnFile: deleting from %s: %w", table, err)
		}
	}
	return nil
}

func deleteByFileID(ctx context.Context, client *bigquery.Client, ds Dataset, table, fileID string) error {
	q := client.Query(fmt.Sprintf(`
		DELETE FROM %s
		WHERE file_id = @file_id
	`, ds.table(table)))
	q.Parameters = []bigquery.QueryParameter{
		{Name: "file_id", Value: fileID},
	}

	return runDML(ctx, q, "delete "+table)
}
