package bigquery

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"
)

const returnFileColumns = `
			file_id,
			source_uri,
			original_filename,
			checksum_sha256,
			bank_code,
			bank_name,
			company_name,
			client_code,
			agency,
			account,
			file_date,
			declared_bonds,
			declared_value,
			upload_ts,
			processed_ts,
			parsing_status,
			metadata`

// InsertReturnFileWithClient streams a single ReturnFileRow into return_files.
func InsertReturnFileWithClient(ctx context.Context, client *bigquery.Client, ds Dataset, row *ReturnFileRow) error {
	inserter := client.DatasetInProject(ds.ProjectID, ds.DatasetID).Table(returnFilesTable).Inserter()
	if err := inserter.Put(ctx, row); err != nil {
		return fmt.Errorf("InsertReturnFile: inserting row: %w", err)
	}
	return nil
}

// FindReturnFileByChecksumWithClient retrieves a return file by its SHA-256 checksum.
// Returns nil if no file with the given checksum exists.
func FindReturnFileByChecksumWithClient(ctx context.Context, client *bigquery.Client, ds Dataset, checksum string) (*ReturnFileRow, error) {
	q := client.Query(fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE checksum_sha256 = @checksum
		ORDER BY upload_ts DESC
		LIMIT 1
	`, returnFileColumns, ds.table(returnFilesTable)))
	q.Parameters = []bigquery.QueryParameter{
		{Name: "checksum", Value: checksum},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("FindReturnFileByChecksum: reading query: %w", err)
	}

	var row ReturnFileRow
	err = it.Next(&row)
	if errors.Is(err, iterator.Done) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("FindReturnFileByChecksum: reading row: %w", err)
	}

	return &row, nil
}

// ListReturnFilesWithClient lists return files, newest upload first.
func ListReturnFilesWithClient(ctx context.Context, client *bigquery.Client, ds Dataset, limit int) ([]*ReturnFileRow, error) {
	if limit <= 0 {
		limit = 100
	}
	q := client.Query(fmt.Sprintf(`
		SELECT %s
		FROM %s
		ORDER BY upload_ts DESC
		LIMIT @limit
	`, returnFileColumns, ds.table(returnFilesTable)))
	q.Parameters = []bigquery.QueryParameter{
		{Name: "limit", Value: limit},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("ListReturnFiles: reading query: %w", err)
	}

	var rows []*ReturnFileRow
	for {
		var row ReturnFileRow
		err := it.Next(&row)
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ListReturnFiles: iterating: %w", err)
		}
		rows = append(rows, &row)
	}

	return rows, nil
}

// runDML runs a DML statement and waits for it to finish.
func runDML(ctx context.Context, q *bigquery.Query, op string) error {
	job, err := q.Run(ctx)
	if err != nil {
		return fmt.Errorf("%s: running query: %w", op, err)
	}

	status, err := job.Wait(ctx)
	if err != nil {
		return fmt.Errorf("%s: waiting for job: %w", op, err)
	}
	if err := status.Err(); err != nil {
		return fmt.Errorf("%s: job error: %w", op, err)
	}

	return nil
}
