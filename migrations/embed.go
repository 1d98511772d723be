// Package migrations embeds the ledger schema migrations applied by cmd/migrate.
package migrations

import "embed"

// BigQuery holds bigquery/NNNN_name.sql files. They use {{PROJECT_ID}} and
// {{DATASET_ID}} placeholders.
//
//go:embed bigquery/*.sql
var BigQuery embed.FS
