package bigquery

import "fmt"

const (
	returnFilesTable  = "return_files"
	parsingRunsTable  = "parsing_runs"
	transactionsTable = "return_transactions"
)

// Dataset identifies where the ledger tables live.
type Dataset struct {
	ProjectID string
	DatasetID string
}

// table renders the fully qualified, backtick-quoted table name.
func (d Dataset) table(name string) string {
	return fmt.Sprintf("`%s.%s.%s`", d.ProjectID, d.DatasetID, name)
}
