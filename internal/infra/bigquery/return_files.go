package bigquery

import (
	"math/big"
	"time"

	"cloud.google.com/go/bigquery"
)

// Parsing status values stored on return_files.
const (
	FileStatusParsed = "PARSED"
	FileStatusFailed = "FAILED"
)

type ReturnFileRow struct {
	FileID           string `bigquery:"file_id"`           // REQUIRED
	SourceURI        string `bigquery:"source_uri"`        // REQUIRED
	OriginalFilename string `bigquery:"original_filename"` // NULLABLE
	ChecksumSHA256   string `bigquery:"checksum_sha256"`   // REQUIRED

	BankCode    bigquery.NullString `bigquery:"bank_code"`    // NULLABLE
	BankName    bigquery.NullString `bigquery:"bank_name"`    // NULLABLE
	CompanyName bigquery.NullString `bigquery:"company_name"` // NULLABLE
	ClientCode  bigquery.NullString `bigquery:"client_code"`  // NULLABLE
	Agency      bigquery.NullString `bigquery:"agency"`       // NULLABLE
	Account     bigquery.NullString `bigquery:"account"`      // NULLABLE

	FileDate bigquery.NullDate `bigquery:"file_date"` // NULLABLE

	DeclaredBonds bigquery.NullInt64 `bigquery:"declared_bonds"` // NULLABLE
	DeclaredValue *big.Rat           `bigquery:"declared_value"` // NULLABLE NUMERIC

	UploadTS      time.Time              `bigquery:"upload_ts"`      // REQUIRED
	ProcessedTS   bigquery.NullTimestamp `bigquery:"processed_ts"`   // NULLABLE
	ParsingStatus string                 `bigquery:"parsing_status"` // NULLABLE

	Metadata bigquery.NullJSON `bigquery:"metadata"` // NULLABLE
}
