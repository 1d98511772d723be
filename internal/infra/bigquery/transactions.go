package bigquery

import (
	"math/big"
	"time"

	"cloud.google.com/go/bigquery"
)

type ReturnTransactionRow struct {
	TransactionID string `bigquery:"transaction_id"` // REQUIRED
	FileID        string `bigquery:"file_id"`        // REQUIRED
	ParsingRunID  string `bigquery:"parsing_run_id"` // REQUIRED

	LineNumber int64              `bigquery:"line_number"` // REQUIRED
	Sequence   bigquery.NullInt64 `bigquery:"sequence"`    // NULLABLE

	BankCode       string              `bigquery:"bank_code"`       // REQUIRED
	Wallet         bigquery.NullString `bigquery:"wallet"`          // NULLABLE
	BankNumber     bigquery.NullString `bigquery:"bank_number"`     // NULLABLE
	DocumentNumber bigquery.NullString `bigquery:"document_number"` // NULLABLE
	ControlNumber  bigquery.NullString `bigquery:"control_number"`  // NULLABLE
	SettlementCode bigquery.NullString `bigquery:"settlement_code"` // NULLABLE

	Occurrence            string              `bigquery:"occurrence"`             // REQUIRED
	OccurrenceDescription bigquery.NullString `bigquery:"occurrence_description"` // NULLABLE
	OccurrenceType        string              `bigquery:"occurrence_type"`        // REQUIRED
	RejectionReason       bigquery.NullString `bigquery:"rejection_reason"`       // NULLABLE
	Reasons               []string            `bigquery:"reasons"`                // REPEATED STRING

	OccurrenceDate bigquery.NullDate `bigquery:"occurrence_date"` // NULLABLE
	DueDate        bigquery.NullDate `bigquery:"due_date"`        // NULLABLE
	CreditDate     bigquery.NullDate `bigquery:"credit_date"`     // NULLABLE

	Value         *big.Rat `bigquery:"value"`          // REQUIRED NUMERIC
	Tariff        *big.Rat `bigquery:"tariff"`         // REQUIRED NUMERIC
	OtherExpenses *big.Rat `bigquery:"other_expenses"` // REQUIRED NUMERIC
	IOF           *big.Rat `bigquery:"iof"`            // REQUIRED NUMERIC
	Abatement     *big.Rat `bigquery:"abatement"`      // REQUIRED NUMERIC
	Discount      *big.Rat `bigquery:"discount"`       // REQUIRED NUMERIC
	PaidValue     *big.Rat `bigquery:"paid_value"`     // REQUIRED NUMERIC
	Interest      *big.Rat `bigquery:"interest"`       // REQUIRED NUMERIC
	Fine          *big.Rat `bigquery:"fine"`           // REQUIRED NUMERIC

	SpiURL bigquery.NullString `bigquery:"spi_url"` // NULLABLE
	TxID   bigquery.NullString `bigquery:"tx_id"`   // NULLABLE

	CreatedTS time.Time `bigquery:"created_ts"` // REQUIRED
}
