package bigquery

import (
	"math/big"

	"cloud.google.com/go/bigquery"
	"github.com/shopspring/decimal"
)

// ToSerializable renders a stored transaction with the same keys and money
// format as cnab.Transaction.ToSerializable, plus its ledger ids.
func (r *ReturnTransactionRow) ToSerializable() map[string]any {
	reasons := make([]any, 0, len(r.Reasons))
	for _, reason := range r.Reasons {
		reasons = append(reasons, reason)
	}
	return map[string]any{
		"transaction_id":         r.TransactionID,
		"file_id":                r.FileID,
		"parsing_run_id":         r.ParsingRunID,
		"line_number":            r.LineNumber,
		"sequence":               nullIntValue(r.Sequence),
		"bank_code":              r.BankCode,
		"wallet":                 r.Wallet.StringVal,
		"bank_number":            r.BankNumber.StringVal,
		"document_number":        r.DocumentNumber.StringVal,
		"control_number":         r.ControlNumber.StringVal,
		"settlement_code":        r.SettlementCode.StringVal,
		"occurrence":             r.Occurrence,
		"occurrence_description": r.OccurrenceDescription.StringVal,
		"occurrence_type":        r.OccurrenceType,
		"rejection_reason":       r.RejectionReason.StringVal,
		"reasons":                reasons,
		"occurrence_date":        nullDateValue(r.OccurrenceDate),
		"due_date":               nullDateValue(r.DueDate),
		"credit_date":            nullDateValue(r.CreditDate),
		"value":                  money(r.Value),
		"tariff":                 money(r.Tariff),
		"other_expenses":         money(r.OtherExpenses),
		"iof":                    money(r.IOF),
		"abatement":              money(r.Abatement),
		"discount":               money(r.Discount),
		"paid_value":             money(r.PaidValue),
		"interest":               money(r.Interest),
		"fine":                   money(r.Fine),
		"spi_url":                r.SpiURL.StringVal,
		"tx_id":                  r.TxID.StringVal,
	}
}

// ToSerializable renders a return file row for API listings.
func (r *ReturnFileRow) ToSerializable() map[string]any {
	out := map[string]any{
		"file_id":           r.FileID,
		"source_uri":        r.SourceURI,
		"original_filename": r.OriginalFilename,
		"checksum_sha256":   r.ChecksumSHA256,
		"bank_code":         r.BankCode.StringVal,
		"bank_name":         r.BankName.StringVal,
		"company_name":      r.CompanyName.StringVal,
		"client_code":       r.ClientCode.StringVal,
		"agency":            r.Agency.StringVal,
		"account":           r.Account.StringVal,
		"file_date":         nullDateValue(r.FileDate),
		"declared_bonds":    nullIntValue(r.DeclaredBonds),
		"declared_value":    nil,
		"upload_ts":         r.UploadTS,
		"parsing_status":    r.ParsingStatus,
	}
	if r.DeclaredValue != nil {
		out["declared_value"] = money(r.DeclaredValue)
	}
	return out
}

func money(r *big.Rat) string {
	if r == nil {
		return decimal.Zero.StringFixed(2)
	}
	return decimal.NewFromBigRat(r, 2).StringFixed(2)
}

func nullDateValue(d bigquery.NullDate) any {
	if !d.Valid {
		return nil
	}
	return d.Date.String()
}

func nullIntValue(n bigquery.NullInt64) any {
	if !n.Valid {
		return nil
	}
	return n.Int64
}
