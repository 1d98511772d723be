package bigquery

import (
	"time"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"
	"github.com/google/uuid"

	"github.com/dvloznov/cnab-returns/internal/cnab"
)

// RowsFromResult maps the kept transactions of a parse onto ledger rows.
func RowsFromResult(fileID, parsingRunID, bankCode string, res *cnab.ParseResult) []*ReturnTransactionRow {
	now := time.Now()
	rows := make([]*ReturnTransactionRow, 0, len(res.Transactions))
	for _, tx := range res.Transactions {
		reasons := tx.Reasons
		if reasons == nil {
			reasons = []string{}
		}
		rows = append(rows, &ReturnTransactionRow{
			TransactionID:         uuid.NewString(),
			FileID:                fileID,
			ParsingRunID:          parsingRunID,
			LineNumber:            int64(tx.LineNumber),
			Sequence:              nullInt(tx.Sequence),
			BankCode:              bankCode,
			Wallet:                nullString(tx.Wallet),
			BankNumber:            nullString(tx.BankNumber),
			DocumentNumber:        nullString(tx.DocumentNumber),
			ControlNumber:         nullString(tx.ControlNumber),
			SettlementCode:        nullString(tx.SettlementCode),
			Occurrence:            tx.Occurrence,
			OccurrenceDescription: nullString(tx.OccurrenceDescription),
			OccurrenceType:        tx.OccurrenceType.String(),
			RejectionReason:       nullString(tx.RejectionReason),
			Reasons:               reasons,
			OccurrenceDate:        nullDate(tx.OccurrenceDate),
			DueDate:               nullDate(tx.DueDate),
			CreditDate:            nullDate(tx.CreditDate),
			Value:                 tx.Value.Rat(),
			Tariff:                tx.Tariff.Rat(),
			OtherExpenses:         tx.OtherExpenses.Rat(),
			IOF:                   tx.IOF.Rat(),
			Abatement:             tx.Abatement.Rat(),
			Discount:              tx.Discount.Rat(),
			PaidValue:             tx.PaidValue.Rat(),
			Interest:              tx.Interest.Rat(),
			Fine:                  tx.Fine.Rat(),
			SpiURL:                nullString(tx.SpiURL),
			TxID:                  nullString(tx.TxID),
			CreatedTS:             now,
		})
	}
	return rows
}

// SummaryFromResult condenses a parse into the run summary.
func SummaryFromResult(res *cnab.ParseResult) RunSummary {
	return RunSummary{
		TransactionsKept: len(res.Transactions),
		AmountOfPaid:     res.Trailer.AmountOfPaid,
		AmountOfRetired:  res.Trailer.AmountOfRetired,
		AmountOfEntered:  res.Trailer.AmountOfEntered,
		AmountOfChanged:  res.Trailer.AmountOfChanged,
		AmountOfErrors:   res.Trailer.AmountOfErrors,
		Warnings:         res.Warnings(),
	}
}

// ApplyHeader copies header and trailer facts onto a return file row.
func ApplyHeader(row *ReturnFileRow, res *cnab.ParseResult) {
	if res.HasHeader {
		h := res.Header
		row.BankCode = nullString(h.BankCode)
		row.BankName = nullString(h.BankName)
		row.CompanyName = nullString(h.CompanyName)
		row.ClientCode = nullString(h.ClientCode)
		row.Agency = nullString(h.Agency)
		row.Account = nullString(h.Account)
		row.FileDate = nullDate(h.Date)
	}
	if res.HasTrailer {
		row.DeclaredBonds = bigquery.NullInt64{Int64: int64(res.Trailer.DeclaredBonds), Valid: true}
		row.DeclaredValue = res.Trailer.DeclaredValue.Rat()
	}
}

func nullString(s string) bigquery.NullString {
	return bigquery.NullString{StringVal: s, Valid: s != ""}
}

func nullInt(n int) bigquery.NullInt64 {
	return bigquery.NullInt64{Int64: int64(n), Valid: n != 0}
}

func nullDate(d *civil.Date) bigquery.NullDate {
	if d == nil {
		return bigquery.NullDate{}
	}
	return bigquery.NullDate{Date: *d, Valid: true}
}
