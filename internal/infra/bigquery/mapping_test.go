package bigquery

import (
	"math/big"
	"testing"

	"github.com/dvloznov/cnab-returns/internal/cnab"
	"github.com/dvloznov/cnab-returns/internal/cnab/bradesco"
	"github.com/dvloznov/cnab-returns/internal/cnab/bradesco/bradescotest"
)

func parseFixture(t *testing.T) *cnab.ParseResult {
	t.Helper()
	res, err := cnab.NewParser(bradesco.Profile(), []string{
		bradescotest.HeaderLine(bradescotest.Header{Date: "020224"}),
		bradescotest.DetailLine(bradescotest.Detail{Occurrence: "06", PaidValue: 12345, DueDate: "310124", Sequence: 2}),
		bradescotest.DetailLine(bradescotest.Detail{Occurrence: "03", Reasons: "08", Sequence: 3}),
		bradescotest.TrailerLine(2, 12345),
	}).Process()
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	return res
}

func TestRowsFromResult(t *testing.T) {
	res := parseFixture(t)
	rows := RowsFromResult("file-1", "run-1", bradesco.Code, res)

	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	paid := rows[0]
	if paid.FileID != "file-1" || paid.ParsingRunID != "run-1" || paid.BankCode != "237" {
		t.Errorf("ids = %s/%s/%s", paid.FileID, paid.ParsingRunID, paid.BankCode)
	}
	if paid.TransactionID == "" || paid.TransactionID == rows[1].TransactionID {
		t.Errorf("transaction ids must be unique, got %q and %q", paid.TransactionID, rows[1].TransactionID)
	}
	if paid.PaidValue.Cmp(big.NewRat(12345, 100)) != 0 {
		t.Errorf("PaidValue = %s, want 123.45", paid.PaidValue.FloatString(2))
	}
	if paid.OccurrenceType != "LIQUIDATED" {
		t.Errorf("OccurrenceType = %q", paid.OccurrenceType)
	}
	if !paid.DueDate.Valid || paid.DueDate.Date.String() != "2024-01-31" {
		t.Errorf("DueDate = %+v", paid.DueDate)
	}
	if paid.CreditDate.Valid {
		t.Errorf("CreditDate should be NULL for a zero date")
	}
	if paid.Sequence.Int64 != 2 || paid.LineNumber != 2 {
		t.Errorf("Sequence/LineNumber = %d/%d", paid.Sequence.Int64, paid.LineNumber)
	}
	if paid.Reasons == nil {
		t.Error("Reasons must be an empty slice, not nil")
	}

	rejected := rows[1]
	if !rejected.RejectionReason.Valid || rejected.RejectionReason.StringVal != "Nosso número inválido" {
		t.Errorf("RejectionReason = %+v", rejected.RejectionReason)
	}
	if rejected.SpiURL.Valid {
		t.Error("SpiURL should be NULL without a complement")
	}
}

func TestSummaryFromResult(t *testing.T) {
	s := SummaryFromResult(parseFixture(t))
	if s.TransactionsKept != 2 || s.AmountOfPaid != 1 || s.AmountOfErrors != 1 {
		t.Errorf("summary = %+v", s)
	}
	if len(s.Warnings) != 0 {
		t.Errorf("Warnings = %v", s.Warnings)
	}
}

func TestApplyHeader(t *testing.T) {
	row := &ReturnFileRow{FileID: "file-1"}
	ApplyHeader(row, parseFixture(t))

	if row.BankCode.StringVal != "237" || row.CompanyName.StringVal != "ACME COMERCIO LTDA" {
		t.Errorf("row = %+v", row)
	}
	if row.Agency.StringVal != "01234" || row.Account.StringVal != "0056789" {
		t.Errorf("agency/account = %s/%s", row.Agency.StringVal, row.Account.StringVal)
	}
	if !row.FileDate.Valid || row.FileDate.Date.String() != "2024-02-02" {
		t.Errorf("FileDate = %+v", row.FileDate)
	}
	if row.DeclaredBonds.Int64 != 2 || row.DeclaredValue.FloatString(2) != "123.45" {
		t.Errorf("declared = %d / %s", row.DeclaredBonds.Int64, row.DeclaredValue.FloatString(2))
	}
}

func TestDatasetTable(t *testing.T) {
	ds := Dataset{ProjectID: "proj", DatasetID: "cnab"}
	if got := ds.table(transactionsTable); got != "`proj.cnab.return_transactions`" {
		t.Errorf("table() = %s", got)
	}
}
