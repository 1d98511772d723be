package bigquery

import (
	"testing"

	"github.com/dvloznov/cnab-returns/internal/cnab/bradesco"
)

func TestReturnTransactionRow_ToSerializable(t *testing.T) {
	res := parseFixture(t)
	rows := RowsFromResult("file-1", "run-1", bradesco.Code, res)

	for i, row := range rows {
		got := row.ToSerializable()
		want := res.Transactions[i].ToSerializable()

		for _, key := range []string{"paid_value", "value", "tariff", "due_date", "occurrence", "occurrence_type", "rejection_reason"} {
			if got[key] != want[key] {
				t.Errorf("row %d %s = %v, want %v", i, key, got[key], want[key])
			}
		}
		if got["file_id"] != "file-1" || got["parsing_run_id"] != "run-1" {
			t.Errorf("row %d ids = %v/%v", i, got["file_id"], got["parsing_run_id"])
		}
	}

	if got := rows[0].ToSerializable()["paid_value"]; got != "123.45" {
		t.Errorf("paid_value = %v, want 123.45", got)
	}
}

func TestReturnFileRow_ToSerializable(t *testing.T) {
	res := parseFixture(t)
	row := &ReturnFileRow{FileID: "file-1", ParsingStatus: FileStatusParsed}
	ApplyHeader(row, res)

	got := row.ToSerializable()
	if got["declared_value"] != "123.45" {
		t.Errorf("declared_value = %v, want 123.45", got["declared_value"])
	}
	if got["declared_bonds"] != int64(2) {
		t.Errorf("declared_bonds = %v, want 2", got["declared_bonds"])
	}
	if got["file_date"] != "2024-02-02" {
		t.Errorf("file_date = %v, want 2024-02-02", got["file_date"])
	}

	empty := (&ReturnFileRow{}).ToSerializable()
	if empty["declared_value"] != nil || empty["file_date"] != nil {
		t.Errorf("empty row = %v", empty)
	}
}
