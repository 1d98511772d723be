// Package bradescotest builds Bradesco CNAB400 return lines for tests.
package bradescotest

import (
	"github.com/dvloznov/cnab-returns/internal/cnab/cnabtest"
)

// Header describes a header line. Zero fields get defaults.
type Header struct {
	Date        string
	CompanyName string
	ClientCode  string
	BankCode    string
}

// HeaderLine renders a type-0 line.
func HeaderLine(h Header) string {
	if h.BankCode == "" {
		h.BankCode = "237"
	}
	if h.CompanyName == "" {
		h.CompanyName = "ACME COMERCIO LTDA"
	}
	if h.ClientCode == "" {
		h.ClientCode = "00000000000004567890"
	}
	return cnabtest.NewLine('0').
		Set(2, "2").
		SetRange(3, 9, "RETORNO").
		Set(10, "01").
		SetRange(12, 26, "COBRANCA").
		SetRange(27, 46, h.ClientCode).
		SetRange(47, 76, h.CompanyName).
		Set(77, h.BankCode).
		SetRange(80, 94, "BRADESCO").
		Set(95, h.Date).
		Num(395, 400, 1).
		String()
}

// Detail describes a type-1 line. Amounts are in cents.
type Detail struct {
	RecordType     byte
	Agency         string
	Account        string
	AccountDigit   string
	ControlNumber  string
	BankNumber     string
	Occurrence     string
	OccurrenceDate string
	DocumentNumber string
	DueDate        string
	Value          int64
	Tariff         int64
	PaidValue      int64
	Interest       int64
	CreditDate     string
	Reasons        string
	Sequence       int64
}

// DetailLine renders a detail line.
func DetailLine(d Detail) string {
	if d.RecordType == 0 {
		d.RecordType = '1'
	}
	if d.Agency == "" {
		d.Agency = "01234"
	}
	if d.Account == "" {
		d.Account = "0056789"
	}
	if d.AccountDigit == "" {
		d.AccountDigit = "1"
	}
	if d.BankNumber == "" {
		d.BankNumber = "000000000019"
	}
	return cnabtest.NewLine(d.RecordType).
		Set(2, "02").
		Set(22, "009").
		Set(25, d.Agency).
		Set(30, d.Account).
		Set(37, d.AccountDigit).
		SetRange(38, 62, d.ControlNumber).
		Set(71, d.BankNumber).
		Set(109, d.Occurrence).
		Set(111, zeroDate(d.OccurrenceDate)).
		SetRange(117, 126, d.DocumentNumber).
		Set(147, zeroDate(d.DueDate)).
		Num(153, 165, d.Value).
		Num(176, 188, d.Tariff).
		Num(189, 201, 0).
		Num(215, 227, 0).
		Num(228, 240, 0).
		Num(241, 253, 0).
		Num(254, 266, d.PaidValue).
		Num(267, 279, d.Interest).
		Num(280, 292, 0).
		Set(296, zeroDate(d.CreditDate)).
		SetRange(319, 328, d.Reasons).
		Num(395, 400, d.Sequence).
		String()
}

// ComplementLine renders a type-4 Pix line.
func ComplementLine(spiURL, txID string) string {
	return cnabtest.NewLine('4').
		SetRange(2, 78, spiURL).
		SetRange(79, 113, txID).
		String()
}

// TrailerLine renders a type-9 line. value is in cents.
func TrailerLine(bonds int64, value int64) string {
	return cnabtest.NewLine('9').
		Set(2, "2").
		Set(3, "01").
		Set(5, "237").
		Num(18, 25, bonds).
		Num(26, 39, value).
		Num(40, 47, 0).
		String()
}

// File joins lines with CRLF terminators.
func File(lines ...string) string {
	return cnabtest.Join(lines...)
}

func zeroDate(d string) string {
	if d == "" {
		return "000000"
	}
	return d
}
