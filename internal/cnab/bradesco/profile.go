// Package bradesco holds the CNAB400 return layout of Banco Bradesco (237).
package bradesco

import (
	"fmt"

	"github.com/dvloznov/cnab-returns/internal/cnab"
)

const (
	// Code is Bradesco's compensation code.
	Code = "237"
	// EntryRejected is the occurrence reported for rejected registrations.
	EntryRejected = "03"
	// detailRecordType marks a regular detail line; 3 is the credit
	// apportionment line, which carries no boleto.
	detailRecordType = '1'
)

var headerLayout = cnab.HeaderLayout{
	OperationCode: cnab.Cols(2, 2),
	Operation:     cnab.Cols(3, 9),
	ServiceCode:   cnab.Cols(10, 11),
	Service:       cnab.Cols(12, 26),
	ClientCode:    cnab.Cols(27, 46),
	CompanyName:   cnab.Cols(47, 76),
	BankCode:      cnab.Cols(77, 79),
	BankName:      cnab.Cols(80, 94),
	Date:          cnab.Cols(95, 100),
	CreditDate:    cnab.Cols(380, 385),
}

var accountLayout = cnab.AccountLayout{
	Agency:            cnab.Cols(25, 29),
	Account:           cnab.Cols(30, 36),
	AccountCheckDigit: cnab.Cols(37, 37),
}

var detailLayout = cnab.DetailLayout{
	Wallet:         cnab.Cols(22, 24),
	ControlNumber:  cnab.Cols(38, 62),
	BankNumber:     cnab.Cols(71, 82),
	Occurrence:     cnab.Cols(109, 110),
	OccurrenceDate: cnab.Cols(111, 116),
	DocumentNumber: cnab.Cols(117, 126),
	DueDate:        cnab.Cols(147, 152),
	Value:          cnab.Cols(153, 165),
	Tariff:         cnab.Cols(176, 188),
	OtherExpenses:  cnab.Cols(189, 201),
	IOF:            cnab.Cols(215, 227),
	Abatement:      cnab.Cols(228, 240),
	Discount:       cnab.Cols(241, 253),
	PaidValue:      cnab.Cols(254, 266),
	Interest:       cnab.Cols(267, 279),
	Fine:           cnab.Cols(280, 292),
	CreditDate:     cnab.Cols(296, 301),
	SettlementCode: cnab.Cols(302, 304),
	ReasonBlock:    cnab.Cols(319, 328),
	Sequence:       cnab.Cols(395, 400),
}

var trailerLayout = cnab.TrailerLayout{
	DeclaredBonds: cnab.Cols(18, 25),
	DeclaredValue: cnab.Cols(26, 39),
	Notices:       cnab.Cols(40, 47),
}

var complementLayout = cnab.ComplementLayout{
	SpiURL: cnab.Cols(2, 78),
	TxID:   cnab.Cols(79, 113),
}

// Rules lists Bradesco's occurrence groups in priority order.
func Rules() []cnab.Rule {
	return []cnab.Rule{
		{Name: "liquidated", Codes: []string{"06", "15", "16", "17"}, Type: cnab.OccurrenceLiquidated, Reasons: cnab.ExtractReasons},
		{Name: "dropped", Codes: []string{"09", "10"}, Type: cnab.OccurrenceDropped, Reasons: cnab.ExtractReasons},
		{Name: "entry", Codes: []string{"02"}, Type: cnab.OccurrenceEntry, Reasons: cnab.ExtractReasons},
		{
			Name:  "change",
			Codes: []string{"14", "33", "21"},
			Type:  cnab.OccurrenceChange,
			Custom: map[string]string{
				"14": "Vencimento alterado",
				"33": "Alteração de outros dados confirmada",
				"21": "Controle do participante alterado",
			},
		},
		{Name: "protested", Codes: []string{"19", "23", "25"}, Type: cnab.OccurrenceProtested},
		{Name: "unprotested", Codes: []string{"20", "34"}, Type: cnab.OccurrenceUnprotested},
		{Name: "credit_blocked", Codes: []string{"73"}, Type: cnab.OccurrenceCreditBlocked},
		{Name: "credit_unblocked", Codes: []string{"74"}, Type: cnab.OccurrenceCreditUnblocked},
		{Name: "abatement", Codes: []string{"12"}, Type: cnab.OccurrenceAbatement},
		{Name: "unabatement", Codes: []string{"13"}, Type: cnab.OccurrenceUnabatement},
		{Name: "tariff", Codes: []string{"28"}, Type: cnab.OccurrenceTariff, Reasons: cnab.ExtractReasons},
		{Name: "error", Codes: []string{"03", "24", "27", "30", "32"}, Type: cnab.OccurrenceError, Reasons: cnab.ExtractReasons},
	}
}

// Profile returns a fresh Bradesco profile.
func Profile() *cnab.BankProfile {
	return &cnab.BankProfile{
		Code:                Code,
		Name:                "Bradesco",
		Header:              headerLayout,
		Account:             accountLayout,
		Detail:              detailLayout,
		Trailer:             trailerLayout,
		Complement:          complementLayout,
		Table:               Table,
		Rules:               Rules(),
		EntryRejectedCode:   EntryRejected,
		ValidateTransaction: validateTransaction,
	}
}

func validateTransaction(tx *cnab.Transaction, line string) error {
	if line[0] != detailRecordType {
		return fmt.Errorf("bradesco: record type %q is not a boleto detail", line[0])
	}
	return nil
}
