package cnab

import (
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// Header is the file header record (line type 0). Agency and account
// fields come from the first detail record, not from the header line.
type Header struct {
	OperationCode     string
	Operation         string
	ServiceCode       string
	Service           string
	Agency            string
	AgencyCheckDigit  string
	Account           string
	AccountCheckDigit string
	Date              *civil.Date
	Agreement         string
	ClientCode        string

	CompanyName string
	BankCode    string
	BankName    string
	CreditDate  *civil.Date
}

// ToSerializable projects the header into plain values.
func (h *Header) ToSerializable() map[string]any {
	return map[string]any{
		"operation_code":      h.OperationCode,
		"operation":           h.Operation,
		"service_code":        h.ServiceCode,
		"service":             h.Service,
		"agency":              h.Agency,
		"agency_check_digit":  h.AgencyCheckDigit,
		"account":             h.Account,
		"account_check_digit": h.AccountCheckDigit,
		"date":                serializeDate(h.Date),
		"agreement":           h.Agreement,
		"client_code":         h.ClientCode,
		"company_name":        h.CompanyName,
		"bank_code":           h.BankCode,
		"bank_name":           h.BankName,
		"credit_date":         serializeDate(h.CreditDate),
	}
}

// Transaction is one detail record, optionally enriched by a Pix complement.
type Transaction struct {
	// LineNumber is the 1-based position of the detail line in the file.
	LineNumber int
	// Sequence is the record sequence number printed in columns 395-400.
	Sequence int

	Wallet         string
	BankNumber     string
	DocumentNumber string
	ControlNumber  string
	SettlementCode string

	Occurrence            string
	OccurrenceDescription string
	OccurrenceType        OccurrenceType
	RejectionReason       string
	Reasons               []string

	OccurrenceDate *civil.Date
	DueDate        *civil.Date
	CreditDate     *civil.Date

	Value         decimal.Decimal
	Tariff        decimal.Decimal
	OtherExpenses decimal.Decimal
	IOF           decimal.Decimal
	Abatement     decimal.Decimal
	Discount      decimal.Decimal
	PaidValue     decimal.Decimal
	Interest      decimal.Decimal
	Fine          decimal.Decimal

	SpiURL string
	TxID   string
}

// ToSerializable projects the transaction into plain values.
func (t *Transaction) ToSerializable() map[string]any {
	reasons := make([]any, 0, len(t.Reasons))
	for _, r := range t.Reasons {
		reasons = append(reasons, r)
	}
	return map[string]any{
		"line_number":            t.LineNumber,
		"sequence":               t.Sequence,
		"wallet":                 t.Wallet,
		"bank_number":            t.BankNumber,
		"document_number":        t.DocumentNumber,
		"control_number":         t.ControlNumber,
		"settlement_code":        t.SettlementCode,
		"occurrence":             t.Occurrence,
		"occurrence_description": t.OccurrenceDescription,
		"occurrence_type":        t.OccurrenceType.String(),
		"rejection_reason":       t.RejectionReason,
		"reasons":                reasons,
		"occurrence_date":        serializeDate(t.OccurrenceDate),
		"due_date":               serializeDate(t.DueDate),
		"credit_date":            serializeDate(t.CreditDate),
		"value":                  serializeMoney(t.Value),
		"tariff":                 serializeMoney(t.Tariff),
		"other_expenses":         serializeMoney(t.OtherExpenses),
		"iof":                    serializeMoney(t.IOF),
		"abatement":              serializeMoney(t.Abatement),
		"discount":               serializeMoney(t.Discount),
		"paid_value":             serializeMoney(t.PaidValue),
		"interest":               serializeMoney(t.Interest),
		"fine":                   serializeMoney(t.Fine),
		"spi_url":                t.SpiURL,
		"tx_id":                  t.TxID,
	}
}

// Trailer is the file trailer (line type 9). Declared fields are copied
// verbatim from the file; the AmountOf* counters are computed by the parser.
type Trailer struct {
	Notices       int
	DeclaredBonds int
	DeclaredValue decimal.Decimal

	AmountOfPaid    int
	AmountOfRetired int
	AmountOfEntered int
	AmountOfChanged int
	AmountOfErrors  int
}

// ToSerializable projects the trailer into plain values.
func (t *Trailer) ToSerializable() map[string]any {
	return map[string]any{
		"notices":           t.Notices,
		"declared_bonds":    t.DeclaredBonds,
		"declared_value":    serializeMoney(t.DeclaredValue),
		"amount_of_paid":    t.AmountOfPaid,
		"amount_of_retired": t.AmountOfRetired,
		"amount_of_entered": t.AmountOfEntered,
		"amount_of_changed": t.AmountOfChanged,
		"amount_of_errors":  t.AmountOfErrors,
	}
}

func serializeDate(d *civil.Date) any {
	if d == nil {
		return nil
	}
	return d.String()
}

func serializeMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}
