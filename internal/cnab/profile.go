package cnab

import "fmt"

// HeaderLayout locates header fields on the type-0 line.
type HeaderLayout struct {
	OperationCode Range
	Operation     Range
	ServiceCode   Range
	Service       Range
	Agreement     Range
	ClientCode    Range
	CompanyName   Range
	BankCode      Range
	BankName      Range
	Date          Range
	CreditDate    Range
}

// AccountLayout locates the issuer account fields on the first detail line.
type AccountLayout struct {
	Agency            Range
	AgencyCheckDigit  Range
	Account           Range
	AccountCheckDigit Range
}

// DetailLayout locates transaction fields on a detail line.
type DetailLayout struct {
	Wallet         Range
	ControlNumber  Range
	BankNumber     Range
	Occurrence     Range
	OccurrenceDate Range
	DocumentNumber Range
	DueDate        Range
	Value          Range
	Tariff         Range
	OtherExpenses  Range
	IOF            Range
	Abatement      Range
	Discount       Range
	PaidValue      Range
	Interest       Range
	Fine           Range
	CreditDate     Range
	SettlementCode Range
	ReasonBlock    Range
	Sequence       Range
}

// TrailerLayout locates the declared totals on the type-9 line.
type TrailerLayout struct {
	DeclaredBonds Range
	DeclaredValue Range
	Notices       Range
}

// ComplementLayout locates the Pix fields on a type-4 line.
type ComplementLayout struct {
	SpiURL Range
	TxID   Range
}

// TransactionHook inspects a decoded detail or complement line.
// Returning an error rejects the record.
type TransactionHook func(tx *Transaction, line string) error

// BankProfile is everything the parser needs to know about one bank.
type BankProfile struct {
	Code string
	Name string

	Header     HeaderLayout
	Account    AccountLayout
	Detail     DetailLayout
	Trailer    TrailerLayout
	Complement ComplementLayout

	Table             OccurrenceTable
	Rules             []Rule
	EntryRejectedCode string

	// ValidateTransaction runs after the default detail decoding.
	ValidateTransaction TransactionHook
	// ValidateComplement runs after the default complement decoding.
	ValidateComplement TransactionHook
}

// Classifier builds the occurrence classifier for the profile.
func (p *BankProfile) Classifier() *Classifier {
	return &Classifier{
		Rules:             p.Rules,
		Table:             p.Table,
		EntryRejectedCode: p.EntryRejectedCode,
	}
}

// Validate checks that the profile can drive a parse.
func (p *BankProfile) Validate() error {
	if p == nil {
		return fmt.Errorf("BankProfile.Validate: nil profile")
	}
	if p.Code == "" {
		return fmt.Errorf("BankProfile.Validate: missing bank code")
	}
	if p.Table == nil {
		return fmt.Errorf("BankProfile.Validate: bank %s: missing occurrence table", p.Code)
	}
	if p.Detail.Occurrence.Width() != 2 {
		return fmt.Errorf("BankProfile.Validate: bank %s: occurrence range must be two columns", p.Code)
	}
	return nil
}
