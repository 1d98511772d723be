package cnab

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// Record type discriminators found in column 1.
const (
	RecordHeader     = '0'
	RecordComplement = '4'
	RecordTrailer    = '9'
)

// State is the parser's position in the file.
type State int

const (
	StateAwaitingHeader State = iota
	StateProcessingBody
	StateFinalized
)

func (s State) String() string {
	switch s {
	case StateAwaitingHeader:
		return "AWAITING_HEADER"
	case StateProcessingBody:
		return "PROCESSING_BODY"
	case StateFinalized:
		return "FINALIZED"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger routes parser diagnostics to logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Parser) {
		p.log = logger
	}
}

// Parser turns the lines of one return file into a ParseResult.
// A Parser is single-use and not safe for concurrent use; parse files
// concurrently with one Parser each.
type Parser struct {
	profile    *BankProfile
	classifier *Classifier
	lines      []string
	log        zerolog.Logger

	state   State
	result  *ParseResult
	err     error
	counter int
	totals  Totals

	// pending is the most recent detail still open to complement lines.
	pending *Transaction
}

// NewParser creates a parser for already-split lines.
func NewParser(profile *BankProfile, lines []string, opts ...Option) *Parser {
	p := &Parser{
		profile:    profile,
		classifier: profile.Classifier(),
		lines:      lines,
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewParserFromReader decodes r as Latin-1 and creates a parser for it.
func NewParserFromReader(profile *BankProfile, r io.Reader, opts ...Option) (*Parser, error) {
	lines, err := Decode(r)
	if err != nil {
		return nil, fmt.Errorf("NewParserFromReader: %w", err)
	}
	return NewParser(profile, lines, opts...), nil
}

// State reports where the parser is in the file.
func (p *Parser) State() State {
	return p.state
}

// Process parses every line. Calling it again returns the first outcome.
func (p *Parser) Process() (*ParseResult, error) {
	if p.state == StateFinalized {
		return p.result, p.err
	}

	p.result = &ParseResult{
		Header:       &Header{},
		Transactions: []*Transaction{},
		Trailer:      &Trailer{},
	}

	for i, raw := range p.lines {
		lineNo := i + 1
		line := strings.TrimRight(raw, "\r")
		if line == "" {
			p.result = nil
			p.err = &StructuralError{Line: lineNo, Reason: "empty line has no record type"}
			p.state = StateFinalized
			return nil, p.err
		}

		switch line[0] {
		case RecordHeader:
			p.commit()
			p.processHeader(line)
		case RecordTrailer:
			p.commit()
			p.processTrailer(line)
		case RecordComplement:
			p.processComplementLine(lineNo, line)
		default:
			p.commit()
			p.processDetailLine(lineNo, line)
		}
	}

	p.commit()
	p.finalize()
	return p.result, nil
}

// commit moves the pending transaction into the result and tallies it.
func (p *Parser) commit() {
	if p.pending == nil {
		return
	}
	p.result.Transactions = append(p.result.Transactions, p.pending)
	p.totals.Add(p.pending.OccurrenceType)
	p.pending = nil
}

// retract drops the pending transaction. Account fields taken from the
// only kept detail go with it.
func (p *Parser) retract() {
	p.pending = nil
	p.counter--
	if p.counter == 0 {
		p.fillAccount("")
	}
}

func (p *Parser) processHeader(line string) {
	if p.result.HasHeader {
		p.log.Warn().Msg("duplicate header record, overwriting")
	}
	l := p.profile.Header
	h := p.result.Header
	h.OperationCode = field(l.OperationCode, line)
	h.Operation = field(l.Operation, line)
	h.ServiceCode = field(l.ServiceCode, line)
	h.Service = field(l.Service, line)
	h.Agreement = field(l.Agreement, line)
	h.ClientCode = field(l.ClientCode, line)
	h.CompanyName = field(l.CompanyName, line)
	h.BankCode = field(l.BankCode, line)
	h.BankName = field(l.BankName, line)
	h.Date = ToDate(l.Date.Cut(line))
	h.CreditDate = ToDate(l.CreditDate.Cut(line))

	p.result.HasHeader = true
	p.state = StateProcessingBody
}

func (p *Parser) processTrailer(line string) {
	l := p.profile.Trailer
	t := p.result.Trailer
	t.DeclaredBonds = ToInt(l.DeclaredBonds.Cut(line))
	t.DeclaredValue = ToDecimal(l.DeclaredValue.Cut(line))
	t.Notices = ToInt(l.Notices.Cut(line))
	p.result.HasTrailer = true
}

func (p *Parser) processDetailLine(lineNo int, line string) {
	if p.state == StateAwaitingHeader {
		p.log.Warn().Int("line", lineNo).Msg("detail record before header")
		p.state = StateProcessingBody
	}

	p.counter++
	tx := &Transaction{LineNumber: lineNo}
	if err := p.processTransaction(tx, line); err != nil {
		p.log.Debug().Err(err).Int("line", lineNo).Msg("detail record rejected")
		p.retract()
		return
	}
	if p.counter == 1 {
		p.fillAccount(line)
	}
	p.pending = tx
}

func (p *Parser) fillAccount(line string) {
	l := p.profile.Account
	h := p.result.Header
	h.Agency = field(l.Agency, line)
	h.AgencyCheckDigit = field(l.AgencyCheckDigit, line)
	h.Account = field(l.Account, line)
	h.AccountCheckDigit = field(l.AccountCheckDigit, line)
}

func (p *Parser) processTransaction(tx *Transaction, line string) error {
	l := p.profile.Detail

	code := l.Occurrence.Cut(line)
	if len(code) != 2 || !isDigits(code) {
		return fmt.Errorf("occurrence code %q is not a two-digit number", code)
	}

	tx.Occurrence = code
	tx.Sequence = ToInt(l.Sequence.Cut(line))
	tx.Wallet = field(l.Wallet, line)
	tx.ControlNumber = field(l.ControlNumber, line)
	tx.BankNumber = field(l.BankNumber, line)
	tx.DocumentNumber = field(l.DocumentNumber, line)
	tx.SettlementCode = field(l.SettlementCode, line)

	tx.OccurrenceDate = ToDate(l.OccurrenceDate.Cut(line))
	tx.DueDate = ToDate(l.DueDate.Cut(line))
	tx.CreditDate = ToDate(l.CreditDate.Cut(line))

	tx.Value = ToDecimal(l.Value.Cut(line))
	tx.Tariff = ToDecimal(l.Tariff.Cut(line))
	tx.OtherExpenses = ToDecimal(l.OtherExpenses.Cut(line))
	tx.IOF = ToDecimal(l.IOF.Cut(line))
	tx.Abatement = ToDecimal(l.Abatement.Cut(line))
	tx.Discount = ToDecimal(l.Discount.Cut(line))
	tx.PaidValue = ToDecimal(l.PaidValue.Cut(line))
	tx.Interest = ToDecimal(l.Interest.Cut(line))
	tx.Fine = ToDecimal(l.Fine.Cut(line))

	tx.OccurrenceDescription = p.profile.Table.Description(code)
	if tx.OccurrenceDescription == "" {
		p.log.Debug().Int("line", tx.LineNumber).Str("occurrence", code).Msg("unknown occurrence code")
	}

	cls := p.classifier.Classify(code, l.ReasonBlock.Cut(line))
	tx.OccurrenceType = cls.Type
	tx.Reasons = cls.Reasons
	tx.RejectionReason = cls.RejectionReason

	if p.profile.ValidateTransaction != nil {
		if err := p.profile.ValidateTransaction(tx, line); err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) processComplementLine(lineNo int, line string) {
	if p.pending == nil {
		p.log.Debug().Int("line", lineNo).Msg("complement record without a transaction, skipped")
		return
	}
	if err := p.processComplement(p.pending, line); err != nil {
		p.log.Debug().Err(err).Int("line", lineNo).Int("detail_line", p.pending.LineNumber).
			Msg("complement record rejected, dropping its transaction")
		p.retract()
	}
}

func (p *Parser) processComplement(tx *Transaction, line string) error {
	l := p.profile.Complement
	spiURL := field(l.SpiURL, line)
	txID := field(l.TxID, line)
	if spiURL == "" && txID == "" {
		return fmt.Errorf("complement carries neither a Pix URL nor a txId")
	}
	tx.SpiURL = spiURL
	tx.TxID = txID

	if p.profile.ValidateComplement != nil {
		if err := p.profile.ValidateComplement(tx, line); err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) finalize() {
	t := p.result.Trailer
	t.AmountOfPaid = p.totals.Paid
	t.AmountOfRetired = p.totals.Retired
	t.AmountOfEntered = p.totals.Entered
	t.AmountOfChanged = p.totals.Changed
	t.AmountOfErrors = p.totals.Errors

	if !p.result.HasHeader {
		p.log.Warn().Msg("return file has no header record")
	}
	if !p.result.HasTrailer {
		p.log.Warn().Msg("return file has no trailer record")
	}
	p.state = StateFinalized
}

func field(r Range, line string) string {
	return strings.TrimSpace(r.Cut(line))
}
