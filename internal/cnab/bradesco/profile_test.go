package bradesco

import (
	"errors"
	"strings"
	"testing"

	"cloud.google.com/go/civil"

	"github.com/dvloznov/cnab-returns/internal/cnab"
	"github.com/dvloznov/cnab-returns/internal/cnab/bradesco/bradescotest"
)

func parse(t *testing.T, lines ...string) *cnab.ParseResult {
	t.Helper()
	res, err := cnab.NewParser(Profile(), lines).Process()
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	return res
}

func TestScenario_LiquidatedDetail(t *testing.T) {
	res := parse(t,
		bradescotest.HeaderLine(bradescotest.Header{Date: "010124"}),
		bradescotest.DetailLine(bradescotest.Detail{Occurrence: "06", PaidValue: 10000, Sequence: 2}),
		bradescotest.TrailerLine(1, 10000),
	)

	if res.Header.OperationCode != "2" {
		t.Errorf("OperationCode = %q, want 2", res.Header.OperationCode)
	}
	if want := (civil.Date{Year: 2024, Month: 1, Day: 1}); res.Header.Date == nil || *res.Header.Date != want {
		t.Errorf("header date = %v, want %v", res.Header.Date, want)
	}
	if len(res.Transactions) != 1 {
		t.Fatalf("got %d transactions, want 1", len(res.Transactions))
	}

	tx := res.Transactions[0]
	if tx.OccurrenceType != cnab.OccurrenceLiquidated {
		t.Errorf("OccurrenceType = %v, want LIQUIDATED", tx.OccurrenceType)
	}
	if tx.PaidValue.StringFixed(2) != "100.00" {
		t.Errorf("PaidValue = %s, want 100.00", tx.PaidValue)
	}
	if tx.OccurrenceDescription != "Liquidação normal" {
		t.Errorf("OccurrenceDescription = %q", tx.OccurrenceDescription)
	}
	if tx.Sequence != 2 {
		t.Errorf("Sequence = %d, want 2", tx.Sequence)
	}
	if res.Trailer.AmountOfPaid != 1 {
		t.Errorf("AmountOfPaid = %d, want 1", res.Trailer.AmountOfPaid)
	}
	if res.Trailer.DeclaredBonds != 1 {
		t.Errorf("DeclaredBonds = %d, want 1", res.Trailer.DeclaredBonds)
	}
}

func TestScenario_RejectedEntry(t *testing.T) {
	res := parse(t,
		bradescotest.HeaderLine(bradescotest.Header{Date: "010124"}),
		bradescotest.DetailLine(bradescotest.Detail{Occurrence: "03", Reasons: "00"}),
		bradescotest.TrailerLine(1, 0),
	)

	if len(res.Transactions) != 1 {
		t.Fatalf("got %d transactions, want 1", len(res.Transactions))
	}
	tx := res.Transactions[0]
	if tx.OccurrenceType != cnab.OccurrenceError {
		t.Errorf("OccurrenceType = %v, want ERROR", tx.OccurrenceType)
	}
	if tx.RejectionReason != "Ocorrência aceita" {
		t.Errorf("RejectionReason = %q, want %q", tx.RejectionReason, "Ocorrência aceita")
	}
	if res.Trailer.AmountOfErrors != 1 || res.Trailer.AmountOfPaid != 0 {
		t.Errorf("trailer = %+v", res.Trailer)
	}
}

func TestScenario_PixComplement(t *testing.T) {
	res := parse(t,
		bradescotest.HeaderLine(bradescotest.Header{Date: "010124"}),
		bradescotest.DetailLine(bradescotest.Detail{Occurrence: "02", Reasons: "P1"}),
		bradescotest.ComplementLine("qrpix.bradesco.com.br/qr/v2/9d36b84f-c70b-478f-b95c-12729b90ca25", "E2E7A2D4C0F14A3B8C7F2A1B3C4D5E6F7"),
		bradescotest.TrailerLine(1, 0),
	)

	if len(res.Transactions) != 1 {
		t.Fatalf("got %d transactions, want 1", len(res.Transactions))
	}
	tx := res.Transactions[0]
	if tx.SpiURL != "qrpix.bradesco.com.br/qr/v2/9d36b84f-c70b-478f-b95c-12729b90ca25" {
		t.Errorf("SpiURL = %q", tx.SpiURL)
	}
	if tx.TxID != "E2E7A2D4C0F14A3B8C7F2A1B3C4D5E6F7" {
		t.Errorf("TxID = %q", tx.TxID)
	}
	if len(tx.Reasons) != 1 || tx.Reasons[0] != "Registrado com QR Code Pix" {
		t.Errorf("Reasons = %v", tx.Reasons)
	}
	if res.Trailer.AmountOfEntered != 1 {
		t.Errorf("AmountOfEntered = %d, want 1", res.Trailer.AmountOfEntered)
	}
}

func TestScenario_RejectedDetail(t *testing.T) {
	res := parse(t,
		bradescotest.HeaderLine(bradescotest.Header{Date: "010124"}),
		bradescotest.DetailLine(bradescotest.Detail{Occurrence: "0X", PaidValue: 10000}),
		bradescotest.TrailerLine(1, 10000),
	)

	if len(res.Transactions) != 0 {
		t.Fatalf("got %d transactions, want 0", len(res.Transactions))
	}
	tr := res.Trailer
	if tr.AmountOfPaid+tr.AmountOfRetired+tr.AmountOfEntered+tr.AmountOfChanged+tr.AmountOfErrors != 0 {
		t.Errorf("trailer counters = %+v, want all zero", tr)
	}
}

func TestApportionmentRecordIsRejected(t *testing.T) {
	res := parse(t,
		bradescotest.HeaderLine(bradescotest.Header{Date: "010124"}),
		bradescotest.DetailLine(bradescotest.Detail{Occurrence: "06", PaidValue: 500}),
		bradescotest.DetailLine(bradescotest.Detail{RecordType: '3', Occurrence: "06", PaidValue: 500}),
		bradescotest.TrailerLine(1, 500),
	)
	if len(res.Transactions) != 1 {
		t.Errorf("got %d transactions, want 1", len(res.Transactions))
	}
}

func TestAccountFromFirstDetail(t *testing.T) {
	res := parse(t,
		bradescotest.HeaderLine(bradescotest.Header{Date: "010124"}),
		bradescotest.DetailLine(bradescotest.Detail{Occurrence: "06", Agency: "03210", Account: "0098765", AccountDigit: "4"}),
		bradescotest.DetailLine(bradescotest.Detail{Occurrence: "06", Agency: "09999", Account: "0011111", AccountDigit: "2"}),
		bradescotest.TrailerLine(2, 0),
	)

	h := res.Header
	if h.Agency != "03210" || h.Account != "0098765" || h.AccountCheckDigit != "4" {
		t.Errorf("header account = %s/%s-%s, want the first detail's", h.Agency, h.Account, h.AccountCheckDigit)
	}
	if h.AgencyCheckDigit != "" {
		t.Errorf("AgencyCheckDigit = %q, Bradesco returns carry none", h.AgencyCheckDigit)
	}
	if h.BankCode != Code || h.CompanyName != "ACME COMERCIO LTDA" {
		t.Errorf("header = %+v", h)
	}
}

func TestDetailFields(t *testing.T) {
	res := parse(t,
		bradescotest.HeaderLine(bradescotest.Header{Date: "010124"}),
		bradescotest.DetailLine(bradescotest.Detail{
			Occurrence:     "06",
			ControlNumber:  "PEDIDO-778",
			BankNumber:     "00000012345P",
			OccurrenceDate: "050124",
			DocumentNumber: "NF-1001",
			DueDate:        "100124",
			Value:          25000,
			Tariff:         250,
			PaidValue:      25490,
			Interest:       490,
			CreditDate:     "060124",
			Reasons:        "15",
		}),
		bradescotest.TrailerLine(1, 25490),
	)

	tx := res.Transactions[0]
	checks := map[string][2]string{
		"ControlNumber":  {tx.ControlNumber, "PEDIDO-778"},
		"BankNumber":     {tx.BankNumber, "00000012345P"},
		"DocumentNumber": {tx.DocumentNumber, "NF-1001"},
		"Wallet":         {tx.Wallet, "009"},
		"Value":          {tx.Value.StringFixed(2), "250.00"},
		"Tariff":         {tx.Tariff.StringFixed(2), "2.50"},
		"PaidValue":      {tx.PaidValue.StringFixed(2), "254.90"},
		"Interest":       {tx.Interest.StringFixed(2), "4.90"},
		"DueDate":        {tx.DueDate.String(), "2024-01-10"},
		"OccurrenceDate": {tx.OccurrenceDate.String(), "2024-01-05"},
		"CreditDate":     {tx.CreditDate.String(), "2024-01-06"},
		"Reason":         {strings.Join(tx.Reasons, "|"), "Título pago com cheque"},
	}
	for name, c := range checks {
		if c[0] != c[1] {
			t.Errorf("%s = %q, want %q", name, c[0], c[1])
		}
	}
}

func TestChangeRuleCustomText(t *testing.T) {
	c := Profile().Classifier()
	tests := map[string]string{
		"14": "Vencimento alterado",
		"33": "Alteração de outros dados confirmada",
		"21": "Controle do participante alterado",
	}
	for code, want := range tests {
		got := c.Classify(code, "")
		if got.Type != cnab.OccurrenceChange {
			t.Errorf("Classify(%s).Type = %v, want CHANGE", code, got.Type)
		}
		if len(got.Reasons) != 1 || got.Reasons[0] != want {
			t.Errorf("Classify(%s).Reasons = %v, want [%s]", code, got.Reasons, want)
		}
	}
}

func TestEveryGroupedCodeIsClassified(t *testing.T) {
	c := Profile().Classifier()

	grouped := map[string]bool{}
	for _, rule := range Rules() {
		for _, code := range rule.Codes {
			grouped[code] = true
			if got := c.Classify(code, "").Type; got == cnab.OccurrenceOther {
				t.Errorf("code %s of group %s classified as OTHER", code, rule.Name)
			}
		}
	}

	for _, code := range Table.Codes() {
		got := c.Classify(code, "").Type
		if !grouped[code] && got != cnab.OccurrenceOther {
			t.Errorf("ungrouped code %s classified as %v", code, got)
		}
	}

	for code := range grouped {
		if Table.Description(code) == "" {
			t.Errorf("grouped code %s has no description", code)
		}
	}
}

func TestMultipleReasons(t *testing.T) {
	got := Profile().Classifier().Classify("03", "0816  2400")
	want := []string{"Nosso número inválido", "Data de vencimento inválida", "Data de emissão inválida"}
	if strings.Join(got.Reasons, "|") != strings.Join(want, "|") {
		t.Errorf("Reasons = %v, want %v", got.Reasons, want)
	}
	if got.RejectionReason != want[0] {
		t.Errorf("RejectionReason = %q, want %q", got.RejectionReason, want[0])
	}
}

func TestDecodeLatin1File(t *testing.T) {
	body := bradescotest.File(
		bradescotest.HeaderLine(bradescotest.Header{Date: "010124", CompanyName: "CONSTRUÇÃO"}),
		bradescotest.DetailLine(bradescotest.Detail{Occurrence: "09"}),
		bradescotest.TrailerLine(1, 0),
	)
	latin1, err := encodeLatin1(body)
	if err != nil {
		t.Fatalf("encodeLatin1() error = %v", err)
	}

	p, err := cnab.NewParserFromReader(Profile(), strings.NewReader(latin1))
	if err != nil {
		t.Fatalf("NewParserFromReader() error = %v", err)
	}
	res, err := p.Process()
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if res.Header.CompanyName != "CONSTRUÇÃO" {
		t.Errorf("CompanyName = %q", res.Header.CompanyName)
	}
	if res.Trailer.AmountOfRetired != 1 {
		t.Errorf("AmountOfRetired = %d, want 1", res.Trailer.AmountOfRetired)
	}
}

func TestBlankLineInBodyIsStructural(t *testing.T) {
	body := bradescotest.HeaderLine(bradescotest.Header{Date: "010124"}) + "\r\n\r\n" +
		bradescotest.TrailerLine(0, 0) + "\r\n"

	p, err := cnab.NewParserFromReader(Profile(), strings.NewReader(body))
	if err != nil {
		t.Fatalf("NewParserFromReader() error = %v", err)
	}
	_, err = p.Process()
	var se *cnab.StructuralError
	if !errors.As(err, &se) || se.Line != 2 {
		t.Errorf("Process() error = %v, want structural error on line 2", err)
	}
}
