package banks

import (
	"errors"
	"testing"

	"github.com/dvloznov/cnab-returns/internal/cnab"
	"github.com/dvloznov/cnab-returns/internal/cnab/bradesco/bradescotest"
)

func TestDefault(t *testing.T) {
	reg := Default()

	p, err := reg.Lookup("237")
	if err != nil {
		t.Fatalf("Lookup(237) error = %v", err)
	}
	if err := p.Validate(); err != nil {
		t.Errorf("bradesco profile invalid: %v", err)
	}

	_, err = reg.Lookup("341")
	if !errors.Is(err, cnab.ErrUnknownBank) {
		t.Errorf("Lookup(341) error = %v, want ErrUnknownBank", err)
	}
}

func TestDefault_Detect(t *testing.T) {
	reg := Default()
	lines := []string{bradescotest.HeaderLine(bradescotest.Header{Date: "010124"})}

	p, err := reg.Detect(lines)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if p.Code != "237" {
		t.Errorf("Detect() code = %q, want 237", p.Code)
	}
}
