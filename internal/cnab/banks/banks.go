// Package banks wires the supported bank profiles into a registry.
package banks

import (
	"github.com/dvloznov/cnab-returns/internal/cnab"
	"github.com/dvloznov/cnab-returns/internal/cnab/bradesco"
)

// Default returns a registry with every supported bank.
func Default() *cnab.Registry {
	return cnab.NewRegistry(
		bradesco.Profile(),
	)
}
