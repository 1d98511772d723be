package cnab

import (
	"encoding/json"
	"fmt"
)

// ParseResult is the reconciled content of one return file.
type ParseResult struct {
	Header       *Header
	Transactions []*Transaction
	Trailer      *Trailer

	// HasHeader and HasTrailer record whether the file carried those lines.
	HasHeader  bool
	HasTrailer bool
}

// ToSerializable projects the result into plain maps and slices, keeping
// transaction order.
func (r *ParseResult) ToSerializable() map[string]any {
	txs := make([]map[string]any, 0, len(r.Transactions))
	for _, tx := range r.Transactions {
		txs = append(txs, tx.ToSerializable())
	}

	header := &Header{}
	if r.Header != nil {
		header = r.Header
	}
	trailer := &Trailer{}
	if r.Trailer != nil {
		trailer = r.Trailer
	}

	return map[string]any{
		"header":       header.ToSerializable(),
		"trailer":      trailer.ToSerializable(),
		"transactions": txs,
	}
}

// MarshalJSON encodes the serializable projection.
func (r *ParseResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ToSerializable())
}

// Warnings lists advisory inconsistencies. They never fail a parse.
func (r *ParseResult) Warnings() []string {
	var warnings []string
	if !r.HasHeader {
		warnings = append(warnings, "file has no header record")
	}
	if !r.HasTrailer {
		warnings = append(warnings, "file has no trailer record")
		return warnings
	}
	if r.Trailer.DeclaredBonds != len(r.Transactions) {
		warnings = append(warnings, fmt.Sprintf(
			"trailer declares %d bonds but %d transactions were kept",
			r.Trailer.DeclaredBonds, len(r.Transactions)))
	}
	return warnings
}
