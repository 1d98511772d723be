package cnab

import (
	"errors"
	"fmt"
)

var (
	// ErrStructural is matched by every *StructuralError.
	ErrStructural = errors.New("cnab: structural error")
	// ErrUnknownBank is returned when no profile is registered for a bank code.
	ErrUnknownBank = errors.New("cnab: unknown bank")
)

// StructuralError reports a line the parser cannot route. It is the only
// condition that aborts a parse.
type StructuralError struct {
	Line   int
	Reason string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("cnab: line %d: %s", e.Line, e.Reason)
}

// Is lets errors.Is(err, ErrStructural) match.
func (e *StructuralError) Is(target error) bool {
	return target == ErrStructural
}
