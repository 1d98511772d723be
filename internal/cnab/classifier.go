package cnab

import "strings"

const (
	reasonBlockWidth = 10
	reasonCodeWidth  = 2
)

// ReasonExtractor turns the raw reason block of a detail line into
// human-readable reasons for the given occurrence code.
type ReasonExtractor func(table OccurrenceTable, code, block string) []string

// Rule maps a group of occurrence codes to an OccurrenceType.
type Rule struct {
	Name  string
	Codes []string
	Type  OccurrenceType
	// Reasons is nil for groups that carry no reason block.
	Reasons ReasonExtractor
	// Custom holds per-code reason text placed ahead of any extracted reasons.
	Custom map[string]string
}

// Matches reports whether code belongs to the rule's group.
func (r Rule) Matches(code string) bool {
	for _, c := range r.Codes {
		if c == code {
			return true
		}
	}
	return false
}

// Classification is the outcome of classifying one occurrence code.
type Classification struct {
	Type            OccurrenceType
	Reasons         []string
	RejectionReason string
}

// Classifier evaluates Rules in order; the first matching rule wins.
type Classifier struct {
	Rules             []Rule
	Table             OccurrenceTable
	EntryRejectedCode string
}

// Classify resolves code and its raw reason block.
func (c *Classifier) Classify(code, reasonBlock string) Classification {
	for _, rule := range c.Rules {
		if !rule.Matches(code) {
			continue
		}

		out := Classification{Type: rule.Type, Reasons: []string{}}
		if text, ok := rule.Custom[code]; ok && text != "" {
			out.Reasons = append(out.Reasons, text)
		}
		if rule.Reasons != nil && c.Table != nil {
			out.Reasons = append(out.Reasons, rule.Reasons(c.Table, code, reasonBlock)...)
		}
		if c.EntryRejectedCode != "" && code == c.EntryRejectedCode && len(out.Reasons) > 0 {
			out.RejectionReason = out.Reasons[0]
		}
		return out
	}
	return Classification{Type: OccurrenceOther, Reasons: []string{}}
}

// SplitReasonBlock pads block to ten columns and splits it into five
// two-character sub-codes.
func SplitReasonBlock(block string) []string {
	runes := []rune(block)
	if len(runes) > reasonBlockWidth {
		runes = runes[:reasonBlockWidth]
	}
	if len(runes) < reasonBlockWidth {
		runes = append(runes, []rune(strings.Repeat(" ", reasonBlockWidth-len(runes)))...)
	}

	subs := make([]string, 0, reasonBlockWidth/reasonCodeWidth)
	for i := 0; i < reasonBlockWidth; i += reasonCodeWidth {
		subs = append(subs, string(runes[i:i+reasonCodeWidth]))
	}
	return subs
}

// ExtractReasons is the standard ReasonExtractor. The first sub-code is
// always looked up; the remaining ones are skipped when blank or "00".
// Lookups that return no text are dropped.
func ExtractReasons(table OccurrenceTable, code, block string) []string {
	reasons := []string{}
	for i, sub := range SplitReasonBlock(block) {
		if i > 0 {
			trimmed := strings.TrimSpace(sub)
			if trimmed == "" || trimmed == "00" {
				continue
			}
		}
		if text := table.ReasonDescription(code, sub); text != "" {
			reasons = append(reasons, text)
		}
	}
	return reasons
}

// Totals counts committed transactions per reconciled outcome.
type Totals struct {
	Paid    int
	Retired int
	Entered int
	Changed int
	Errors  int
}

// Add tallies one committed transaction of the given type.
func (t *Totals) Add(typ OccurrenceType) {
	switch typ {
	case OccurrenceLiquidated:
		t.Paid++
	case OccurrenceDropped:
		t.Retired++
	case OccurrenceEntry:
		t.Entered++
	case OccurrenceChange:
		t.Changed++
	case OccurrenceError:
		t.Errors++
	}
}

// Sum is the number of tallied transactions.
func (t Totals) Sum() int {
	return t.Paid + t.Retired + t.Entered + t.Changed + t.Errors
}
