package cnab

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// headerBankCode is where CNAB400 headers carry the bank's compensation code.
var headerBankCode = Cols(77, 79)

// Registry resolves bank profiles by compensation code.
type Registry struct {
	mu       sync.RWMutex
	profiles map[string]*BankProfile
}

// NewRegistry creates a registry holding profiles.
func NewRegistry(profiles ...*BankProfile) *Registry {
	r := &Registry{profiles: make(map[string]*BankProfile)}
	for _, p := range profiles {
		r.Register(p)
	}
	return r
}

// Register adds or replaces the profile for p.Code.
func (r *Registry) Register(p *BankProfile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[p.Code] = p
}

// Lookup returns the profile for code or ErrUnknownBank.
func (r *Registry) Lookup(code string) (*BankProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[strings.TrimSpace(code)]
	if !ok {
		return nil, fmt.Errorf("Registry.Lookup: bank %q: %w", code, ErrUnknownBank)
	}
	return p, nil
}

// Codes lists the registered bank codes in ascending order.
func (r *Registry) Codes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	codes := make([]string, 0, len(r.profiles))
	for code := range r.profiles {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// HeaderBankCode returns the bank code of the first header line, trimmed.
// ok is false when lines hold no header.
func HeaderBankCode(lines []string) (code string, ok bool) {
	for _, line := range lines {
		if line == "" || line[0] != RecordHeader {
			continue
		}
		return strings.TrimSpace(headerBankCode.Cut(line)), true
	}
	return "", false
}

// Detect picks the profile named by the first header line's bank code.
func (r *Registry) Detect(lines []string) (*BankProfile, error) {
	code, ok := HeaderBankCode(lines)
	if !ok {
		return nil, fmt.Errorf("Registry.Detect: no header record: %w", ErrUnknownBank)
	}
	return r.Lookup(code)
}
