package pipeline

import (
	"context"
	"fmt"

	"github.com/dvloznov/cnab-returns/internal/cnab"
	"github.com/dvloznov/cnab-returns/internal/logger"
)

// ResolveProfile picks the bank profile for lines. A bank code in the header
// must be registered; defaultBank only applies when the header is missing or
// its bank code is blank.
func ResolveProfile(registry *cnab.Registry, lines []string, defaultBank string) (*cnab.BankProfile, error) {
	if code, ok := cnab.HeaderBankCode(lines); ok && code != "" {
		profile, err := registry.Lookup(code)
		if err != nil {
			return nil, fmt.Errorf("ResolveProfile: %w", err)
		}
		return profile, nil
	}
	if defaultBank == "" {
		return nil, fmt.Errorf("ResolveProfile: no bank code in header: %w", cnab.ErrUnknownBank)
	}

	profile, err := registry.Lookup(defaultBank)
	if err != nil {
		return nil, fmt.Errorf("ResolveProfile: default bank: %w", err)
	}
	return profile, nil
}

// ParseBytes decodes a raw return file, resolves its bank and parses it.
func ParseBytes(ctx context.Context, data []byte, registry *cnab.Registry, defaultBank string) (*cnab.ParseResult, *cnab.BankProfile, error) {
	lines, err := cnab.DecodeBytes(data)
	if err != nil {
		return nil, nil, fmt.Errorf("ParseBytes: %w", err)
	}

	profile, err := ResolveProfile(registry, lines, defaultBank)
	if err != nil {
		return nil, nil, fmt.Errorf("ParseBytes: %w", err)
	}

	result, err := parseLines(ctx, profile, lines)
	if err != nil {
		return nil, profile, fmt.Errorf("ParseBytes: %w", err)
	}
	return result, profile, nil
}

// ParseBytesWithProfile parses data with profile, ignoring the bank code in
// the file header.
func ParseBytesWithProfile(ctx context.Context, data []byte, profile *cnab.BankProfile) (*cnab.ParseResult, error) {
	lines, err := cnab.DecodeBytes(data)
	if err != nil {
		return nil, fmt.Errorf("ParseBytesWithProfile: %w", err)
	}

	result, err := parseLines(ctx, profile, lines)
	if err != nil {
		return nil, fmt.Errorf("ParseBytesWithProfile: %w", err)
	}
	return result, nil
}

func parseLines(ctx context.Context, profile *cnab.BankProfile, lines []string) (*cnab.ParseResult, error) {
	log := logger.FromContext(ctx).With().Str("bank", profile.Code).Logger()

	result, err := cnab.NewParser(profile, lines, cnab.WithLogger(log)).Process()
	if err != nil {
		return nil, err
	}

	for _, w := range result.Warnings() {
		log.Warn().Msg(w)
	}
	return result, nil
}
