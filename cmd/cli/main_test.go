package main

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestCommandContext(t *testing.T) {
	tests := []struct {
		name         string
		timeout      time.Duration
		wantDeadline bool
	}{
		{name: "zero means no timeout", timeout: 0},
		{name: "negative means no timeout", timeout: -time.Second},
		{name: "positive sets a deadline", timeout: time.Minute, wantDeadline: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := commandContext(zerolog.Nop(), tt.timeout)
			defer cancel()

			if err := ctx.Err(); err != nil {
				t.Fatalf("context already done: %v", err)
			}
			if _, ok := ctx.Deadline(); ok != tt.wantDeadline {
				t.Errorf("has deadline = %v, want %v", ok, tt.wantDeadline)
			}
		})
	}
}
