// Package generator turns extracted design elements into test step text.
//
// Three strategies exist: a constant fixed sequence, an adaptive sequence
// driven by element names, and an AI-assisted sequence produced by a chat
// completion and repaired by steps.EnforceStrictFormat.
package generator

import (
	"context"
	"strings"

	"github.com/ormasoftchile/figmatest/pkg/extract"
)

// Mode selects a generation strategy.
type Mode string

const (
	ModeFixed    Mode = "fixed"
	ModeAdaptive Mode = "adaptive"
	ModeAI       Mode = "ai"
)

// ParseMode maps a caller-supplied mode name to a Mode. Empty means fixed;
// any unrecognized name selects the AI strategy.
func ParseMode(s string) Mode {
	switch strings.TrimSpace(s) {
	case "", string(ModeFixed):
		return ModeFixed
	case string(ModeAdaptive):
		return ModeAdaptive
	default:
		return ModeAI
	}
}

// Generator produces newline-separated step lines for a set of elements.
type Generator interface {
	Generate(ctx context.Context, elements []extract.Element, instructions string) (string, error)
}

func firstN[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}
