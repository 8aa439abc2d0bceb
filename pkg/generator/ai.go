package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ormasoftchile/figmatest/pkg/extract"
	"github.com/ormasoftchile/figmatest/pkg/llm"
	"github.com/ormasoftchile/figmatest/pkg/steps"
)

const (
	DefaultAttempts    = 3
	DefaultTemperature = 0.1
	DefaultMaxTokens   = 1200
	baseSeed           = 42
)

var (
	// ErrAttemptsExhausted is returned when no attempt produced usable steps.
	ErrAttemptsExhausted = errors.New("failed to generate properly formatted test cases after multiple attempts")
	// ErrNoCompleter is returned when the AI strategy runs without a client.
	ErrNoCompleter = errors.New("no completion client configured")
)

// AI generates steps with a chat completion and repairs the output.
type AI struct {
	Client   llm.Completer
	Model    string // empty uses the client's default
	Attempts int    // <= 0 uses DefaultAttempts
	FileName string
	Fallback *Adaptive
	Logger   *zap.Logger
}

// Generate implements Generator. Attempts run sequentially with a seed of
// 42 plus the attempt index; an attempt fails on a transport error, a
// non-200 response, a response without choices, or output that cannot be
// repaired. When every attempt fails it returns ErrAttemptsExhausted.
func (g *AI) Generate(ctx context.Context, elements []extract.Element, instructions string) (string, error) {
	if g.Client == nil {
		return "", ErrNoCompleter
	}
	prompt, err := RenderPrompt(g.FileName, elements, instructions)
	if err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}

	log := g.logger()
	attempts := g.Attempts
	if attempts <= 0 {
		attempts = DefaultAttempts
	}
	for attempt := 0; attempt < attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		raw, err := g.Client.Complete(ctx, llm.CompletionRequest{
			Model:       g.Model,
			Messages:    llm.UserPrompt(prompt),
			Temperature: DefaultTemperature,
			MaxTokens:   DefaultMaxTokens,
			RandomSeed:  llm.Seed(baseSeed + attempt),
		})
		if err != nil {
			log.Warn("completion attempt failed", zap.Int("attempt", attempt+1), zap.Error(err))
			continue
		}
		if out := enforce(raw, elements); out != "" {
			log.Debug("completion accepted", zap.Int("attempt", attempt+1))
			return out, nil
		}
		log.Warn("completion attempt produced no usable steps", zap.Int("attempt", attempt+1))
	}
	return "", ErrAttemptsExhausted
}

// GenerateWithFallback runs Generate and, on any failure, returns the
// adaptive sequence for the same elements instead.
func (g *AI) GenerateWithFallback(ctx context.Context, elements []extract.Element, instructions string) string {
	out, err := g.Generate(ctx, elements, instructions)
	if err == nil {
		return out
	}
	g.logger().Warn("AI generation failed, falling back to adaptive", zap.Error(err))
	fallback := g.Fallback
	if fallback == nil {
		fallback = &Adaptive{Logger: g.Logger}
	}
	return strings.Join(fallback.Lines(elements), "\n")
}

func (g *AI) logger() *zap.Logger {
	if g.Logger == nil {
		return zap.NewNop()
	}
	return g.Logger
}

// enforce applies steps.EnforceStrictFormat to raw. Enough accepted lines
// are returned upper-cased, capped at steps.MaxSteps. Otherwise the
// fallback builder runs when there are elements to build from, and the
// empty string signals a failed attempt when there are none.
func enforce(raw string, elements []extract.Element) string {
	accepted := steps.EnforceStrictFormat(raw)
	if len(accepted) >= steps.MinSteps {
		lines := make([]string, 0, steps.MaxSteps)
		for _, s := range firstN(accepted, steps.MaxSteps) {
			lines = append(lines, strings.ToUpper(s.String()))
		}
		return strings.Join(lines, "\n")
	}
	if len(elements) > 0 {
		return strings.Join(BuildFallbackCases(elements), "\n")
	}
	return ""
}

