// Package service is the request boundary shared by the HTTP server, the
// MCP server and the CLI: it validates a generation request, extracts the
// design file's elements and dispatches to the selected generator.
package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ormasoftchile/figmatest/pkg/config"
	"github.com/ormasoftchile/figmatest/pkg/extract"
	"github.com/ormasoftchile/figmatest/pkg/figma"
	"github.com/ormasoftchile/figmatest/pkg/generator"
	"github.com/ormasoftchile/figmatest/pkg/llm"
	"github.com/ormasoftchile/figmatest/pkg/logging"
)

// ErrMissingFileKey is returned for a request without a file key.
var ErrMissingFileKey = errors.New("Figma file key is required")

// responseElementLimit caps the elements echoed back in a response.
const responseElementLimit = 10

// Request is a generation request.
type Request struct {
	FileKey      string `json:"file_key"`
	Mode         string `json:"mode,omitempty"`
	Instructions string `json:"instructions,omitempty"`
}

// Response is a successful generation result.
type Response struct {
	Success       bool              `json:"success"`
	FileName      string            `json:"file_name"`
	TotalElements int               `json:"total_elements"`
	Elements      []extract.Element `json:"elements"`
	TestCases     string            `json:"test_cases"`
	Mode          string            `json:"mode"`
}

// Failure is the body reported for a failed request.
type Failure struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Error is a request failure carrying an HTTP-style status.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Err }

// Failure returns the response body for e.
func (e *Error) Failure() Failure {
	return Failure{Success: false, Error: e.Message}
}

// StatusOf returns the HTTP status for err: the status of a wrapped *Error,
// or 500.
func StatusOf(err error) int {
	var se *Error
	if errors.As(err, &se) {
		return se.Status
	}
	return http.StatusInternalServerError
}

// Health reports configuration readiness.
type Health struct {
	Status            string `json:"status"`
	FigmaConfigured   bool   `json:"figma_configured"`
	MistralConfigured bool   `json:"mistral_configured"`
}

// ElementSource extracts the elements of a design file.
type ElementSource interface {
	Extract(ctx context.Context, fileKey string) (*extract.Result, error)
}

// Options wires a Service.
type Options struct {
	Source    ElementSource
	Completer llm.Completer // nil makes ai mode fall back to adaptive
	Model     string
	Attempts  int

	FigmaConfigured   bool
	MistralConfigured bool

	Logger *zap.Logger
}

// Service runs generation requests.
type Service struct {
	opts   Options
	logger *zap.Logger
}

// New creates a Service.
func New(opts Options) *Service {
	return &Service{opts: opts, logger: logging.OrNop(opts.Logger)}
}

// FromConfig builds the design-file and completion clients described by
// cfg and returns a Service over them.
func FromConfig(cfg *config.Config, logger *zap.Logger) *Service {
	logger = logging.OrNop(logger)

	files := figma.New(figma.Config{
		BaseURL: cfg.Figma.BaseURL,
		Token:   cfg.Figma.Token,
		Timeout: time.Duration(cfg.Figma.TimeoutSeconds) * time.Second,
	})
	files.Logger = logger.Named("figma")

	opts := Options{
		Source:            extract.NewExtractor(files, logger.Named("extract")),
		Model:             cfg.Mistral.Model,
		Attempts:          cfg.Mistral.Attempts,
		FigmaConfigured:   cfg.FigmaConfigured(),
		MistralConfigured: cfg.MistralConfigured(),
		Logger:            logger,
	}
	if cfg.Mistral.APIKey != "" {
		client, err := llm.NewMistralClient(llm.MistralConfig{
			BaseURL: cfg.Mistral.BaseURL,
			APIKey:  cfg.Mistral.APIKey,
			Model:   cfg.Mistral.Model,
			Timeout: time.Duration(cfg.Mistral.TimeoutSeconds) * time.Second,
		})
		if err != nil {
			logger.Warn("completion client unavailable", zap.Error(err))
		} else {
			opts.Completer = client
		}
	}
	return New(opts)
}

// Generate validates req, extracts the file's elements and generates test
// steps in the requested mode. Failures are returned as *Error.
func (s *Service) Generate(ctx context.Context, req Request) (*Response, error) {
	log := s.logger.With(zap.String("request_id", uuid.NewString()))

	key := strings.TrimSpace(req.FileKey)
	if key == "" {
		log.Info("rejected request", zap.Error(ErrMissingFileKey))
		return nil, &Error{Status: http.StatusBadRequest, Message: ErrMissingFileKey.Error(), Err: ErrMissingFileKey}
	}
	mode := strings.TrimSpace(req.Mode)
	if mode == "" {
		mode = string(generator.ModeFixed)
	}
	instructions := strings.TrimSpace(req.Instructions)

	log = log.With(zap.String("file_key", key), zap.String("mode", mode))
	log.Info("generation started")

	result, err := s.opts.Source.Extract(ctx, key)
	if err != nil {
		log.Error("generation failed", zap.Error(err))
		return nil, &Error{
			Status:  http.StatusInternalServerError,
			Message: fmt.Sprintf("Generation failed: %v", err),
			Err:     err,
		}
	}

	testCases, err := s.generate(ctx, log, generator.ParseMode(mode), result, instructions)
	if err != nil {
		log.Error("generation failed", zap.Error(err))
		return nil, &Error{
			Status:  http.StatusInternalServerError,
			Message: fmt.Sprintf("Generation failed: %v", err),
			Err:     err,
		}
	}

	log.Info("generation finished", zap.Int("elements", result.TotalElements))
	return &Response{
		Success:       true,
		FileName:      result.FileName,
		TotalElements: result.TotalElements,
		Elements:      head(result.Elements, responseElementLimit),
		TestCases:     testCases,
		Mode:          mode,
	}, nil
}

func (s *Service) generate(ctx context.Context, log *zap.Logger, mode generator.Mode, result *extract.Result, instructions string) (string, error) {
	switch mode {
	case generator.ModeFixed:
		return generator.Fixed{}.Generate(ctx, result.Elements, instructions)
	case generator.ModeAdaptive:
		return (&generator.Adaptive{Logger: log}).Generate(ctx, result.Elements, instructions)
	default:
		ai := &generator.AI{
			Client:   s.opts.Completer,
			Model:    s.opts.Model,
			Attempts: s.opts.Attempts,
			FileName: result.FileName,
			Fallback: &generator.Adaptive{Logger: log},
			Logger:   log,
		}
		return ai.GenerateWithFallback(ctx, result.Elements, instructions), nil
	}
}

// Extract returns the file's elements, optionally narrowed by an
// extract.Filter expression.
func (s *Service) Extract(ctx context.Context, fileKey, where string) (*extract.Result, error) {
	key := strings.TrimSpace(fileKey)
	if key == "" {
		return nil, &Error{Status: http.StatusBadRequest, Message: ErrMissingFileKey.Error(), Err: ErrMissingFileKey}
	}
	result, err := s.opts.Source.Extract(ctx, key)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(where) == "" {
		return result, nil
	}
	filtered, err := extract.Filter(result.Elements, where)
	if err != nil {
		return nil, &Error{Status: http.StatusBadRequest, Message: err.Error(), Err: err}
	}
	return &extract.Result{
		FileName:      result.FileName,
		Elements:      filtered,
		TotalElements: len(filtered),
	}, nil
}

// Health reports which credentials are configured.
func (s *Service) Health() Health {
	return Health{
		Status:            "healthy",
		FigmaConfigured:   s.opts.FigmaConfigured,
		MistralConfigured: s.opts.MistralConfigured,
	}
}

func head(elements []extract.Element, n int) []extract.Element {
	if elements == nil {
		return []extract.Element{}
	}
	if len(elements) > n {
		return elements[:n]
	}
	return elements
}
