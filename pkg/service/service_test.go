package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ormasoftchile/figmatest/pkg/extract"
	"github.com/ormasoftchile/figmatest/pkg/figma"
	"github.com/ormasoftchile/figmatest/pkg/generator"
	"github.com/ormasoftchile/figmatest/pkg/llm"
)

type fakeSource struct {
	result *extract.Result
	err    error
	keys   []string
}

func (f *fakeSource) Extract(_ context.Context, key string) (*extract.Result, error) {
	f.keys = append(f.keys, key)
	return f.result, f.err
}

type failingCompleter struct{ calls int }

func (f *failingCompleter) Complete(context.Context, llm.CompletionRequest) (string, error) {
	f.calls++
	return "", errors.New("Mistral API returned 503: unavailable")
}

func (f *failingCompleter) ModelName() string { return "failing" }

func elements(n int) []extract.Element {
	out := make([]extract.Element, n)
	for i := range out {
		out[i] = extract.Element{Name: "item btn", Type: figma.TypeInstance, Coordinates: extract.Coordinates{X: 100, Y: 200}, Screen: "Home"}
	}
	return out
}

func TestGenerateFixedEmptyElements(t *testing.T) {
	src := &fakeSource{result: &extract.Result{FileName: "Recipes", Elements: nil}}
	svc := New(Options{Source: src})

	resp, err := svc.Generate(context.Background(), Request{FileKey: "  abc123  "})
	require.NoError(t, err)

	want, _ := generator.Fixed{}.Generate(context.Background(), nil, "")
	assert.True(t, resp.Success)
	assert.Equal(t, "Recipes", resp.FileName)
	assert.Equal(t, "fixed", resp.Mode)
	assert.Equal(t, want, resp.TestCases)
	assert.Equal(t, 0, resp.TotalElements)
	assert.NotNil(t, resp.Elements)
	assert.Equal(t, []string{"abc123"}, src.keys, "file key is trimmed")
}

func TestGenerateMissingFileKey(t *testing.T) {
	src := &fakeSource{}
	svc := New(Options{Source: src})

	for _, key := range []string{"", "   "} {
		resp, err := svc.Generate(context.Background(), Request{FileKey: key, Mode: "adaptive"})
		require.Error(t, err)
		assert.Nil(t, resp)
		assert.True(t, errors.Is(err, ErrMissingFileKey))
		assert.Equal(t, http.StatusBadRequest, StatusOf(err))

		var se *Error
		require.True(t, errors.As(err, &se))
		assert.Equal(t, Failure{Success: false, Error: "Figma file key is required"}, se.Failure())
	}
	assert.Empty(t, src.keys, "extraction must not run")
}

func TestGenerateExtractionFailure(t *testing.T) {
	apiErr := &figma.APIError{StatusCode: 404, Body: "not found"}
	src := &fakeSource{err: errors.New("Failed to extract Figma elements: " + apiErr.Error())}
	svc := New(Options{Source: src})

	_, err := svc.Generate(context.Background(), Request{FileKey: "k"})
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, StatusOf(err))
	assert.Equal(t, "Generation failed: Failed to extract Figma elements: Figma API error: 404 - not found", err.Error())
}

func TestGenerateAdaptive(t *testing.T) {
	els := []extract.Element{{Name: "Profile", Type: figma.TypeFrame, Coordinates: extract.Coordinates{X: 300, Y: 400}}}
	svc := New(Options{Source: &fakeSource{result: &extract.Result{FileName: "F", Elements: els, TotalElements: 1}}})

	resp, err := svc.Generate(context.Background(), Request{FileKey: "k", Mode: "adaptive"})
	require.NoError(t, err)
	assert.Equal(t, "adaptive", resp.Mode)
	assert.Contains(t, resp.TestCases, "NAVIGATE TO PROFILE FROM MENU, CLICK_COORDS, 300, 400, SLEEP, 2, CHECK, PROFILE")
}

func TestGenerateAIFallsBackToAdaptive(t *testing.T) {
	els := []extract.Element{{Name: "Saved Recipes", Type: figma.TypeInstance, Coordinates: extract.Coordinates{X: 120, Y: 640}}}
	completer := &failingCompleter{}
	svc := New(Options{
		Source:    &fakeSource{result: &extract.Result{FileName: "F", Elements: els, TotalElements: 1}},
		Completer: completer,
	})

	resp, err := svc.Generate(context.Background(), Request{FileKey: "k", Mode: "ai", Instructions: "  be thorough "})
	require.NoError(t, err)

	want, _ := (&generator.Adaptive{}).Generate(context.Background(), els, "")
	assert.Equal(t, want, resp.TestCases)
	assert.Equal(t, "ai", resp.Mode)
	assert.Equal(t, generator.DefaultAttempts, completer.calls)
}

func TestGenerateUnknownModeUsesAI(t *testing.T) {
	completer := &failingCompleter{}
	svc := New(Options{Source: &fakeSource{result: &extract.Result{FileName: "F"}}, Completer: completer})

	resp, err := svc.Generate(context.Background(), Request{FileKey: "k", Mode: "smart"})
	require.NoError(t, err)
	assert.Equal(t, "smart", resp.Mode)
	assert.Equal(t, generator.DefaultAttempts, completer.calls)
}

func TestGenerateAIWithoutCompleter(t *testing.T) {
	svc := New(Options{Source: &fakeSource{result: &extract.Result{FileName: "F"}}})

	resp, err := svc.Generate(context.Background(), Request{FileKey: "k", Mode: "ai"})
	require.NoError(t, err)
	assert.Equal(t, strings.Join(generator.FixedLines(), "\n"), resp.TestCases)
}

func TestGenerateCapsEchoedElements(t *testing.T) {
	els := elements(14)
	svc := New(Options{Source: &fakeSource{result: &extract.Result{FileName: "F", Elements: els, TotalElements: 14}}})

	resp, err := svc.Generate(context.Background(), Request{FileKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, 14, resp.TotalElements)
	assert.Len(t, resp.Elements, 10)
}

func TestExtractWithFilter(t *testing.T) {
	els := []extract.Element{
		{Name: "menu btn", Type: figma.TypeInstance, Screen: "Home"},
		{Name: "Splash", Type: figma.TypeFrame, Screen: "Splash"},
	}
	svc := New(Options{Source: &fakeSource{result: &extract.Result{FileName: "F", Elements: els, TotalElements: 2}}})

	res, err := svc.Extract(context.Background(), "k", `screen == "Home"`)
	require.NoError(t, err)
	require.Len(t, res.Elements, 1)
	assert.Equal(t, "menu btn", res.Elements[0].Name)
	assert.Equal(t, 1, res.TotalElements)

	res, err = svc.Extract(context.Background(), "k", "")
	require.NoError(t, err)
	assert.Len(t, res.Elements, 2)

	_, err = svc.Extract(context.Background(), "k", "name +")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, StatusOf(err))

	_, err = svc.Extract(context.Background(), " ", "")
	assert.ErrorIs(t, err, ErrMissingFileKey)
}

func TestHealth(t *testing.T) {
	svc := New(Options{FigmaConfigured: true})
	assert.Equal(t, Health{Status: "healthy", FigmaConfigured: true, MistralConfigured: false}, svc.Health())
}

func TestStatusOfPlainError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("boom")))
}
