package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ormasoftchile/figmatest/pkg/config"
	"github.com/ormasoftchile/figmatest/pkg/generator"
)

const homeFileJSON = `{
	"name": "Recipe App",
	"document": {
		"name": "Document", "type": "DOCUMENT",
		"children": [{
			"name": "Page 1", "type": "CANVAS",
			"children": [{
				"name": "Home", "type": "FRAME",
				"absoluteBoundingBox": {"x": 0, "y": 0, "width": 375, "height": 812},
				"children": [
					{"name": "menu btn", "type": "INSTANCE", "absoluteBoundingBox": {"x": 26, "y": 32, "width": 24, "height": 24}},
					{"name": "Saved Recipes", "type": "INSTANCE", "absoluteBoundingBox": {"x": 40, "y": 300, "width": 200, "height": 40}}
				]
			}]
		}]
	}
}`

// End to end through the real clients: every completion attempt gets a 500,
// so the response carries the adaptive sequence.
func TestFromConfigAIFallbackEndToEnd(t *testing.T) {
	figmaSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/files/file-key", r.URL.Path)
		assert.Equal(t, "figd_token", r.Header.Get("X-Figma-Token"))
		w.Write([]byte(homeFileJSON))
	}))
	defer figmaSrv.Close()

	var completions atomic.Int32
	mistralSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		completions.Add(1)
		http.Error(w, "internal", http.StatusInternalServerError)
	}))
	defer mistralSrv.Close()

	cfg := config.Default()
	cfg.Figma.BaseURL = figmaSrv.URL
	cfg.Figma.Token = "figd_token"
	cfg.Mistral.BaseURL = mistralSrv.URL
	cfg.Mistral.APIKey = "key"

	svc := FromConfig(cfg, nil)
	resp, err := svc.Generate(context.Background(), Request{FileKey: "file-key", Mode: "ai"})
	require.NoError(t, err)

	assert.Equal(t, "Recipe App", resp.FileName)
	require.NotEmpty(t, resp.Elements)
	want, _ := (&generator.Adaptive{}).Generate(context.Background(), resp.Elements, "")
	assert.Equal(t, want, resp.TestCases)
	assert.Equal(t, int32(3), completions.Load())

	assert.Equal(t, Health{Status: "healthy", FigmaConfigured: true, MistralConfigured: true}, svc.Health())
}

func TestFromConfigFigmaFailure(t *testing.T) {
	figmaSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Invalid token", http.StatusForbidden)
	}))
	defer figmaSrv.Close()

	cfg := config.Default()
	cfg.Figma.BaseURL = figmaSrv.URL
	cfg.Figma.Token = config.PlaceholderFigmaToken

	svc := FromConfig(cfg, nil)
	_, err := svc.Generate(context.Background(), Request{FileKey: "k"})
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, StatusOf(err))
	assert.Contains(t, err.Error(), "Generation failed: Failed to extract Figma elements: Figma API error: 403")
	assert.False(t, svc.Health().FigmaConfigured)
}
