package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ormasoftchile/figmatest/pkg/service"
	"github.com/ormasoftchile/figmatest/pkg/steps"
)

// HandleGenerate implements the figma/generate MCP tool.
func (t *Tools) HandleGenerate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	key, _ := args["file_key"].(string)
	if strings.TrimSpace(key) == "" {
		return errorResult("file_key argument is required"), nil
	}
	mode, _ := args["mode"].(string)
	instructions, _ := args["instructions"].(string)

	resp, err := t.Backend.Generate(ctx, service.Request{FileKey: key, Mode: mode, Instructions: instructions})
	if err != nil {
		return errorResult(err.Error()), nil
	}
	return jsonResult(resp)
}

// HandleExtract implements the figma/extract MCP tool.
func (t *Tools) HandleExtract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	key, _ := args["file_key"].(string)
	if strings.TrimSpace(key) == "" {
		return errorResult("file_key argument is required"), nil
	}
	where, _ := args["where"].(string)

	result, err := t.Backend.Extract(ctx, key, where)
	if err != nil {
		return errorResult(err.Error()), nil
	}
	return jsonResult(result)
}

// HandleValidate implements the figma/validate MCP tool.
func HandleValidate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	text, _ := args["steps"].(string)
	if strings.TrimSpace(text) == "" {
		return errorResult("steps argument is required"), nil
	}

	parsed, errs := steps.Validate(text)
	if steps.HasErrors(errs) {
		return errorResult(formatErrors(errs)), nil
	}
	msg := fmt.Sprintf("✓ %d steps are valid", len(parsed))
	if len(errs) > 0 {
		msg += "\n" + formatErrors(errs)
	}
	return textResult(msg), nil
}

func formatErrors(errs []*steps.ValidationError) string {
	var b strings.Builder
	for _, e := range errs {
		fmt.Fprintf(&b, "%s: %s\n", e.Severity, e.Error())
	}
	return strings.TrimRight(b.String(), "\n")
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult(fmt.Sprintf("marshal result: %v", err)), nil
	}
	return textResult(string(data)), nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

func errorResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(msg),
		},
		IsError: true,
	}
}
