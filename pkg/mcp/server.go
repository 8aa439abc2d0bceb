// Package mcp exposes figmatest operations as Model Context Protocol tools.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ormasoftchile/figmatest/pkg/extract"
	"github.com/ormasoftchile/figmatest/pkg/service"
)

// Backend is the part of service.Service the tools call.
type Backend interface {
	Generate(ctx context.Context, req service.Request) (*service.Response, error)
	Extract(ctx context.Context, fileKey, where string) (*extract.Result, error)
}

// Tools holds the tool handlers.
type Tools struct {
	Backend Backend
}

// NewServer creates an MCP server with the figmatest tools registered.
func NewServer(version string, backend Backend) *server.MCPServer {
	s := server.NewMCPServer(
		"figmatest",
		version,
		server.WithToolCapabilities(true),
	)
	t := &Tools{Backend: backend}

	s.AddTool(
		mcp.NewTool("figma/generate",
			mcp.WithDescription("Generate UI test steps for a Figma design file"),
			mcp.WithString("file_key", mcp.Required(), mcp.Description("Figma file key (from the file URL)")),
			mcp.WithString("mode", mcp.Description("Generation mode: fixed (default), adaptive, or ai")),
			mcp.WithString("instructions", mcp.Description("Extra instructions for ai mode")),
		),
		t.HandleGenerate,
	)

	s.AddTool(
		mcp.NewTool("figma/extract",
			mcp.WithDescription("List the interactive elements of a Figma design file"),
			mcp.WithString("file_key", mcp.Required(), mcp.Description("Figma file key (from the file URL)")),
			mcp.WithString("where", mcp.Description(`Filter expression, e.g. screen == "Home" && has_interaction`)),
		),
		t.HandleExtract,
	)

	s.AddTool(
		mcp.NewTool("figma/validate",
			mcp.WithDescription("Validate test step text, one step per line"),
			mcp.WithString("steps", mcp.Required(), mcp.Description("Newline-separated test steps")),
		),
		HandleValidate,
	)

	return s
}

// ServeStdio serves s on stdin/stdout until the client disconnects.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}
