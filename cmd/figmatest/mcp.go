package main

import (
	"github.com/spf13/cobra"

	"github.com/ormasoftchile/figmatest/pkg/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server over stdio",
	Long: `Expose figma/generate, figma/extract and figma/validate as Model Context
Protocol tools. Logs go to stderr; stdout carries the protocol.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return mcp.ServeStdio(mcp.NewServer(version, newService()))
	},
}
