package main

import (
	"github.com/spf13/cobra"

	"github.com/ormasoftchile/figmatest/pkg/shell"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive shell",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return shell.New(newService(), cfg.Generate.Mode).Run(cmd.Context())
	},
}
