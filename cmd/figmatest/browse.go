package main

import (
	"github.com/spf13/cobra"

	"github.com/ormasoftchile/figmatest/pkg/service"
	"github.com/ormasoftchile/figmatest/pkg/tui"
)

var (
	browseMode         string
	browseInstructions string
)

var browseCmd = &cobra.Command{
	Use:   "browse <file_key>",
	Short: "Browse extracted elements and generated steps in a terminal UI",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode := browseMode
		if mode == "" {
			mode = cfg.Generate.Mode
		}
		return tui.Run(cmd.Context(), newService(), service.Request{
			FileKey:      args[0],
			Mode:         mode,
			Instructions: browseInstructions,
		})
	},
}

func init() {
	browseCmd.Flags().StringVar(&browseMode, "mode", "", "Generation mode: fixed, adaptive, or ai (default from config)")
	browseCmd.Flags().StringVar(&browseInstructions, "instructions", "", "Extra instructions passed to ai mode")
}
