package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ormasoftchile/figmatest/pkg/render"
	"github.com/ormasoftchile/figmatest/pkg/service"
)

var (
	generateMode         string
	generateInstructions string
	generateJSON         bool
	generateMarkdown     bool
)

var generateCmd = &cobra.Command{
	Use:   "generate <file_key>",
	Short: "Generate UI test steps for a design file",
	Long: `Fetch the design file, extract its interactive elements and print test steps.

Modes:
  fixed     the built-in eight-step script (default)
  adaptive  steps built from the extracted elements
  ai        steps generated by Mistral, falling back to adaptive`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	mode := generateMode
	if mode == "" {
		mode = cfg.Generate.Mode
	}

	resp, err := newService().Generate(cmd.Context(), service.Request{
		FileKey:      args[0],
		Mode:         mode,
		Instructions: generateInstructions,
	})
	if err != nil {
		return err
	}

	switch {
	case generateJSON:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	case generateMarkdown:
		fmt.Println(render.Pretty(render.Markdown(resp)))
		return nil
	default:
		fmt.Fprintf(os.Stderr, "%s: %d interactive elements (mode %s)\n", resp.FileName, resp.TotalElements, resp.Mode)
		return render.Steps(os.Stdout, resp.TestCases)
	}
}

func init() {
	generateCmd.Flags().StringVar(&generateMode, "mode", "", "Generation mode: fixed, adaptive, or ai (default from config)")
	generateCmd.Flags().StringVar(&generateInstructions, "instructions", "", "Extra instructions passed to ai mode")
	generateCmd.Flags().BoolVar(&generateJSON, "json", false, "Output the response as JSON")
	generateCmd.Flags().BoolVar(&generateMarkdown, "markdown", false, "Output a rendered markdown report")
	generateCmd.MarkFlagsMutuallyExclusive("json", "markdown")
}
