package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ormasoftchile/figmatest/pkg/render"
)

var (
	extractWhere string
	extractJSON  bool
)

var extractCmd = &cobra.Command{
	Use:   "extract <file_key>",
	Short: "List the interactive elements of a design file",
	Long: `Fetch the design file and list its interactive elements.

--where narrows the list with a boolean expression over the element fields
name, type, screen, x, y, has_interaction and has_text, for example:

  figmatest extract KEY --where 'has_interaction && screen == "Home"'`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	result, err := newService().Extract(cmd.Context(), args[0], extractWhere)
	if err != nil {
		return err
	}

	if extractJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Fprintf(os.Stderr, "%s: %d interactive elements\n", result.FileName, result.TotalElements)
	return render.Elements(os.Stdout, result.Elements)
}

func init() {
	extractCmd.Flags().StringVar(&extractWhere, "where", "", "Filter expression over element fields")
	extractCmd.Flags().BoolVar(&extractJSON, "json", false, "Output as JSON")
}
