package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ormasoftchile/figmatest/pkg/steps"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file|-]",
	Short: "Validate a test-step file against the step format",
	Long: `Check that every line is a well-formed step and that the step count is
within bounds. Reads stdin when the file is "-" or omitted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	name := "-"
	if len(args) == 1 {
		name = args[0]
	}

	var (
		data []byte
		err  error
	)
	if name == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
		name = "stdin"
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}

	return validateSteps(name, string(data), cmd.OutOrStdout(), cmd.ErrOrStderr())
}

func validateSteps(name, text string, stdout, stderr io.Writer) error {
	parsed, errs := steps.Validate(text)

	var failures []*steps.ValidationError
	for _, e := range errs {
		if e.Severity == "warning" {
			fmt.Fprintf(stderr, "  ⚠ %s\n", e.Error())
			continue
		}
		failures = append(failures, e)
	}

	if len(failures) > 0 {
		fmt.Fprintf(stderr, "Validation failed: %d error(s)\n\n", len(failures))
		for i, e := range failures {
			fmt.Fprintf(stderr, "  %d. %s\n", i+1, e.Error())
		}
		return fmt.Errorf("validation failed with %d error(s)", len(failures))
	}

	fmt.Fprintf(stdout, "✓ %s is valid (%d steps)\n", name, len(parsed))
	return nil
}
