package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/lex00/lambda-aurora-go/internal/validation"
)

func newValidateCmd(configPath *string) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Build the stack and lint the template",
		Long: `Validate builds the stack and runs cfn-lint on the template.

Checks performed:
  - Logical names: unique and alphanumeric
  - References: every Ref, GetAtt and Sub names a declared resource
  - Dependency graph: no cycles
  - cfn-lint rules on the generated template

Examples:
    lambda-aurora validate
    lambda-aurora validate --config stg.yaml --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.OutOrStdout(), *configPath, outputFormat)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text or json")

	return cmd
}

func runValidate(w io.Writer, configPath, format string) error {
	if format != "text" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}

	s, err := loadStack(configPath)
	if err != nil {
		return err
	}

	result, err := validation.Validate(s)
	if err != nil {
		return err
	}

	if format == "json" {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))
	} else {
		for _, e := range result.Errors {
			fmt.Fprintf(w, "error: %s\n", e)
		}
		for _, warn := range result.Warnings {
			fmt.Fprintf(w, "warning: %s\n", warn)
		}
		if result.Success {
			fmt.Fprintf(w, "✓ %d resources validated\n", result.Resources)
		}
	}

	if !result.Success {
		return fmt.Errorf("validation failed with %d errors", len(result.Errors))
	}
	return nil
}
