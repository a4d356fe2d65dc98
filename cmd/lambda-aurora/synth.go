package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	lambdaaurora "github.com/lex00/lambda-aurora-go"
	"github.com/lex00/lambda-aurora-go/internal/stack"
)

func newSynthCmd(configPath *string) *cobra.Command {
	var (
		outputFormat string
		outputFile   string
	)

	cmd := &cobra.Command{
		Use:   "synth",
		Short: "Generate the CloudFormation template",
		Long: `Synth builds the stack and writes the CloudFormation template.

The result format wraps the template in a JSON object with the resource
names and any build errors, for tools that drive the CLI.

Examples:
    lambda-aurora synth
    lambda-aurora synth -o template.json
    lambda-aurora synth --format yaml --config stg.yaml
    lambda-aurora synth --format result`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSynth(cmd.OutOrStdout(), *configPath, outputFormat, outputFile)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "Output format: json, yaml or result")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

func runSynth(w io.Writer, configPath, format, outputFile string) error {
	switch format {
	case "json", "yaml", "result":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	result := synthesize(configPath)

	var (
		data []byte
		err  error
	)
	switch {
	case format == "result":
		data, err = json.MarshalIndent(result, "", "  ")
	case !result.Success:
		for _, e := range result.Errors {
			fmt.Fprintln(os.Stderr, e)
		}
		return fmt.Errorf("build failed")
	case format == "yaml":
		data, err = stack.ToYAML(&result.Template)
	default:
		data, err = stack.ToJSON(&result.Template)
	}
	if err != nil {
		return err
	}

	if outputFile == "" {
		_, err = fmt.Fprintln(w, string(data))
	} else {
		err = os.WriteFile(outputFile, data, 0o644)
	}
	if err != nil {
		return err
	}

	if !result.Success {
		return fmt.Errorf("build failed")
	}
	return nil
}

// synthesize builds the stack, reporting failures in the result.
func synthesize(configPath string) lambdaaurora.BuildResult {
	s, err := loadStack(configPath)
	if err != nil {
		return lambdaaurora.BuildResult{Errors: []string{err.Error()}}
	}

	tmpl, err := s.Build()
	if err != nil {
		return lambdaaurora.BuildResult{Errors: []string{err.Error()}}
	}

	return lambdaaurora.BuildResult{
		Success:   true,
		Template:  *tmpl,
		Resources: s.Names(),
	}
}
