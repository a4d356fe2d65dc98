package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/lex00/lambda-aurora-go/internal/differ"
)

func newDiffCmd(configPath *string) *cobra.Command {
	var (
		outputFormat string
		ignoreOrder  bool
	)

	cmd := &cobra.Command{
		Use:   "diff <template> [template]",
		Short: "Compare templates resource by resource",
		Long: `Diff compares a template file against the synthesized stack, or two
template files against each other. JSON and YAML files are accepted.

Examples:
    lambda-aurora diff deployed.json
    lambda-aurora diff old.yaml new.yaml --ignore-order
    lambda-aurora diff deployed.json --config stg.yaml -f json`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(cmd.OutOrStdout(), *configPath, args, outputFormat, ignoreOrder)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&ignoreOrder, "ignore-order", false, "Ignore array element order")

	return cmd
}

func runDiff(w io.Writer, configPath string, files []string, format string, ignoreOrder bool) error {
	opts := differ.Options{IgnoreOrder: ignoreOrder}

	var (
		result *differ.Result
		err    error
	)
	if len(files) == 2 {
		result, err = differ.CompareFiles(files[0], files[1], opts)
	} else {
		result, err = diffAgainstStack(configPath, files[0], opts)
	}
	if err != nil {
		return err
	}

	switch format {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))

	case "text":
		if result.Empty() {
			fmt.Fprintln(w, "No differences.")
			return nil
		}
		for _, e := range result.Diff.Added {
			fmt.Fprintf(w, "+ %s (%s)\n", e.Resource, e.Type)
		}
		for _, e := range result.Diff.Removed {
			fmt.Fprintf(w, "- %s (%s)\n", e.Resource, e.Type)
		}
		for _, e := range result.Diff.Modified {
			fmt.Fprintf(w, "~ %s (%s)\n", e.Resource, e.Type)
			for _, c := range e.Changes {
				fmt.Fprintf(w, "    %s\n", c)
			}
		}
		fmt.Fprintf(w, "\n%d added, %d removed, %d modified\n",
			result.Summary.Added, result.Summary.Removed, result.Summary.Modified)

	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	return nil
}

// diffAgainstStack compares the template at path with the synthesized stack.
func diffAgainstStack(configPath, path string, opts differ.Options) (*differ.Result, error) {
	deployed, err := differ.LoadTemplate(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	s, err := loadStack(configPath)
	if err != nil {
		return nil, err
	}
	tmpl, err := s.Build()
	if err != nil {
		return nil, err
	}

	return differ.Compare(deployed, tmpl, opts)
}
