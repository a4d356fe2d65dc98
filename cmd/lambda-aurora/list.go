package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	lambdaaurora "github.com/lex00/lambda-aurora-go"
)

func newListCmd(configPath *string) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List resources in deployment order",
		Long: `List shows every resource of the stack, dependencies first.

Examples:
    lambda-aurora list
    lambda-aurora list --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd.OutOrStdout(), *configPath, outputFormat)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text or json")

	return cmd
}

func runList(w io.Writer, configPath, format string) error {
	s, err := loadStack(configPath)
	if err != nil {
		return err
	}

	nodes, err := s.Resolve()
	if err != nil {
		return err
	}

	listResult := lambdaaurora.ListResult{
		Resources: make([]lambdaaurora.ListResource, 0, len(nodes)),
	}
	for _, n := range nodes {
		listResult.Resources = append(listResult.Resources, lambdaaurora.ListResource{
			Name:      n.Name,
			Type:      n.Type,
			DependsOn: n.Dependencies,
		})
	}

	switch format {
	case "json":
		data, err := json.MarshalIndent(listResult, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))

	case "text":
		fmt.Fprintf(w, "Resources (%d):\n\n", len(listResult.Resources))
		for _, res := range listResult.Resources {
			fmt.Fprintf(w, "  %s: %s\n", res.Name, res.Type)
		}

	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	return nil
}
