package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/lex00/lambda-aurora-go/internal/graph"
)

func newGraphCmd(configPath *string) *cobra.Command {
	var (
		outputFormat  string
		clusterByType bool
	)

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Generate a graph of resource dependencies",
		Long: `Generate a DOT or Mermaid graph of the stack's resource dependencies.
Dashed edges are explicit DependsOn ordering.

The output can be rendered with Graphviz:
    lambda-aurora graph | dot -Tpng -o deps.png

Examples:
    lambda-aurora graph
    lambda-aurora graph -c              # cluster by service
    lambda-aurora graph -f mermaid      # mermaid format`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraph(cmd.OutOrStdout(), *configPath, outputFormat, clusterByType)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "dot", "Output format: dot or mermaid")
	cmd.Flags().BoolVarP(&clusterByType, "cluster", "c", false, "Cluster resources by AWS service")

	return cmd
}

func runGraph(w io.Writer, configPath, format string, cluster bool) error {
	var graphFormat graph.Format
	switch format {
	case "dot":
		graphFormat = graph.FormatDOT
	case "mermaid":
		graphFormat = graph.FormatMermaid
	default:
		return fmt.Errorf("unknown format: %s (use 'dot' or 'mermaid')", format)
	}

	s, err := loadStack(configPath)
	if err != nil {
		return err
	}

	nodes, err := s.Resolve()
	if err != nil {
		return err
	}

	gen := &graph.Generator{
		Format:        graphFormat,
		ClusterByType: cluster,
	}
	return gen.Generate(nodes, w)
}
