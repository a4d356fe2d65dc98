// Package graph renders the resource dependency graph of a stack as DOT or
// Mermaid.
package graph

import (
	"io"
	"strings"

	"github.com/emicklei/dot"

	"github.com/lex00/lambda-aurora-go/internal/stack"
)

// Format specifies the output format for the graph.
type Format string

const (
	// FormatDOT outputs Graphviz DOT format.
	FormatDOT Format = "dot"
	// FormatMermaid outputs Mermaid format for GitHub/markdown rendering.
	FormatMermaid Format = "mermaid"
)

// Generator creates dependency graphs from resolved stack nodes.
type Generator struct {
	// Format specifies the output format (dot or mermaid). Defaults to dot.
	Format Format

	// ClusterByType groups resources by AWS service.
	ClusterByType bool
}

// Generate creates a dependency graph and writes it to w. Edges point from a
// resource to the resources it depends on.
func (g *Generator) Generate(nodes []stack.Node, w io.Writer) error {
	graph := g.buildGraph(nodes)

	var output string
	switch g.Format {
	case FormatMermaid:
		output = dot.MermaidGraph(graph, dot.MermaidTopToBottom)
	default:
		output = graph.String()
	}

	_, err := io.WriteString(w, output)
	return err
}

// GenerateString is a convenience method that returns the graph as a string.
func (g *Generator) GenerateString(nodes []stack.Node) (string, error) {
	var sb strings.Builder
	if err := g.Generate(nodes, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (g *Generator) buildGraph(nodes []stack.Node) *dot.Graph {
	graph := dot.NewGraph(dot.Directed)
	graph.Attr("rankdir", "TB")

	graph.NodeInitializer(func(n dot.Node) {
		n.Attr("shape", "box")
		n.Attr("fontname", "Arial")
	})
	graph.EdgeInitializer(func(e dot.Edge) {
		e.Attr("fontname", "Arial")
		e.Attr("fontsize", "10")
	})

	if g.ClusterByType {
		g.addClusteredNodes(graph, nodes)
	} else {
		for _, n := range nodes {
			graph.Node(n.Name).Label(label(n))
		}
	}

	known := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		known[n.Name] = true
	}

	for _, n := range nodes {
		explicit := make(map[string]bool, len(n.DependsOn))
		for _, dep := range n.DependsOn {
			explicit[dep] = true
		}
		for _, dep := range n.Dependencies {
			if !known[dep] {
				continue
			}
			e := graph.Edge(graph.Node(n.Name), graph.Node(dep))
			// Ordering-only edges carry no data.
			if explicit[dep] {
				e.Attr("style", "dashed")
			}
		}
	}

	return graph
}

// addClusteredNodes groups nodes by service. Services with a single
// resource are not clustered.
func (g *Generator) addClusteredNodes(graph *dot.Graph, nodes []stack.Node) {
	var services []string
	byService := make(map[string][]stack.Node)
	for _, n := range nodes {
		service := extractService(n.Type)
		if _, seen := byService[service]; !seen {
			services = append(services, service)
		}
		byService[service] = append(byService[service], n)
	}

	for _, service := range services {
		members := byService[service]
		if len(members) == 1 {
			graph.Node(members[0].Name).Label(label(members[0]))
			continue
		}

		cluster := graph.Subgraph("cluster_"+service, dot.ClusterOption{})
		cluster.Attr("label", service)
		cluster.Attr("style", "rounded")
		cluster.Attr("bgcolor", "lightyellow")
		for _, n := range members {
			cluster.Node(n.Name).Label(label(n))
		}
	}
}

func label(n stack.Node) string {
	return n.Name + "\\n[" + n.Type + "]"
}

// extractService returns the service of a CloudFormation type.
// e.g., "AWS::RDS::DBCluster" -> "RDS"
func extractService(cfType string) string {
	parts := strings.Split(cfType, "::")
	if len(parts) == 3 {
		return parts[1]
	}
	return "Other"
}
