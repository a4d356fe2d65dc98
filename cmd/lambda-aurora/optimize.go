package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	lambdaaurora "github.com/lex00/lambda-aurora-go"
	"github.com/lex00/lambda-aurora-go/internal/optimizer"
)

func newOptimizeCmd(configPath *string) *cobra.Command {
	var (
		outputFormat string
		category     string
	)

	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Suggest best-practice improvements",
		Long: `Optimize builds the stack and suggests improvements for security, cost,
performance, and reliability.

Categories:
    security     - Encryption, TLS, public exposure, secret rotation
    cost         - Log retention, function memory
    performance  - Enhanced monitoring, Performance Insights
    reliability  - Deletion protection, backups, tracing, execution logs

Examples:
    lambda-aurora optimize
    lambda-aurora optimize --category security
    lambda-aurora optimize --config stg.yaml -f json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !optimizer.ValidCategory(category) {
				return fmt.Errorf("invalid category: %s (valid: all, %s)", category, strings.Join(optimizer.Categories, ", "))
			}
			return runOptimize(cmd.OutOrStdout(), *configPath, outputFormat, category)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text or json")
	cmd.Flags().StringVar(&category, "category", "all", "Category: all, security, cost, performance, or reliability")

	return cmd
}

func runOptimize(w io.Writer, configPath, format, category string) error {
	if format != "text" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}

	s, err := loadStack(configPath)
	if err != nil {
		return err
	}

	result, err := optimizer.OptimizeStack(s, optimizer.Options{Category: category})
	if err != nil {
		return fmt.Errorf("optimize failed: %w", err)
	}

	if format == "json" {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))
		return nil
	}

	writeOptimizeText(w, result)
	return nil
}

func writeOptimizeText(w io.Writer, result lambdaaurora.OptimizeResult) {
	if len(result.Suggestions) == 0 {
		fmt.Fprintf(w, "Analyzed %d resources. No optimization suggestions.\n", result.ResourceCount)
		return
	}

	fmt.Fprintf(w, "Analyzed %d resources. Found %d suggestions:\n\n", result.ResourceCount, result.Summary.Total)

	byCat := map[string][]lambdaaurora.OptimizeSuggestion{}
	for _, s := range result.Suggestions {
		byCat[s.Category] = append(byCat[s.Category], s)
	}

	for _, cat := range optimizer.Categories {
		suggestions := byCat[cat]
		if len(suggestions) == 0 {
			continue
		}

		fmt.Fprintf(w, "=== %s (%d) ===\n", capitalize(cat), len(suggestions))
		for _, s := range suggestions {
			fmt.Fprintf(w, "\n[%s] %s (%s)\n", s.Severity, s.Title, s.Rule)
			fmt.Fprintf(w, "  Resource: %s (%s)\n", s.Resource, s.Type)
			fmt.Fprintf(w, "  %s\n", s.Description)
			fmt.Fprintf(w, "  Suggestion: %s\n", s.Suggestion)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Summary: %d security, %d cost, %d performance, %d reliability\n",
		result.Summary.Security, result.Summary.Cost,
		result.Summary.Performance, result.Summary.Reliability)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
