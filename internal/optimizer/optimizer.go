// Package optimizer suggests best-practice improvements for a resolved stack.
// It checks resources for security, cost, performance, and reliability issues.
package optimizer

import (
	"fmt"

	lambdaaurora "github.com/lex00/lambda-aurora-go"
	"github.com/lex00/lambda-aurora-go/internal/stack"
)

// Categories lists the valid category filters in report order.
var Categories = []string{"security", "cost", "performance", "reliability"}

// Options configures the optimizer.
type Options struct {
	// Category filters suggestions: "all", "security", "cost", "performance", "reliability"
	Category string
}

// Result contains optimization suggestions.
type Result struct {
	Suggestions []lambdaaurora.OptimizeSuggestion
	Summary     lambdaaurora.OptimizeSummary
}

// ValidCategory reports whether category is "all" or one of Categories.
func ValidCategory(category string) bool {
	if category == "" || category == "all" {
		return true
	}
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Optimize applies the rules to every node. Suggestions follow node order.
func Optimize(nodes []stack.Node, opts Options) (*Result, error) {
	if !ValidCategory(opts.Category) {
		return nil, fmt.Errorf("invalid category: %s", opts.Category)
	}

	ix := make(index, len(nodes))
	for _, n := range nodes {
		ix[n.Name] = n
	}

	result := &Result{}
	for _, n := range nodes {
		result.Suggestions = append(result.Suggestions, analyzeNode(n, ix, opts.Category)...)
	}
	result.Summary = calculateSummary(result.Suggestions)

	return result, nil
}

// OptimizeStack resolves s and analyzes the result.
func OptimizeStack(s *stack.Stack, opts Options) (lambdaaurora.OptimizeResult, error) {
	nodes, err := s.Resolve()
	if err != nil {
		return lambdaaurora.OptimizeResult{}, err
	}
	res, err := Optimize(nodes, opts)
	if err != nil {
		return lambdaaurora.OptimizeResult{}, err
	}
	return lambdaaurora.OptimizeResult{
		Success:       true,
		Suggestions:   res.Suggestions,
		ResourceCount: len(nodes),
		Summary:       res.Summary,
	}, nil
}

func analyzeNode(n stack.Node, ix index, category string) []lambdaaurora.OptimizeSuggestion {
	var suggestions []lambdaaurora.OptimizeSuggestion
	for _, rule := range rulesByType[n.Type] {
		if category != "" && category != "all" && rule.Category != category {
			continue
		}
		if !rule.Check(n, ix) {
			continue
		}
		suggestions = append(suggestions, lambdaaurora.OptimizeSuggestion{
			Rule:        rule.ID,
			Resource:    n.Name,
			Type:        n.Type,
			Category:    rule.Category,
			Severity:    rule.Severity,
			Title:       rule.Title,
			Description: rule.Description,
			Suggestion:  rule.Suggestion,
		})
	}
	return suggestions
}

// calculateSummary tallies suggestions by category.
func calculateSummary(suggestions []lambdaaurora.OptimizeSuggestion) lambdaaurora.OptimizeSummary {
	summary := lambdaaurora.OptimizeSummary{}
	for _, s := range suggestions {
		switch s.Category {
		case "security":
			summary.Security++
		case "cost":
			summary.Cost++
		case "performance":
			summary.Performance++
		case "reliability":
			summary.Reliability++
		}
		summary.Total++
	}
	return summary
}

// index maps logical names to resolved nodes.
type index map[string]stack.Node

// Rule represents an optimization rule. Check returns true when the
// resource should be flagged.
type Rule struct {
	ID          string
	Category    string
	Severity    string
	Title       string
	Description string
	Suggestion  string
	Check       func(n stack.Node, ix index) bool
}
