// Package validation checks a stack before it is deployed.
//
// Two layers run in order:
//   - stack.Build: naming, dangling references, dependency cycles
//   - cfn-lint-go: CloudFormation schema and best-practice rules
package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lex00/cfn-lint-go/pkg/lint"

	lambdaaurora "github.com/lex00/lambda-aurora-go"
	"github.com/lex00/lambda-aurora-go/internal/stack"
)

// CfnLintResult contains the result of running cfn-lint.
type CfnLintResult struct {
	Passed        bool     `json:"passed"`
	Errors        []string `json:"errors"`
	Warnings      []string `json:"warnings"`
	Informational []string `json:"informational"`
}

// TotalIssues returns the total number of issues found.
func (r CfnLintResult) TotalIssues() int {
	return len(r.Errors) + len(r.Warnings) + len(r.Informational)
}

// RunCfnLint runs cfn-lint-go on the given template file.
func RunCfnLint(templatePath string) (*CfnLintResult, error) {
	if _, err := os.Stat(templatePath); err != nil {
		return &CfnLintResult{
			Passed: false,
			Errors: []string{fmt.Sprintf("Template file not found: %s", templatePath)},
		}, nil
	}

	linter := lint.New(lint.Options{})
	matches, err := linter.LintFile(templatePath)
	if err != nil {
		return nil, fmt.Errorf("linting %s: %w", templatePath, err)
	}

	result := &CfnLintResult{
		Errors:        []string{},
		Warnings:      []string{},
		Informational: []string{},
	}

	for _, match := range matches {
		formatted := formatMatch(match)

		switch match.Level {
		case "Error":
			result.Errors = append(result.Errors, formatted)
		case "Warning":
			result.Warnings = append(result.Warnings, formatted)
		default:
			result.Informational = append(result.Informational, formatted)
		}
	}

	// Warnings are acceptable.
	result.Passed = len(result.Errors) == 0

	return result, nil
}

// LintTemplate writes tmpl to a temporary JSON file and lints it.
func LintTemplate(tmpl *lambdaaurora.Template) (*CfnLintResult, error) {
	data, err := stack.ToJSON(tmpl)
	if err != nil {
		return nil, err
	}

	dir, err := os.MkdirTemp("", "lambda-aurora-lint-")
	if err != nil {
		return nil, fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "template.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("writing template: %w", err)
	}

	return RunCfnLint(path)
}

// Validate builds s and lints the resulting template. Build errors are
// reported one per entry and skip linting.
func Validate(s *stack.Stack) (lambdaaurora.ValidateResult, error) {
	result := lambdaaurora.ValidateResult{Resources: s.Len()}

	tmpl, err := s.Build()
	if err != nil {
		result.Errors = splitErrors(err)
		return result, nil
	}

	lintResult, err := LintTemplate(tmpl)
	if err != nil {
		return result, err
	}

	result.Errors = append(result.Errors, lintResult.Errors...)
	result.Warnings = append(result.Warnings, lintResult.Warnings...)
	result.Success = lintResult.Passed
	return result, nil
}

// splitErrors flattens an errors.Join tree into messages.
func splitErrors(err error) []string {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var msgs []string
		for _, e := range joined.Unwrap() {
			msgs = append(msgs, splitErrors(e)...)
		}
		return msgs
	}
	var msgs []string
	for _, line := range strings.Split(err.Error(), "\n") {
		if line != "" {
			msgs = append(msgs, line)
		}
	}
	return msgs
}

// formatMatch formats a cfn-lint-go match for display.
func formatMatch(match lint.Match) string {
	if len(match.Location.Path) == 0 {
		return fmt.Sprintf("%s: %s", match.Rule.ID, match.Message)
	}

	parts := make([]string, len(match.Location.Path))
	for i, p := range match.Location.Path {
		parts[i] = fmt.Sprint(p)
	}
	return fmt.Sprintf("%s: %s (at %s)", match.Rule.ID, match.Message, strings.Join(parts, "/"))
}
