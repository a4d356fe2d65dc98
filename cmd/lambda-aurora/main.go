// Command lambda-aurora synthesizes the Lambda + RDS Proxy + Aurora
// PostgreSQL CloudFormation stack.
//
// Usage:
//
//	lambda-aurora synth -f yaml -o template.yaml   Generate the template
//	lambda-aurora list                             List resources in deploy order
//	lambda-aurora graph -f mermaid                 Dependency graph
//	lambda-aurora diff deployed.json               Compare with a template file
//	lambda-aurora validate                         Build and run cfn-lint
//	lambda-aurora optimize --category security     Best-practice suggestions
//	lambda-aurora statemachine SyncBounded         Print one ASL definition
//	lambda-aurora version                          Show version
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lex00/lambda-aurora-go/infra"
	"github.com/lex00/lambda-aurora-go/internal/stack"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "lambda-aurora",
		Short: "Synthesize the Lambda + Aurora PostgreSQL stack",
		Long: `lambda-aurora builds the CloudFormation template for a VPC with an Aurora
PostgreSQL cluster behind RDS Proxy, the Lambda functions that query it and
the fan-out state machines that drive them.

Settings come from built-in production defaults, overridden by a YAML file:

    lambda-aurora synth --config stg.yaml -f yaml`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Options YAML file (default: built-in options)")

	rootCmd.AddCommand(
		newSynthCmd(&configPath),
		newListCmd(&configPath),
		newGraphCmd(&configPath),
		newDiffCmd(&configPath),
		newValidateCmd(&configPath),
		newOptimizeCmd(&configPath),
		newStateMachineCmd(&configPath),
		newVersionCmd(),
	)

	return rootCmd
}

// loadOptions returns the defaults, or the defaults overridden by path.
func loadOptions(path string) (infra.Options, error) {
	if path == "" {
		return infra.DefaultOptions(), nil
	}
	return infra.LoadOptions(path)
}

// loadStack declares the stack for the options at path.
func loadStack(path string) (*stack.Stack, error) {
	opts, err := loadOptions(path)
	if err != nil {
		return nil, err
	}
	return infra.New(opts)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "lambda-aurora %s\n", getVersion())
		},
	}
}
