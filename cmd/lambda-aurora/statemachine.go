package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lex00/lambda-aurora-go/internal/asl"
)

func newStateMachineCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "statemachine [variant]",
		Short: "Print fan-out state machine definitions",
		Long: `Statemachine prints the Amazon States Language definition of a fan-out
variant. Function ARNs appear as ${...} placeholders that the template fills
through DefinitionSubstitutions.

Without a variant, the variant names are listed.

Examples:
    lambda-aurora statemachine
    lambda-aurora statemachine AsyncBounded`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			variant := ""
			if len(args) == 1 {
				variant = args[0]
			}
			return runStateMachine(cmd.OutOrStdout(), *configPath, variant)
		},
	}

	return cmd
}

func runStateMachine(w io.Writer, configPath, variant string) error {
	opts, err := loadOptions(configPath)
	if err != nil {
		return err
	}

	variants := asl.Variants(opts.MaxConcurrency)
	if variant == "" {
		for _, v := range variants {
			fmt.Fprintf(w, "%s\tinvocation=%s maxConcurrency=%d\n", v.Name, v.InvocationType, v.MaxConcurrency)
		}
		return nil
	}

	var names []string
	for _, v := range variants {
		if !strings.EqualFold(v.Name, variant) {
			names = append(names, v.Name)
			continue
		}

		def := asl.New(v, asl.Options{
			ItemNameFormat: opts.ItemNameFormat,
			TimeoutSeconds: opts.StateMachineTimeout,
		})
		if err := def.Validate(); err != nil {
			return err
		}
		data, err := def.JSON()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	return fmt.Errorf("unknown variant %q (choose from %s)", variant, strings.Join(names, ", "))
}
