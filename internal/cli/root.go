// Package cli implements the gantry command line: pipeline generation,
// validation, dependency-graph inspection and generation history.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "yaml" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"json", "yaml", "text"}

// NewRootCommand creates the root command for the gantry CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "gantry",
		Short: "gantry - CI build-matrix and pipeline generator",
		Long: "Generates the multi-platform CI job matrix: composes trait fragments into\n" +
			"concrete jobs, infers the artifact dependency graph, and emits a validated\n" +
			"pipeline descriptor for the CI engine.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "json", "output format (json|yaml|text)")

	cmd.AddCommand(NewGenerateCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewGraphCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
