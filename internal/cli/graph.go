package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/halcyard/gantry/internal/pipeline"
)

// GraphOptions holds flags for the graph command.
type GraphOptions struct {
	*RootOptions
	Traits string
}

// NewGraphCommand creates the graph command.
func NewGraphCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GraphOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "graph",
		Short:         "Print the artifact dependency graph",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraph(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Traits, "traits", "", "directory of CUE trait overlays")

	return cmd
}

func runGraph(opts *GraphOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	reg, err := buildRegistry(opts.Traits, formatter)
	if err != nil {
		return err
	}

	p, err := pipeline.Generate(reg)
	if err != nil {
		return outputGenerationError(formatter, err)
	}

	if formatter.Format == "json" {
		return formatter.Success(p.Edges)
	}

	for _, e := range p.Edges {
		fmt.Fprintf(formatter.Writer, "%s -> %s [%s]\n", e.Producer, e.Consumer, e.Artifact)
	}
	return nil
}
