package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/halcyard/gantry/internal/pipeline"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	Traits string
}

// ValidationReport is the success payload for the validate command.
type ValidationReport struct {
	Jobs      int    `json:"jobs"`
	Edges     int    `json:"edges"`
	Artifacts int    `json:"artifacts"`
	Hash      string `json:"hash"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Run generation and report errors without emitting a descriptor",
		Long: `Run the full generation and report composition, configuration and
dependency-resolution errors. Nothing is emitted; exit code 1 signals an
invalid matrix, exit code 2 a command problem.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Traits, "traits", "", "directory of CUE trait overlays")

	return cmd
}

func runValidate(opts *ValidateOptions, cmd *cobra.Command) error {
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

	hash, err := p.Hash()
	if err != nil {
		_ = formatter.Error(ErrCodeGenerate, err.Error(), nil)
		return WrapExitError(ExitCommandError, "hashing pipeline", err)
	}

	artifacts := make(map[string]bool)
	for _, j := range p.Jobs {
		for _, pub := range j.Publishes {
			artifacts[pub.Name] = true
		}
	}

	report := ValidationReport{
		Jobs:      len(p.Jobs),
		Edges:     len(p.Edges),
		Artifacts: len(artifacts),
		Hash:      hash,
	}

	if formatter.Format == "json" {
		return formatter.Success(report)
	}

	fmt.Fprintf(formatter.Writer, "✓ Pipeline valid: %d job(s), %d edge(s), %d artifact(s)\n",
		report.Jobs, report.Edges, report.Artifacts)
	fmt.Fprintf(formatter.Writer, "  content hash %s\n", report.Hash)
	return nil
}
