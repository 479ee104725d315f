package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/halcyard/gantry/internal/job"
	"github.com/halcyard/gantry/internal/pipeline"
	"github.com/halcyard/gantry/internal/store"
	"github.com/halcyard/gantry/internal/trait"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	Traits string // CUE overlay directory
	Output string // output file path
	Record bool   // record the generation in the store
	DB     string // store database path
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the full CI pipeline descriptor",
		Long: `Generate the full CI pipeline descriptor.

Composes the trait registry (optionally overlaid with CUE files) across the
default build matrix, resolves the artifact dependency graph, and emits the
validated descriptor. JSON output is canonical: repeated runs from the same
registry are byte-identical.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Traits, "traits", "", "directory of CUE trait overlays")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path (default stdout)")
	cmd.Flags().BoolVar(&opts.Record, "record", false, "record the generation in the store")
	cmd.Flags().StringVar(&opts.DB, "db", "gantry.db", "generation store database path")

	return cmd
}

func runGenerate(opts *GenerateOptions, cmd *cobra.Command) error {
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
	formatter.VerboseLog("Generated %d job(s), %d dependency edge(s)", len(p.Jobs), len(p.Edges))

	descriptor, err := encodePipeline(p, opts.Format)
	if err != nil {
		_ = formatter.Error(ErrCodeGenerate, err.Error(), nil)
		return WrapExitError(ExitCommandError, "encoding pipeline", err)
	}

	if opts.Record {
		gen, err := recordGeneration(opts.DB, p)
		if err != nil {
			_ = formatter.Error(ErrCodeStore, err.Error(), nil)
			return WrapExitError(ExitCommandError, "recording generation", err)
		}
		formatter.VerboseLog("Recorded generation %s (hash %s)", gen.ID, gen.ContentHash)
	}

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, descriptor, 0644); err != nil {
			_ = formatter.Error(ErrCodeWriteFailed, fmt.Sprintf("writing output file: %v", err), nil)
			return WrapExitError(ExitCommandError, "writing output file", err)
		}
		fmt.Fprintf(formatter.Writer, "Wrote pipeline descriptor to %s\n", opts.Output)
		return nil
	}

	_, err = formatter.Writer.Write(descriptor)
	return err
}

// encodePipeline renders the descriptor per format: canonical JSON, YAML, or
// a human-readable summary.
func encodePipeline(p *pipeline.Pipeline, format string) ([]byte, error) {
	switch format {
	case "yaml":
		return yaml.Marshal(p)
	case "text":
		return summarize(p), nil
	default:
		data, err := p.MarshalCanonical()
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}
}

// summarize renders a short per-job listing for the text format.
func summarize(p *pipeline.Pipeline) []byte {
	var out []byte
	out = append(out, fmt.Sprintf("%d job(s), %d dependency edge(s)\n", len(p.Jobs), len(p.Edges))...)
	for _, j := range p.Jobs {
		out = append(out, fmt.Sprintf("  %-40s %s  %s\n", j.Name, j.TimeLimit, j.DiskSpace)...)
		for _, dep := range p.Dependencies(j.Name) {
			out = append(out, fmt.Sprintf("    needs %s from %s\n", dep.Artifact, dep.Producer)...)
		}
	}
	return out
}

// buildRegistry returns the default registry, overlaid if a CUE directory
// was supplied.
func buildRegistry(traitsDir string, formatter *OutputFormatter) (*trait.Registry, error) {
	reg := trait.Default()
	if traitsDir == "" {
		return reg, nil
	}

	set, err := LoadOverrides(traitsDir)
	if err != nil {
		code := ErrCodeLoadFailed
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			code = loadErr.Code
		}
		_ = formatter.Error(code, err.Error(), nil)
		return nil, WrapExitError(ExitCommandError, "loading trait overlays", err)
	}
	formatter.VerboseLog("Loaded %d trait overlay(s) from %s", len(set.Overrides), traitsDir)

	applied, err := reg.Apply(set)
	if err != nil {
		_ = formatter.Error(ErrCodeBuildFailed, err.Error(), nil)
		return nil, WrapExitError(ExitCommandError, "applying trait overlays", err)
	}
	return applied, nil
}

// outputGenerationError reports a generation failure with its taxonomy code
// and maps it to the generation-failure exit code.
func outputGenerationError(formatter *OutputFormatter, err error) error {
	code, details := classifyGenerationError(err)
	_ = formatter.Error(code, err.Error(), details)
	return WrapExitError(ExitFailure, "pipeline generation failed", err)
}

// classifyGenerationError maps the generation error taxonomy onto CLI error
// codes and structured details.
func classifyGenerationError(err error) (string, interface{}) {
	var compErr *trait.CompositionError
	if errors.As(err, &compErr) {
		return "COMPOSITION_ERROR", map[string]interface{}{
			"field":  compErr.Field,
			"traits": compErr.Traits,
		}
	}

	var resErr *pipeline.ResolveError
	if errors.As(err, &resErr) {
		return string(resErr.Code), map[string]interface{}{
			"artifact": resErr.Artifact,
			"jobs":     resErr.Jobs,
		}
	}

	var cfgErr *job.ConfigurationError
	if errors.As(err, &cfgErr) {
		return "CONFIGURATION_ERROR", map[string]interface{}{
			"kind":  string(cfgErr.Kind),
			"field": cfgErr.Field,
		}
	}

	return ErrCodeGenerate, nil
}

// recordGeneration opens the store, records the pipeline, and closes it.
func recordGeneration(dbPath string, p *pipeline.Pipeline) (store.Generation, error) {
	s, err := store.Open(dbPath)
	if err != nil {
		return store.Generation{}, err
	}
	defer s.Close()
	return s.Record(context.Background(), p)
}
