package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/halcyard/gantry/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	DB string
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "history",
		Short:         "List recorded pipeline generations",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DB, "db", "gantry.db", "generation store database path")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	s, err := store.Open(opts.DB)
	if err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return WrapExitError(ExitCommandError, "opening generation store", err)
	}
	defer s.Close()

	gens, err := s.List(context.Background())
	if err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return WrapExitError(ExitCommandError, "listing generations", err)
	}

	if formatter.Format == "json" {
		payload := make([]map[string]interface{}, len(gens))
		for i, g := range gens {
			payload[i] = map[string]interface{}{
				"id":           g.ID,
				"content_hash": g.ContentHash,
				"created_at":   g.CreatedAt,
				"jobs":         g.JobCount,
				"edges":        g.EdgeCount,
			}
		}
		return formatter.Success(payload)
	}

	if len(gens) == 0 {
		fmt.Fprintln(formatter.Writer, "no recorded generations")
		return nil
	}
	for _, g := range gens {
		fmt.Fprintf(formatter.Writer, "%s  %s  %3d job(s)  %3d edge(s)  %s\n",
			g.CreatedAt, g.ID, g.JobCount, g.EdgeCount, g.ContentHash[:12])
	}
	return nil
}
