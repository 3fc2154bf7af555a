package commands

import (
	"github.com/spf13/cobra"
)

// HistoryOptions holds options for the history command.
type HistoryOptions struct {
	Limit  int
	Format string
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand() *cobra.Command {
	opts := &HistoryOptions{}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded analysis runs",
		Long: `List past analysis runs from the local run-history database, newest
first. Runs are recorded automatically unless run is invoked with
--no-history.`,
		Example: `  # Show the last 20 runs
  reciprocal history

  # Show the last 5 runs as JSON
  reciprocal history --limit 5 -f json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHistory(cmd, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 20, "Maximum number of runs to show")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: table, csv, json")

	return cmd
}

func runHistory(cmd *cobra.Command, opts *HistoryOptions) error {
	cmdCtx := NewCommandContext(cmd)
	cfg, logger := cmdCtx.Cfg, cmdCtx.Logger

	store, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.ListRuns(opts.Limit)
	if err != nil {
		return err
	}

	format := opts.Format
	if format == "" {
		format = cfg.OutputFormat
	}
	return renderRuns(cmd.OutOrStdout(), runs, format)
}
