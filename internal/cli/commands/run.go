package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/PiotrDra/Reciprocal-RELION-3D-Classification-Analysis/internal/analysis"
	"github.com/PiotrDra/Reciprocal-RELION-3D-Classification-Analysis/internal/state"
)

// RunOptions holds options for the run command.
type RunOptions struct {
	Jobs           string
	SkipStars      bool
	PerClassOptics bool
	FlowWeight     string
	NoHistory      bool
}

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	opts := &RunOptions{}

	cmd := &cobra.Command{
		Use:   "run [jobs...]",
		Short: "Run the full reciprocal analysis over two or more jobs",
		Long: `Locate each job's final-iteration star file, split its particles by
class, intersect every cross-job class pair, and write per-class star
files, count and fraction matrices, intersection star files, and the
sankey flow table under the output directory.`,
		Example: `  # Compare jobs 85 and 86
  reciprocal run --relion-dir /data/project 85 86

  # Same jobs as a comma-separated flag
  reciprocal run --relion-dir /data/project --jobs 85,86

  # Matrices only, no star emission
  reciprocal run --relion-dir /data/project 85 86 --skip-stars`,
		Aliases: []string{"analyze"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Jobs, "jobs", "j", "", "Comma-separated job numbers")
	cmd.Flags().BoolVar(&opts.SkipStars, "skip-stars", false, "Skip intersection star emission")
	cmd.Flags().BoolVar(&opts.PerClassOptics, "per-class-optics", false, "Copy optics into per-class star files too")
	cmd.Flags().StringVar(&opts.FlowWeight, "flow-weight", "count", "Flow table weight (count|fraction)")
	cmd.Flags().BoolVar(&opts.NoHistory, "no-history", false, "Do not record this run in the history database")

	return cmd
}

func runRun(cmd *cobra.Command, args []string, opts *RunOptions) error {
	cmdCtx := NewCommandContext(cmd)
	cfg, logger := cmdCtx.Cfg, cmdCtx.Logger

	jobs, err := parseJobs(args, opts.Jobs)
	if err != nil {
		return err
	}
	if err := requireRelionDir(cfg); err != nil {
		return err
	}

	start := time.Now()

	// History recording is best effort: an unopenable state database must
	// not stop a batch analysis.
	var store *state.SQLiteStore
	var runID string
	if !opts.NoHistory {
		store, err = openStore(cfg, logger)
		if err != nil {
			logger.Warn("run history disabled", "error", err)
			store = nil
		} else {
			defer store.Close()
			if rec, err := store.CreateRun(jobLabels(jobs), cfg.OutDir); err != nil {
				logger.Warn("failed to record run", "error", err)
			} else {
				runID = rec.ID
			}
		}
	}

	pcfg := pipelineConfig(cfg, logger, jobs)
	pcfg.SkipStars = opts.SkipStars
	pcfg.PerClassOptics = opts.PerClassOptics
	pcfg.FlowWeight = analysis.FlowWeight(opts.FlowWeight)

	summary, err := analysis.Run(pcfg)
	if err != nil {
		if runID != "" {
			_ = store.CompleteRun(runID, state.RunStatusFailed, 0, err.Error())
		}
		return err
	}
	if runID != "" {
		_ = store.CompleteRun(runID, state.RunStatusCompleted, summary.Pairs, "")
	}

	out := cmd.OutOrStdout()
	for _, js := range summary.Jobs {
		fmt.Fprintf(out, "job%03d: %s (%d particles, %d classes)\n",
			js.Number, js.StarFile, js.Particles, js.Classes)
	}
	fmt.Fprintf(out, "%d cross-job class pairs (%d with overlap)\n",
		summary.Pairs, summary.NonEmptyPairs)
	fmt.Fprintf(out, "Results written to %s\n", cfg.OutDir)
	fmt.Fprintf(out, "Completed in %s\n", time.Since(start).Round(time.Millisecond))
	return nil
}
