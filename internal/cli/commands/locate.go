package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PiotrDra/Reciprocal-RELION-3D-Classification-Analysis/internal/analysis"
	"github.com/PiotrDra/Reciprocal-RELION-3D-Classification-Analysis/internal/locator"
)

// LocateOptions holds options for the locate command.
type LocateOptions struct {
	Jobs string
}

// NewLocateCommand creates the locate command.
func NewLocateCommand() *cobra.Command {
	opts := &LocateOptions{}

	cmd := &cobra.Command{
		Use:   "locate [jobs...]",
		Short: "Show each job's final-iteration star file",
		Long: `Resolve the final-iteration data star file for each job without reading
it. The file with the highest run_itNNN number wins; a run_data.star
file marks a finished job and outranks every numbered iteration.`,
		Example: `  # Which star files would an analysis of jobs 85 and 86 read?
  reciprocal locate --relion-dir /data/project 85 86`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLocate(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Jobs, "jobs", "j", "", "Comma-separated job numbers")

	return cmd
}

func runLocate(cmd *cobra.Command, args []string, opts *LocateOptions) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg

	jobs, err := parseJobs(args, opts.Jobs)
	if err != nil {
		return err
	}
	if err := requireRelionDir(cfg); err != nil {
		return err
	}

	class3d := analysis.Config{RelionDir: cfg.RelionDir}.Class3DDir()
	out := cmd.OutOrStdout()
	for _, n := range jobs {
		path, err := locator.FindFinal(analysis.JobDir(class3d, n))
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "job%03d: %s\n", n, path)
	}
	return nil
}
