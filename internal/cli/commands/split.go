package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PiotrDra/Reciprocal-RELION-3D-Classification-Analysis/internal/analysis"
)

// SplitOptions holds options for the split command.
type SplitOptions struct {
	Jobs       string
	WithOptics bool
}

// NewSplitCommand creates the split command.
func NewSplitCommand() *cobra.Command {
	opts := &SplitOptions{}

	cmd := &cobra.Command{
		Use:   "split [jobs...]",
		Short: "Write per-class star files for the given jobs",
		Long: `Split each job's particles table by class and write one star file per
class under <out-dir>/per_class_star. Unlike run, a single job is
accepted; no cross-job comparison is performed.`,
		Example: `  # Split job 85 into per-class star files
  reciprocal split --relion-dir /data/project 85

  # Include the optics block in each per-class file
  reciprocal split --relion-dir /data/project 85 --with-optics`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSplit(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Jobs, "jobs", "j", "", "Comma-separated job numbers")
	cmd.Flags().BoolVar(&opts.WithOptics, "with-optics", false, "Copy the optics block into each per-class file")

	return cmd
}

func runSplit(cmd *cobra.Command, args []string, opts *SplitOptions) error {
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
		job, err := analysis.LoadJob(class3d, n, cfg.ImageColumn, cfg.ClassColumn)
		if err != nil {
			return err
		}
		part, err := analysis.Partition(job)
		if err != nil {
			return err
		}
		files, err := part.WritePerClass(cfg.OutDir, opts.WithOptics)
		if err != nil {
			return err
		}
		for _, f := range files {
			fmt.Fprintf(out, "Written per-class star: %s\n", f)
		}
	}
	return nil
}
