package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PiotrDra/Reciprocal-RELION-3D-Classification-Analysis/internal/analysis"
)

// MatrixOptions holds options for the matrix command.
type MatrixOptions struct {
	Jobs      string
	Fractions bool
	Format    string
	Write     bool
}

// NewMatrixCommand creates the matrix command.
func NewMatrixCommand() *cobra.Command {
	opts := &MatrixOptions{}

	cmd := &cobra.Command{
		Use:   "matrix [jobs...]",
		Short: "Compute and display the cross-job intersection matrix",
		Long: `Compute every cross-job class-pair intersection and print the long-form
matrix without writing star files. Use --write to also produce the
counts_matrix.csv and fraction_matrix.csv files.`,
		Example: `  # Show raw counts for jobs 85 and 86
  reciprocal matrix --relion-dir /data/project 85 86

  # Show fractions as JSON
  reciprocal matrix --relion-dir /data/project 85 86 --fractions -f json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatrix(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Jobs, "jobs", "j", "", "Comma-separated job numbers")
	cmd.Flags().BoolVar(&opts.Fractions, "fractions", false, "Show fractions instead of raw counts")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: table, csv, json")
	cmd.Flags().BoolVar(&opts.Write, "write", false, "Also write the matrix CSV files to the output directory")

	return cmd
}

func runMatrix(cmd *cobra.Command, args []string, opts *MatrixOptions) error {
	cmdCtx := NewCommandContext(cmd)
	cfg, logger := cmdCtx.Cfg, cmdCtx.Logger

	jobs, err := parseJobs(args, opts.Jobs)
	if err != nil {
		return err
	}
	if err := requireRelionDir(cfg); err != nil {
		return err
	}

	a, err := analysis.Analyze(pipelineConfig(cfg, logger, jobs))
	if err != nil {
		return err
	}

	format := opts.Format
	if format == "" {
		format = cfg.OutputFormat
	}
	if err := renderMatrix(cmd.OutOrStdout(), a.Results, opts.Fractions, format); err != nil {
		return err
	}

	if opts.Write {
		counts, fractions, err := analysis.WriteMatrices(cfg.OutDir, a.Results)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Written %s and %s\n", counts, fractions)
	}
	return nil
}
