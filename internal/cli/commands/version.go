package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version, buildDate, gitCommit string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display reciprocal version and build information.`,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "reciprocal v%s\n", version)
			_, _ = fmt.Fprintln(out, "Reciprocal analysis of RELION 3D classification jobs")
			_, _ = fmt.Fprintf(out, "Build date: %s\n", buildDate)
			_, _ = fmt.Fprintf(out, "Git commit: %s\n", gitCommit)
			_, _ = fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
		},
	}
}
