package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/PiotrDra/Reciprocal-RELION-3D-Classification-Analysis/internal/analysis"
	"github.com/PiotrDra/Reciprocal-RELION-3D-Classification-Analysis/internal/cli/config"
	"github.com/PiotrDra/Reciprocal-RELION-3D-Classification-Analysis/internal/state"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg    *config.Config
	Logger *slog.Logger
}

// NewCommandContext builds the context every command starts from.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	return &CommandContext{
		Cfg:    getConfig(),
		Logger: config.GetLogger(cmd.Context()),
	}
}

// getConfig returns the current configuration. It uses the loaded config
// when available and falls back to environment variables, so commands
// stay usable when invoked outside the root command.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return &config.Config{
		RelionDir:    os.Getenv("RECIPROCAL_RELION_DIR"),
		OutDir:       getEnvOrDefault("RECIPROCAL_OUT_DIR", config.DefaultOutDir),
		StatePath:    getEnvOrDefault("RECIPROCAL_STATE_PATH", config.DefaultStateFile),
		ImageColumn:  getEnvOrDefault("RECIPROCAL_IMAGE_COLUMN", config.DefaultImageColumn),
		ClassColumn:  getEnvOrDefault("RECIPROCAL_CLASS_COLUMN", config.DefaultClassColumn),
		Verbose:      os.Getenv("RECIPROCAL_VERBOSE") == "true",
		OutputFormat: getEnvOrDefault("RECIPROCAL_OUTPUT", config.DefaultOutput),
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// parseJobs resolves job numbers from positional args and the --jobs
// flag. Both accept comma-separated lists; "85 86" and "85,86" are
// equivalent.
func parseJobs(args []string, jobsFlag string) ([]int, error) {
	raw := append([]string{}, args...)
	if jobsFlag != "" {
		raw = append(raw, jobsFlag)
	}
	var jobs []int
	for _, tok := range raw {
		for _, part := range strings.Split(tok, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			n, err := strconv.Atoi(strings.TrimPrefix(part, "job"))
			if err != nil || n < 0 {
				return nil, fmt.Errorf("invalid job number %q", part)
			}
			jobs = append(jobs, n)
		}
	}
	if len(jobs) == 0 {
		return nil, fmt.Errorf("no jobs specified")
	}
	return jobs, nil
}

func jobLabels(jobs []int) string {
	labels := make([]string, len(jobs))
	for i, n := range jobs {
		labels[i] = fmt.Sprintf("job%03d", n)
	}
	return strings.Join(labels, ",")
}

// requireRelionDir verifies the RELION project directory is configured.
func requireRelionDir(cfg *config.Config) error {
	if cfg.RelionDir == "" {
		return fmt.Errorf("RELION project directory is required (use --relion-dir or set relion_dir in reciprocal.yaml)")
	}
	return nil
}

// openStore opens the run-history database, creating its directory.
func openStore(cfg *config.Config, logger *slog.Logger) (*state.SQLiteStore, error) {
	if dir := filepath.Dir(cfg.StatePath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create state directory: %w", err)
		}
	}
	s := state.NewSQLiteStore(logger)
	if err := s.Open(cfg.StatePath); err != nil {
		return nil, err
	}
	return s, nil
}

// pipelineConfig builds the analysis configuration from CLI config.
func pipelineConfig(cfg *config.Config, logger *slog.Logger, jobs []int) analysis.Config {
	return analysis.Config{
		RelionDir:   cfg.RelionDir,
		OutDir:      cfg.OutDir,
		Jobs:        jobs,
		ImageColumn: cfg.ImageColumn,
		ClassColumn: cfg.ClassColumn,
		Logger:      logger,
	}
}
