package analysis

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/PiotrDra/Reciprocal-RELION-3D-Classification-Analysis/internal/locator"
)

// Class3DDirName is appended to the RELION project directory; all
// classification jobs live under it.
const Class3DDirName = "Class3D"

// Config carries the inputs of one analysis run.
type Config struct {
	RelionDir      string // RELION project directory; Class3D is appended
	OutDir         string
	Jobs           []int
	ImageColumn    string // defaults to DefaultImageColumn
	ClassColumn    string // defaults to DefaultClassColumn
	PerClassOptics bool   // copy optics into per-class files too
	FlowWeight     FlowWeight
	SkipStars      bool // compute matrices only, no star emission
	Logger         *slog.Logger
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

func (c Config) imageColumn() string {
	if c.ImageColumn != "" {
		return c.ImageColumn
	}
	return DefaultImageColumn
}

func (c Config) classColumn() string {
	if c.ClassColumn != "" {
		return c.ClassColumn
	}
	return DefaultClassColumn
}

// Class3DDir returns the directory all jobs are resolved under.
func (c Config) Class3DDir() string {
	return filepath.Join(c.RelionDir, Class3DDirName)
}

// Analysis holds everything computed for one run. All of it is built once
// and read-only afterwards; the whole data set stays in memory, which is
// fine up to low millions of particles.
type Analysis struct {
	Jobs       []*Job
	Partitions []*ClassPartition
	Results    []IntersectionResult
}

// Analyze loads every requested job and computes all cross-job class
// intersections. Locator and parser failures abort the run: a job must
// never be silently skipped.
func Analyze(cfg Config) (*Analysis, error) {
	logger := cfg.logger()

	if len(cfg.Jobs) < 2 {
		return nil, fmt.Errorf("need at least two jobs for reciprocal analysis, got %d", len(cfg.Jobs))
	}
	class3d := cfg.Class3DDir()
	if fi, err := os.Stat(class3d); err != nil || !fi.IsDir() {
		return nil, &locator.NotFoundError{Dir: class3d, Message: "Class3D directory missing"}
	}

	a := &Analysis{}
	for _, n := range cfg.Jobs {
		job, err := LoadJob(class3d, n, cfg.imageColumn(), cfg.classColumn())
		if err != nil {
			return nil, err
		}
		part, err := Partition(job)
		if err != nil {
			return nil, err
		}
		logger.Info("loaded job",
			slog.String("job", job.Label()),
			slog.String("star", filepath.Base(job.StarFile)),
			slog.Int("particles", len(job.Particles.Rows)),
			slog.Int("classes", len(part.ClassIDs)))
		a.Jobs = append(a.Jobs, job)
		a.Partitions = append(a.Partitions, part)
	}

	a.Results = Intersections(a.Partitions)
	return a, nil
}

// JobSummary describes one loaded job in a run summary.
type JobSummary struct {
	Number    int
	StarFile  string
	Classes   int
	Particles int
}

// Summary reports what a full pipeline run produced.
type Summary struct {
	Jobs          []JobSummary
	Pairs         int
	NonEmptyPairs int
	CountsPath    string
	FractionsPath string
	FlowsPath     string
	PerClassFiles []string
	StarFiles     []string
}

// Run executes the whole pipeline: locate, parse, split, intersect, and
// write every output under cfg.OutDir.
func Run(cfg Config) (*Summary, error) {
	logger := cfg.logger()

	a, err := Analyze(cfg)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.OutDir, 0o750); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	s := &Summary{Pairs: len(a.Results)}
	for i, job := range a.Jobs {
		part := a.Partitions[i]
		files, err := part.WritePerClass(cfg.OutDir, cfg.PerClassOptics)
		if err != nil {
			return nil, err
		}
		s.PerClassFiles = append(s.PerClassFiles, files...)
		s.Jobs = append(s.Jobs, JobSummary{
			Number:    job.Number,
			StarFile:  job.StarFile,
			Classes:   len(part.ClassIDs),
			Particles: len(job.Particles.Rows),
		})
	}

	s.CountsPath, s.FractionsPath, err = WriteMatrices(cfg.OutDir, a.Results)
	if err != nil {
		return nil, err
	}
	s.FlowsPath, err = WriteFlows(cfg.OutDir, a.Results, cfg.FlowWeight)
	if err != nil {
		return nil, err
	}

	for _, r := range a.Results {
		if r.Count > 0 {
			s.NonEmptyPairs++
		}
	}
	if !cfg.SkipStars {
		s.StarFiles, err = WriteIntersectionStars(cfg.OutDir, a.Results, logger)
		if err != nil {
			return nil, err
		}
	}

	logger.Info("analysis complete",
		slog.Int("jobs", len(a.Jobs)),
		slog.Int("pairs", s.Pairs),
		slog.Int("non_empty_pairs", s.NonEmptyPairs),
		slog.String("outdir", cfg.OutDir))
	return s, nil
}
