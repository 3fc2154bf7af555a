package analysis

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/PiotrDra/Reciprocal-RELION-3D-Classification-Analysis/pkg/star"
)

// IntersectionsDirName is the subdirectory of the output directory holding
// the per-pair intersection star files.
const IntersectionsDirName = "intersections"

// WriteIntersectionStars emits one star file per non-empty cross-job class
// pair: the source job's optics block copied verbatim, then the source
// job's particle rows restricted to the shared identity keys, in their
// original order and column layout. Zero-overlap pairs are skipped.
//
// When the source job's optics block could not be located the file is
// still written particles-only, with a warning naming the job; the user
// may need to insert optics by hand before re-importing such a file.
func WriteIntersectionStars(outdir string, results []IntersectionResult, logger *slog.Logger) ([]string, error) {
	dir := filepath.Join(outdir, IntersectionsDirName)
	var paths []string
	for _, r := range results {
		if r.Count == 0 {
			continue
		}
		job := r.source.Job
		rows := r.source.Table(r.ClassA).Select(func(row []string) bool {
			_, ok := r.Keys[job.ImageName(row)]
			return ok
		})

		if job.Optics == nil {
			logger.Warn("optics block missing, writing particles-only star",
				slog.String("job", job.Label()),
				slog.String("star", job.StarFile))
		}

		name := fmt.Sprintf("%s_vs_%s.star", r.PairLabelA(), r.PairLabelB())
		path := filepath.Join(dir, name)
		if err := star.WriteFile(path, job.Optics, rows); err != nil {
			return nil, fmt.Errorf("intersection %s vs %s: %w", r.PairLabelA(), r.PairLabelB(), err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
