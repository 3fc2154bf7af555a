package analysis

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/PiotrDra/Reciprocal-RELION-3D-Classification-Analysis/pkg/star"
)

// PerClassDirName is the subdirectory of the output directory holding the
// per-class star files.
const PerClassDirName = "per_class_star"

// ClassPartition groups one job's particle rows by class id. Built once
// after parsing and read-only afterwards; the intersection engine reads it
// for every pair.
type ClassPartition struct {
	Job      *Job
	ClassIDs []int // ascending

	tables map[int]*star.Table
	keys   map[int]map[string]struct{}
}

// Partition splits the job's particles table by the class-label column,
// preserving row order and the full column set. Class ids are discovered
// from the data: jobs may use any number of classes and may skip ids.
func Partition(job *Job) (*ClassPartition, error) {
	p := &ClassPartition{
		Job:    job,
		tables: make(map[int]*star.Table),
		keys:   make(map[int]map[string]struct{}),
	}
	for _, row := range job.Particles.Rows {
		label := job.ClassLabel(row)
		cls, err := strconv.Atoi(label)
		if err != nil {
			return nil, &star.FormatError{
				File:    job.StarFile,
				Block:   star.BlockParticles,
				Message: fmt.Sprintf("class label %q is not an integer", label),
			}
		}
		tbl := p.tables[cls]
		if tbl == nil {
			tbl = job.Particles.EmptyCopy()
			p.tables[cls] = tbl
			p.keys[cls] = make(map[string]struct{})
			p.ClassIDs = append(p.ClassIDs, cls)
		}
		tbl.Rows = append(tbl.Rows, row)
		p.keys[cls][job.ImageName(row)] = struct{}{}
	}
	sort.Ints(p.ClassIDs)
	return p, nil
}

// Table returns the sub-table of rows assigned to the class, nil when the
// class id was never seen.
func (p *ClassPartition) Table(class int) *star.Table { return p.tables[class] }

// Keys returns the identity-key set of the class.
func (p *ClassPartition) Keys(class int) map[string]struct{} { return p.keys[class] }

// Size returns the number of distinct identity keys in the class.
func (p *ClassPartition) Size(class int) int { return len(p.keys[class]) }

// WritePerClass serializes each class's sub-table under
// outdir/per_class_star as job<NNN>_class<K>.star, importable by the same
// downstream tooling that produced the input. Optics are optional here;
// the intersection writer always carries them.
func (p *ClassPartition) WritePerClass(outdir string, withOptics bool) ([]string, error) {
	dir := filepath.Join(outdir, PerClassDirName)
	var optics []string
	if withOptics {
		optics = p.Job.Optics
	}
	var paths []string
	for _, cls := range p.ClassIDs {
		path := filepath.Join(dir, fmt.Sprintf("%s_class%d.star", p.Job.Label(), cls))
		if err := star.WriteFile(path, optics, p.tables[cls]); err != nil {
			return nil, fmt.Errorf("%s class %d: %w", p.Job.Label(), cls, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
