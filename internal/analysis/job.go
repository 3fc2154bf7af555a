// Package analysis implements the reciprocal comparison pipeline: loading
// classification jobs, partitioning their particles by class, intersecting
// identity keys across jobs, and writing the matrix and star outputs.
package analysis

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/PiotrDra/Reciprocal-RELION-3D-Classification-Analysis/internal/locator"
	"github.com/PiotrDra/Reciprocal-RELION-3D-Classification-Analysis/pkg/star"
)

// Column names RELION uses for the particle identity key and the class
// assignment. Overridable through configuration for nonstandard files.
const (
	DefaultImageColumn = "rlnImageName"
	DefaultClassColumn = "rlnClassNumber"
)

// Job is one 3D-classification run: its directory, the resolved
// final-iteration result file, and the parsed particles table. Immutable
// once loaded.
type Job struct {
	Number    int
	Dir       string
	StarFile  string
	Particles *star.Table
	Optics    []string // raw optics block lines, nil when the block is absent

	imageCol int
	classCol int
}

// Label returns the zero-padded job identifier, e.g. "job003".
func (j *Job) Label() string { return jobLabel(j.Number) }

func jobLabel(n int) string { return fmt.Sprintf("job%03d", n) }

// ImageName returns the identity key of a particle row.
func (j *Job) ImageName(row []string) string { return row[j.imageCol] }

// ClassLabel returns the raw class-label field of a particle row.
func (j *Job) ClassLabel(row []string) string { return row[j.classCol] }

// JobDir returns the directory of a numbered job under the Class3D tree.
func JobDir(class3dDir string, number int) string {
	return filepath.Join(class3dDir, jobLabel(number))
}

// LoadJob locates and parses a job's final-iteration result file. The
// particles block must carry the identity-key and class-label columns; the
// optics block is kept verbatim when present and left nil otherwise, to be
// reported at intersection-emission time.
func LoadJob(class3dDir string, number int, imageColumn, classColumn string) (*Job, error) {
	dir := JobDir(class3dDir, number)
	file, err := locator.FindFinal(dir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", jobLabel(number), err)
	}

	particles, err := star.ParseBlock(file, star.BlockParticles)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", jobLabel(number), err)
	}
	if err := particles.RequireColumns(file, imageColumn, classColumn); err != nil {
		return nil, fmt.Errorf("%s: %w", jobLabel(number), err)
	}
	imageCol, _ := particles.ColumnIndex(imageColumn)
	classCol, _ := particles.ColumnIndex(classColumn)

	optics, err := star.ReadBlockRaw(file, star.BlockOptics)
	if err != nil {
		var fe *star.FormatError
		if !errors.As(err, &fe) {
			return nil, fmt.Errorf("%s: %w", jobLabel(number), err)
		}
		optics = nil
	}

	return &Job{
		Number:    number,
		Dir:       dir,
		StarFile:  file,
		Particles: particles,
		Optics:    optics,
		imageCol:  imageCol,
		classCol:  classCol,
	}, nil
}
